package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONPoster_Post(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		b, _ := io.ReadAll(r.Body)
		var body map[string]string
		require.NoError(t, json.Unmarshal(b, &body))

		if body["fail"] == "yes" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad"}`))
			return
		}
		_, _ = w.Write([]byte(`{"echo":"` + body["msg"] + `"}`))
	}))
	defer srv.Close()

	p := JSONPoster{Client: srv.Client(), Headers: map[string]string{"x-api-key": "secret"}}

	raw, err := p.Post(context.Background(), srv.URL, map[string]string{"msg": "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"echo":"hi"}`, string(raw))

	_, err = p.Post(context.Background(), srv.URL, map[string]string{"fail": "yes"})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.JSONEq(t, `{"error":"bad"}`, string(se.Body))
}

func TestJSONPoster_EncodeError(t *testing.T) {
	_, err := JSONPoster{}.Post(context.Background(), "http://127.0.0.1:0", map[string]any{"ch": make(chan int)})
	assert.ErrorContains(t, err, "encode json")
}

func TestJSONPoster_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := JSONPoster{Client: srv.Client()}.Post(ctx, srv.URL, map[string]string{})
	assert.ErrorIs(t, err, context.Canceled)
}
