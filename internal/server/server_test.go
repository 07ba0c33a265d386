package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docfacts/constants"
	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/entity"
	"github.com/joseph-ayodele/docfacts/internal/export"
	"github.com/joseph-ayodele/docfacts/internal/pdftext"
	"github.com/joseph-ayodele/docfacts/internal/pipeline"
)

type stubReader struct{ text string }

func (r stubReader) Read(context.Context, pdftext.Source) (pdftext.Document, error) {
	return pdftext.Document{Text: r.text, Pages: 1, PagesWithText: 1}, nil
}

type countingExtractor struct {
	strategy constants.Strategy
	records  []entity.Record
	calls    int
}

func (e *countingExtractor) Extract(context.Context, string) ([]entity.Record, error) {
	e.calls++
	return e.records, nil
}

func (e *countingExtractor) Strategy() constants.Strategy { return e.strategy }

type fixture struct {
	srv     *Server
	pattern *countingExtractor
	model   *countingExtractor
	cookie  *http.Cookie
}

func testConfig(apiKey string) *common.Config {
	return &common.Config{
		LLM:    common.LLMConfig{Provider: common.ProviderGemini, Model: "gemini-2.5-flash", APIKey: apiKey},
		Reader: common.ReaderConfig{Kind: common.ReaderNative},
		Server: common.ServerConfig{Addr: ":0", MaxUploadMB: 1},
	}
}

func newFixture(t *testing.T, apiKey string) *fixture {
	t.Helper()
	pattern := &countingExtractor{strategy: constants.StrategyPattern, records: []entity.Record{
		entity.NewRecord("First Name", "Vijay"),
		entity.NewRecord("Last Name", "Kumar"),
	}}
	model := &countingExtractor{strategy: constants.StrategyModel, records: []entity.Record{
		entity.NewRecord("Employer", "Acme").WithComments("joined in 2018"),
	}}
	proc := pipeline.NewProcessor(nil, stubReader{text: "Vijay Kumar was born\n"}, pattern, model, "gemini/gemini-2.5-flash")
	srv, err := NewServer(testConfig(apiKey), proc, nil, nil)
	require.NoError(t, err)
	return &fixture{srv: srv, pattern: pattern, model: model}
}

// do serves req, carrying the session cookie across calls.
func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	if f.cookie != nil {
		req.AddCookie(f.cookie)
	}
	rec := httptest.NewRecorder()
	f.srv.echo.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			f.cookie = c
		}
	}
	return rec
}

func (f *fixture) page(t *testing.T) string {
	t.Helper()
	rec := f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func uploadRequest(t *testing.T, filename string, content []byte, useAI bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	if useAI {
		require.NoError(t, w.WriteField("use_ai", "on"))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/extract", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestNewServer(t *testing.T) {
	proc := pipeline.NewProcessor(nil, stubReader{}, nil, nil, "")

	_, err := NewServer(nil, proc, nil, nil)
	assert.Error(t, err)

	_, err = NewServer(testConfig(""), nil, nil, nil)
	assert.Error(t, err)

	srv, err := NewServer(testConfig(""), proc, export.NewService(nil), nil)
	require.NoError(t, err)
	assert.NotNil(t, srv.Echo())
}

func TestHandleHealth(t *testing.T) {
	f := newFixture(t, "")
	rec := f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, "")
	rec := f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIndex_NewSessionAndCredentialBanner(t *testing.T) {
	f := newFixture(t, "")
	body := f.page(t)

	require.NotNil(t, f.cookie)
	assert.Equal(t, 1, f.srv.sessions.Len())
	assert.Contains(t, body, "GEMINI_API_KEY not found!")
	assert.Contains(t, body, "Upload a document and click")
	assert.Contains(t, body, `name="use_ai" checked`)

	// same cookie, same session
	f.page(t)
	assert.Equal(t, 1, f.srv.sessions.Len())
}

func TestIndex_UnknownCookieGetsFreshSession(t *testing.T) {
	f := newFixture(t, "key")
	f.cookie = &http.Cookie{Name: sessionCookie, Value: "not-a-uuid"}
	f.page(t)
	assert.NotEqual(t, "not-a-uuid", f.cookie.Value)
	assert.Equal(t, 1, f.srv.sessions.Len())
}

func TestExtract_NoFile(t *testing.T) {
	f := newFixture(t, "key")
	rec := f.do(uploadRequest(t, "", nil, true))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, f.page(t), "Please upload a PDF file to begin extraction.")
	assert.Equal(t, 0, f.model.calls)
}

func TestExtract_AIWithoutCredential(t *testing.T) {
	f := newFixture(t, "")
	f.do(uploadRequest(t, "cv.pdf", []byte("%PDF"), true))

	body := f.page(t)
	assert.Contains(t, body, "Cannot run AI extraction without the GEMINI_API_KEY.")
	assert.Equal(t, 0, f.model.calls)
	assert.Equal(t, 0, f.pattern.calls)
}

func TestExtract_RejectsNonPDF(t *testing.T) {
	f := newFixture(t, "key")
	f.do(uploadRequest(t, "notes.txt", []byte("hello"), false))

	assert.Contains(t, f.page(t), "must be a PDF document (.pdf)")
	assert.Equal(t, 0, f.pattern.calls)
}

func TestExtract_PatternRunAndDownload(t *testing.T) {
	f := newFixture(t, "")
	rec := f.do(uploadRequest(t, "cv.pdf", []byte("%PDF"), false))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	body := f.page(t)
	assert.Contains(t, body, "Extraction Complete! Found 2 key-value pairs.")
	assert.Contains(t, body, "<td>Vijay</td>")
	assert.Contains(t, body, "Vijay Kumar was born")
	assert.NotContains(t, body, `name="use_ai" checked`)
	assert.Equal(t, 1, f.pattern.calls)

	// flashes are shown once
	assert.NotContains(t, f.page(t), "Extraction Complete!")

	dl := f.do(httptest.NewRequest(http.MethodGet, "/download", nil))
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, constants.MIMEXLSX, dl.Header().Get("Content-Type"))
	assert.Contains(t, dl.Header().Get("Content-Disposition"), `filename="Output.xlsx"`)

	tbl, err := export.ReadXLSX(bytes.NewReader(dl.Body.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, entity.Row{Seq: 2, Key: "Last Name", Value: "Kumar"}, tbl.Rows[1])
}

func TestExtract_ModelRunIsMemoizedUntilClear(t *testing.T) {
	f := newFixture(t, "key")

	f.do(uploadRequest(t, "cv.pdf", []byte("%PDF"), true))
	f.do(uploadRequest(t, "cv.pdf", []byte("%PDF"), true))
	assert.Equal(t, 1, f.model.calls)
	assert.Contains(t, f.page(t), "Found 1 key-value pairs.")

	rec := f.do(httptest.NewRequest(http.MethodPost, "/clear", strings.NewReader(url.Values{}.Encode())))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	dl := f.do(httptest.NewRequest(http.MethodGet, "/download", nil))
	assert.Equal(t, http.StatusNotFound, dl.Code)

	f.do(uploadRequest(t, "cv.pdf", []byte("%PDF"), true))
	assert.Equal(t, 2, f.model.calls)
}

func TestExtract_EmptyResult(t *testing.T) {
	f := newFixture(t, "key")
	f.model.records = nil

	f.do(uploadRequest(t, "cv.pdf", []byte("%PDF"), true))
	body := f.page(t)
	assert.Contains(t, body, "No structured data could be extracted by the AI model.")
	assert.NotContains(t, body, `id="results"`)

	dl := f.do(httptest.NewRequest(http.MethodGet, "/download", nil))
	assert.Equal(t, http.StatusNotFound, dl.Code)
}

func TestDownload_WithoutResult(t *testing.T) {
	f := newFixture(t, "key")
	rec := f.do(httptest.NewRequest(http.MethodGet, "/download", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClear_ShowsNotice(t *testing.T) {
	f := newFixture(t, "")
	f.do(uploadRequest(t, "cv.pdf", []byte("%PDF"), false))
	f.do(httptest.NewRequest(http.MethodPost, "/clear", nil))

	body := f.page(t)
	assert.Contains(t, body, "Results cleared.")
	assert.NotContains(t, body, `id="results"`)
	assert.Contains(t, body, `name="use_ai" checked`)
}
