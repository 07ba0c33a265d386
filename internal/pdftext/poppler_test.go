package pdftext

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docfacts/internal/common"
)

type stubRunner struct {
	stdout  string
	stderr  string
	err     error
	gotName string
	gotArgs []string
	existed bool
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.gotName = name
	s.gotArgs = args
	if len(args) >= 2 {
		_, err := os.Stat(args[len(args)-2])
		s.existed = err == nil
	}
	return []byte(s.stdout), []byte(s.stderr), s.err
}

func TestPopplerReader_SplitsPages(t *testing.T) {
	stub := &stubRunner{stdout: "Page one\n\fPage two\n\f\f"}
	r := NewPopplerReader("pdftotext", nil)
	r.runner = stub

	doc, err := r.Read(context.Background(), FromBytes("upload.pdf", []byte("%PDF-1.4")))
	require.NoError(t, err)

	assert.Equal(t, "Page one\nPage two\n", doc.Text)
	assert.Equal(t, 3, doc.Pages)
	assert.Equal(t, 2, doc.PagesWithText)
	assert.Equal(t, MethodPdftotext, doc.Method)

	assert.Equal(t, "pdftotext", stub.gotName)
	assert.Equal(t, []string{"-enc", "UTF-8", "-eol", "unix"}, stub.gotArgs[:4])
	assert.Equal(t, "-", stub.gotArgs[len(stub.gotArgs)-1])
	assert.True(t, stub.existed, "spilled upload should exist while pdftotext runs")

	_, statErr := os.Stat(stub.gotArgs[len(stub.gotArgs)-2])
	assert.True(t, os.IsNotExist(statErr), "spilled upload should be removed afterwards")
}

func TestPopplerReader_PathSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	stub := &stubRunner{stdout: "Only page\n\f"}
	r := NewPopplerReader("", nil)
	r.runner = stub

	doc, err := r.Read(context.Background(), FromPath(path))
	require.NoError(t, err)
	assert.Equal(t, "Only page\n", doc.Text)
	assert.Equal(t, path, stub.gotArgs[len(stub.gotArgs)-2])

	_, err = os.Stat(path)
	assert.NoError(t, err, "caller's file must not be removed")
}

func TestPopplerReader_Failures(t *testing.T) {
	r := NewPopplerReader("pdftotext", nil)

	r.runner = &stubRunner{}
	_, err := r.Read(context.Background(), FromPath(filepath.Join(t.TempDir(), "missing.pdf")))
	assert.ErrorIs(t, err, common.ErrInputNotFound)

	r.runner = &stubRunner{stderr: "Syntax Error: Couldn't find trailer dictionary", err: errors.New("exit status 1")}
	doc, err := r.Read(context.Background(), FromBytes("bad.pdf", []byte("junk")))
	assert.ErrorIs(t, err, common.ErrUnreadableDocument)
	assert.Contains(t, err.Error(), "trailer dictionary")
	assert.Equal(t, "", doc.Text)
}

func TestSplitPages(t *testing.T) {
	assert.Nil(t, splitPages(""))
	assert.Equal(t, []string{"a", "", "b"}, splitPages("a\n\f\fb\n\f"))
}

func TestExecRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	out, errb, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "printf out; printf err >&2")
	require.NoError(t, err)
	assert.Equal(t, "out", string(out))
	assert.Equal(t, "err", string(errb))

	_, _, err = ExecRunner{}.Run(context.Background(), "sh", "-c", "exit 3")
	assert.Error(t, err)
}

func TestPopplerReader_RunnerFunc(t *testing.T) {
	r := NewPopplerReader("", nil)
	var gotName string
	r.runner = RunnerFunc(func(_ context.Context, name string, _ ...string) ([]byte, []byte, error) {
		gotName = name
		return []byte("hello\n\f"), nil, nil
	})
	doc, err := r.Read(context.Background(), FromBytes("x.pdf", []byte("%PDF")))
	require.NoError(t, err)
	assert.Equal(t, "pdftotext", gotName)
	assert.Equal(t, "hello\n", doc.Text)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Syntax Error", firstLine([]byte("\n  Syntax Error  \nmore"), 100))
	assert.Equal(t, "abc", firstLine([]byte("abcdef"), 3))
	assert.Equal(t, "", firstLine(nil, 10))
}
