package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/parseltongue/parseltongue/parser"
)

func newServer(t *testing.T, opts ...parser.Option) *Server {
	t.Helper()
	s, err := NewServer(opts...)
	require.NoError(t, err)
	return s
}

func TestIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Parseltongue playground")
	assert.Contains(t, rec.Body.String(), `<option value="exec" selected>`)
}

func TestTranspileJSON(t *testing.T) {
	body := `{"source": "def f(a,\n      b):\n  return a +\n    b\n"}`
	req := httptest.NewRequest(http.MethodPost, "/transpile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "def f(a, b):\n    return a + b\n", res.Python)
	assert.Equal(t, "exec", res.Mode)
	assert.Contains(t, res.Dump, "FunctionDef(")
	assert.Contains(t, res.Tokens, "NAME'def'")
	assert.Nil(t, res.Error)
}

func TestTranspileJSONSyntaxError(t *testing.T) {
	body := `{"source": "if x\n    pass\n"}`
	req := httptest.NewRequest(http.MethodPost, "/transpile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var res Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.Error)
	assert.Equal(t, 1, res.Error.Line)
	assert.Contains(t, res.Error.Message, ":")
	assert.Empty(t, res.Python)
	assert.NotEmpty(t, res.Tokens)
}

func TestTranspileForm(t *testing.T) {
	form := url.Values{"source": {"1 +\n  2"}, "mode": {"eval"}}
	req := httptest.NewRequest(http.MethodPost, "/transpile", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1 + 2")
	assert.Contains(t, rec.Body.String(), `<option value="eval" selected>`)
}

func TestTranspileRejectsUnknownMode(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/transpile", strings.NewReader(`{"source": "x", "mode": "run"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranspileHonorsOptions(t *testing.T) {
	res := newServer(t, parser.WithTargetVersion(7)).Transpile(Request{Source: "if (n := 1):\n  pass\n", Mode: "exec"})
	require.NotNil(t, res.Error)
	assert.Contains(t, res.Error.Message, "3.8")
}
