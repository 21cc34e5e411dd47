package debugserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/langc/compiler"
)

func newTestCompiler() *compiler.Compiler {
	return compiler.New(compiler.Options{})
}

func Test_unauthenticated_server_serves_grammar(t *testing.T) {
	assert := assert.New(t)

	s, err := NewServer(newTestCompiler(), "")
	assert.NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/grammar", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)

	var body map[string]any
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Greater(body["num_states"], float64(0))
}

func Test_authenticated_server_rejects_without_token(t *testing.T) {
	assert := assert.New(t)

	s, err := NewServer(newTestCompiler(), "sekrit")
	assert.NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/grammar", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(http.StatusUnauthorized, rec.Code)
}

func Test_authenticated_server_accepts_minted_session_token(t *testing.T) {
	assert := assert.New(t)

	s, err := NewServer(newTestCompiler(), "sekrit")
	assert.NoError(err)

	body, _ := json.Marshal(authRequest{Token: "sekrit"})
	authReq := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader(body))
	authRec := httptest.NewRecorder()
	s.Router().ServeHTTP(authRec, authReq)
	assert.Equal(http.StatusOK, authRec.Code)

	var authResp authResponse
	assert.NoError(json.Unmarshal(authRec.Body.Bytes(), &authResp))
	assert.NotEmpty(authResp.SessionToken)

	req := httptest.NewRequest(http.MethodGet, "/conflicts", nil)
	req.Header.Set("Authorization", "Bearer "+authResp.SessionToken)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
}

func Test_auth_rejects_wrong_token(t *testing.T) {
	assert := assert.New(t)

	s, err := NewServer(newTestCompiler(), "sekrit")
	assert.NoError(err)

	body, _ := json.Marshal(authRequest{Token: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(http.StatusUnauthorized, rec.Code)
}

func Test_grammar_state_endpoint(t *testing.T) {
	assert := assert.New(t)

	s, err := NewServer(newTestCompiler(), "")
	assert.NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/grammar/0", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/grammar/999999", nil)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(http.StatusNotFound, rec.Code)
}
