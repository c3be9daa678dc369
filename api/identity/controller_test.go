package identity

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	registered map[string]string
}

func (f *fakeAuth) Register(username, password string) error {
	if _, ok := f.registered[username]; ok {
		return service.ErrUsernameTaken
	}
	f.registered[username] = password
	return nil
}

func (f *fakeAuth) SignIn(username, password string) (*dmn.User, string, error) {
	if p, ok := f.registered[username]; !ok || p != password {
		return nil, "", dmn.ErrInvalidCredentials
	}
	return &dmn.User{ID: uuid.New(), Username: username}, "signed-token", nil
}

func post(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestIdentityServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewIdentityServer(&fakeAuth{registered: map[string]string{}}).RegisterPublic(engine.Group("/api/v1"))

	creds := AuthRequest{Username: "doha_dad", Password: "long-enough-secret"}

	w := post(t, engine, "/api/v1/auth/register", creds)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = post(t, engine, "/api/v1/auth/register", creds)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = post(t, engine, "/api/v1/auth/register", gin.H{"username": "only_name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, engine, "/api/v1/auth/login", AuthRequest{Username: "doha_dad", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post(t, engine, "/api/v1/auth/login", creds)
	require.Equal(t, http.StatusOK, w.Code)
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "doha_dad", resp.Username)
	assert.Equal(t, "signed-token", resp.Token)
}
