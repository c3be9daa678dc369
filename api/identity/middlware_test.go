package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthoriz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokenizer := token.NewJwtService("middleware-secret", "vinom-test")
	playerID := uuid.New()

	engine := gin.New()
	engine.Use(Authoriz(tokenizer))
	engine.GET("/whoami", func(c *gin.Context) {
		id, username, ok := Player(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "username": username})
	})

	valid, err := tokenizer.Generate(map[string]interface{}{
		service.ClaimUserID:   playerID.String(),
		service.ClaimUsername: "naeun_mom",
	}, time.Minute)
	require.NoError(t, err)

	noUser, err := tokenizer.Generate(map[string]interface{}{"role": "guest"}, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.token", want: http.StatusUnauthorized},
		{name: "token without player", header: "Bearer " + noUser, want: http.StatusTeapot},
		{name: "valid token", header: "Bearer " + valid, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Contains(t, w.Body.String(), playerID.String())
				assert.Contains(t, w.Body.String(), "naeun_mom")
			}
		})
	}
}
