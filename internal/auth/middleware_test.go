package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", AuthMiddleware(secret), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/admin", AuthMiddleware(secret), RequireRole(RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/owner", AuthMiddleware(secret), RequireRole(RoleOwner, RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := setupRouter(testSecret)

	token, err := GenerateAccessToken(42, "driver@example.com", RoleDriver, testSecret)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, "/protected", tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthMiddleware_RejectsRefreshToken(t *testing.T) {
	r := setupRouter(testSecret)

	refreshToken, err := GenerateRefreshToken(42, "driver@example.com", RoleDriver, testSecret)
	require.NoError(t, err)

	w := doRequest(r, "/protected", "Bearer "+refreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := setupRouter(testSecret)

	driverToken, err := GenerateAccessToken(1, "driver@example.com", RoleDriver, testSecret)
	require.NoError(t, err)
	ownerToken, err := GenerateAccessToken(2, "owner@example.com", RoleOwner, testSecret)
	require.NoError(t, err)
	adminToken, err := GenerateAccessToken(3, "admin@example.com", RoleAdmin, testSecret)
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
	}{
		{"driver denied admin route", "/admin", driverToken, http.StatusForbidden},
		{"owner denied admin route", "/admin", ownerToken, http.StatusForbidden},
		{"admin allowed admin route", "/admin", adminToken, http.StatusOK},
		{"driver denied owner route", "/owner", driverToken, http.StatusForbidden},
		{"owner allowed owner route", "/owner", ownerToken, http.StatusOK},
		{"admin allowed owner route", "/owner", adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.path, "Bearer "+tt.token)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
