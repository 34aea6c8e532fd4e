package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"starfolk-client/internal/app"
	"starfolk-client/internal/auth"
	"starfolk-client/internal/logger"
	"starfolk-client/internal/models"
	"starfolk-client/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type emptyCatalog struct{}

func (emptyCatalog) SearchItems(context.Context, string) ([]models.Character, error) {
	return []models.Character{}, nil
}

func (emptyCatalog) GetItemByID(_ context.Context, id int) (models.Character, error) {
	return models.Character{ID: id}, nil
}

func (emptyCatalog) Featured(context.Context) ([]models.Character, error) {
	return []models.Character{}, nil
}

func setup(t *testing.T) (*gin.Engine, *auth.Signer, *session.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	signer := auth.NewSigner("test-secret", "starfolk-gateway", "starfolk-clients", time.Hour)
	registry := session.NewRegistry(func() *app.App {
		return app.New(emptyCatalog{}, app.Options{Logger: logger.Discard()})
	}, time.Hour, logger.Discard())
	t.Cleanup(registry.Close)

	r := gin.New()
	r.Use(SessionAuthMiddleware(signer, registry))
	r.GET("/protected", func(c *gin.Context) {
		s, ok := CurrentSession(c)
		require.True(t, ok)
		c.String(http.StatusOK, s.ID)
	})
	return r, signer, registry
}

func TestSessionAuthMiddleware_Success(t *testing.T) {
	r, signer, registry := setup(t)
	s := registry.Create()

	token, err := signer.GenerateToken(s.ID)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, s.ID, w.Body.String())
}

func TestSessionAuthMiddleware_QueryToken(t *testing.T) {
	r, signer, registry := setup(t)
	s := registry.Create()

	token, err := signer.GenerateToken(s.ID)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSessionAuthMiddleware_MissingHeader(t *testing.T) {
	r, _, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthMiddleware_InvalidToken(t *testing.T) {
	r, _, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestSessionAuthMiddleware_RemovedSession(t *testing.T) {
	r, signer, registry := setup(t)
	s := registry.Create()
	token, err := signer.GenerateToken(s.ID)
	require.NoError(t, err)
	require.True(t, registry.Remove(s.ID))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Session not found")
}
