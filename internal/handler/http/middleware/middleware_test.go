package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worktravel/worktravel-api/internal/domain/user"
	"github.com/worktravel/worktravel-api/internal/pkg/jwt"
)

func newProtectedRouter(svc jwt.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired(svc))

	r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFromContext(r.Context())
		w.Write([]byte(p.UserID + ":" + string(p.Role)))
	})
	r.With(RequirePermission(user.PermissionSettingsManage)).Put("/settings", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func do(t *testing.T, h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", "1h")
	h := newProtectedRouter(svc)

	rec := do(t, h, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/me", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := svc.GenerateAccessToken("u1", user.RoleUser)
	require.NoError(t, err)
	rec = do(t, h, http.MethodGet, "/me", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1:user", rec.Body.String())

	other := jwt.NewJWTService("another-secret", "1h")
	forged, _, err := other.GenerateAccessToken("u1", user.RoleAdmin)
	require.NoError(t, err)
	rec = do(t, h, http.MethodGet, "/me", forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermission(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", "1h")
	h := newProtectedRouter(svc)

	hr, _, err := svc.GenerateAccessToken("u2", user.RoleHR)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodPut, "/settings", hr).Code)

	admin, _, err := svc.GenerateAccessToken("u3", user.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodPut, "/settings", admin).Code)
}

func TestReportPanics_KeepsRecovererResponse(t *testing.T) {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Use(ReportPanics)
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := do(t, r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
