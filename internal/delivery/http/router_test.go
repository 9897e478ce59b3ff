package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/config"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/http/handler"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/http/middleware"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/infrastructure/cache"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/jwt"
)

type tokenSet map[string]bool

func (s tokenSet) Allow(ctx context.Context, tokenType jwt.TokenType, userID uint, tokenID string, ttl time.Duration) error {
	s[tokenID] = true
	return nil
}

func (s tokenSet) IsAllowed(ctx context.Context, tokenType jwt.TokenType, userID uint, tokenID string) (bool, error) {
	return s[tokenID], nil
}

func (s tokenSet) Revoke(ctx context.Context, tokenType jwt.TokenType, userID uint, tokenID string) error {
	delete(s, tokenID)
	return nil
}

func (s tokenSet) RevokeAll(ctx context.Context, userID uint) error {
	for tokenID := range s {
		delete(s, tokenID)
	}
	return nil
}

type routerFixture struct {
	handler http.Handler
	jwt     *jwt.JWTService
	tokens  tokenSet
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/img/users/me.png", []byte("face"), 0o644))

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "secret", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	tokens := tokenSet{}

	// Usecases are nil: every request below is answered before a handler
	// needs one.
	router := NewRouter(
		Handlers{
			Auth:         handler.NewAuthHandler(nil),
			HealthAgency: handler.NewHealthAgencyHandler(nil),
			PolyMaster:   handler.NewPolyMasterHandler(nil),
			User:         handler.NewUserHandler(nil),
			WaitingList:  handler.NewWaitingListHandler(nil),
			AuditLog:     handler.NewAuditLogHandler(nil),
			Storage:      handler.NewStorageHandler(fs, "/storage/"),
			Health:       handler.NewHealthHandler(),
		},
		middleware.NewAuthMiddleware(jwtService, tokens, log),
		middleware.NewCORSMiddleware(),
		middleware.NewCacheMiddleware(cache.NopResponseCache{}, time.Minute, log),
		"/storage/",
	)

	return &routerFixture{handler: router.Setup(), jwt: jwtService, tokens: tokens}
}

func (f *routerFixture) token(t *testing.T, role string) string {
	t.Helper()
	token, tokenID, err := f.jwt.GenerateAccessToken(jwt.Subject{UserID: 1, Role: role})
	require.NoError(t, err)
	f.tokens[tokenID] = true
	return token
}

func (f *routerFixture) do(method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func success(t *testing.T, rec *httptest.ResponseRecorder) bool {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Success
}

func TestRouter_HealthIsPublic(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, success(t, rec))
}

func TestRouter_ProtectedRoutesNeedToken(t *testing.T) {
	f := newRouterFixture(t)

	for _, target := range []string{"/api/v1/health-agencies", "/api/v1/poly-masters", "/api/v1/users/residence-number", "/api/v1/auth/me"} {
		rec := f.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.False(t, success(t, rec))
	}
}

func TestRouter_RoleGuards(t *testing.T) {
	f := newRouterFixture(t)
	user := f.token(t, entity.RoleUser)
	admin := f.token(t, entity.RoleAdmin)

	tests := []struct {
		method string
		target string
		token  string
	}{
		{http.MethodPost, "/api/v1/health-agencies", user},
		{http.MethodPut, "/api/v1/health-agencies/1", admin},
		{http.MethodDelete, "/api/v1/poly-masters/1", admin},
		{http.MethodGet, "/api/v1/users", admin},
		{http.MethodGet, "/api/v1/users/admins", admin},
		{http.MethodGet, "/api/v1/users/1", user},
		{http.MethodGet, "/api/v1/health-agencies/1/polyclinics/admin", user},
		{http.MethodGet, "/api/v1/waiting-list", user},
		{http.MethodGet, "/api/v1/waiting-list/export", user},
		{http.MethodGet, "/api/v1/audit-logs", admin},
	}

	for _, tt := range tests {
		rec := f.do(tt.method, tt.target, tt.token)
		assert.Equal(t, http.StatusForbidden, rec.Code, tt.method+" "+tt.target)
	}
}

func TestRouter_UnknownRoutesUseEnvelope(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, success(t, rec))

	rec = f.do(http.MethodGet, "/api/v1/health-agencies/abc", f.token(t, entity.RoleUser))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodPatch, "/api/v1/poly-masters/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.False(t, success(t, rec))
}

func TestRouter_WrongMethodOnSubrouters(t *testing.T) {
	f := newRouterFixture(t)

	tests := []struct {
		method string
		target string
		allow  string
	}{
		{http.MethodPatch, "/api/v1/poly-masters/1", "GET, PUT, DELETE"},
		{http.MethodPost, "/api/v1/health-agencies/1", "GET, PUT, DELETE"},
		{http.MethodGet, "/api/v1/auth/login", "POST"},
		{http.MethodPost, "/api/v1/auth/me", "GET"},
		{http.MethodDelete, "/api/v1/waiting-list/export", "GET"},
		{http.MethodPut, "/api/v1/audit-logs/3", "GET"},
	}

	for _, tt := range tests {
		rec := f.do(tt.method, tt.target, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, tt.method+" "+tt.target)
		assert.Equal(t, tt.allow, rec.Header().Get("Allow"), tt.method+" "+tt.target)
		assert.False(t, success(t, rec))
	}

	rec := f.do(http.MethodGet, "/api/v1/waiting-list/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get("Allow"))
}

func TestRouter_Preflight(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/health-agencies", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_ServesStorage(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/storage/img/users/me.png", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "face", rec.Body.String())
}
