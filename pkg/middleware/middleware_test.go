package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/policy-dashboard-api/internal/domain"
	"github.com/vfg2006/policy-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/policy-dashboard-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/policy-dashboard-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthenticator(ctrl)
	claims := &domain.Claims{Alliance: "bivett"}

	tests := []struct {
		name       string
		path       string
		setupReq   func(r *http.Request)
		setup      func()
		wantStatus int
	}{
		{
			name:       "Rota pública não exige token",
			path:       "/healthcheck",
			setupReq:   func(r *http.Request) {},
			setup:      func() {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Sem token deve retornar 401",
			path:       "/v1/dashboard",
			setupReq:   func(r *http.Request) {},
			setup:      func() {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Token no header Authorization",
			path: "/v1/dashboard",
			setupReq: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer token-header")
			},
			setup: func() {
				mockAuth.EXPECT().ValidateToken("token-header").Return(claims, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Token no cookie de sessão",
			path: "/v1/dashboard",
			setupReq: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "token-cookie"})
			},
			setup: func() {
				mockAuth.EXPECT().ValidateToken("token-cookie").Return(claims, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Token expirado deve retornar 401",
			path: "/v1/dashboard",
			setupReq: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer vencido")
			},
			setup: func() {
				mockAuth.EXPECT().ValidateToken("vencido").
					Return(nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			tt.setupReq(req)
			rec := httptest.NewRecorder()

			AuthMiddleware(mockAuth)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_ExpiredTokenCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthenticator(ctrl)
	mockAuth.EXPECT().ValidateToken("vencido").
		Return(nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer vencido")
	rec := httptest.NewRecorder()

	AuthMiddleware(mockAuth)(okHandler()).ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), apiErrors.ErrExpiredToken)
}

func TestRequireAlliance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthenticator(ctrl)
	mockAuth.EXPECT().ValidateToken("bivett").Return(&domain.Claims{Alliance: "bivett"}, nil)
	mockAuth.EXPECT().ValidateToken("outra").Return(&domain.Claims{Alliance: "outra"}, nil)

	handler := AuthMiddleware(mockAuth)(RequireAlliance("bivett")(okHandler()))

	for token, want := range map[string]int{"bivett": http.StatusOK, "outra": http.StatusUnauthorized} {
		req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, token)
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/dashboard", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falha inesperada")
	})

	rec := httptest.NewRecorder()
	LogPanicMiddleware()(LoggingMiddleware()(panicking)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
