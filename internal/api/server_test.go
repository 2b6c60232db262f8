package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/policy-dashboard-api/internal/config"
	"github.com/vfg2006/policy-dashboard-api/internal/domain"
	authmocks "github.com/vfg2006/policy-dashboard-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/policy-dashboard-api/internal/usecases/dashboarding/mocks"
	"go.uber.org/mock/gomock"
)

func newTestServer(t *testing.T) (*Server, *mocks.MockDashboarder, *authmocks.MockAuthenticator) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	dashboardService := mocks.NewMockDashboarder(ctrl)
	authenticator := authmocks.NewMockAuthenticator(ctrl)

	cfg := &config.Config{
		Server:    config.Server{Host: "localhost", Port: "8000"},
		Dashboard: config.Dashboard{Alliance: "bivett"},
		Cors:      config.Cors{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	srv, err := New(cfg, dashboardService, authenticator, nil)
	require.NoError(t, err)

	return srv, dashboardService, authenticator
}

func TestServer_Healthcheck(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

func TestServer_DashboardRequiresSession(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard/summary", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_DashboardWithBearerToken(t *testing.T) {
	srv, dashboardService, authenticator := newTestServer(t)

	authenticator.EXPECT().ValidateToken("jwt").Return(&domain.Claims{Alliance: "bivett"}, nil)
	dashboardService.EXPECT().GetDashboard(gomock.Any()).Return(&domain.Dashboard{
		Summary: domain.Summary{TotalPolicies: 7},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/summary", nil)
	req.Header.Set("Authorization", "Bearer jwt")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalPolicies":7`)
}
