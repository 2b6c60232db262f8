package handler

import (
	"net/http"

	"github.com/vfg2006/policy-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/policy-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/policy-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/policy-dashboard-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/logout",
			Method:  http.MethodPost,
			Handler: Logout(),
		},
	}
}

func Dashboard(service dashboarding.Dashboarder, alliance string) []router.Route {
	session := []func(http.Handler) http.Handler{middleware.RequireAlliance(alliance)}

	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: session,
		},
		{
			Path:        "/v1/dashboard/summary",
			Method:      http.MethodGet,
			Handler:     GetSummary(service),
			Middlewares: session,
		},
		{
			Path:        "/v1/dashboard/policies/monthly",
			Method:      http.MethodGet,
			Handler:     GetMonthlyPolicies(service),
			Middlewares: session,
		},
		{
			Path:        "/v1/dashboard/revenue/monthly",
			Method:      http.MethodGet,
			Handler:     GetMonthlyRevenue(service),
			Middlewares: session,
		},
		{
			Path:        "/v1/dashboard/distribution/:kind",
			Method:      http.MethodGet,
			Handler:     GetDistribution(service),
			Middlewares: session,
		},
		{
			Path:        "/v1/dashboard/theme",
			Method:      http.MethodGet,
			Handler:     GetTheme(service),
			Middlewares: session,
		},
		{
			Path:        "/v1/dashboard/compute",
			Method:      http.MethodPost,
			Handler:     ComputeDashboard(service),
			Middlewares: session,
		},
	}
}

func CronJobs(services CronJobServices, alliance string) []router.Route {
	session := []func(http.Handler) http.Handler{middleware.RequireAlliance(alliance)}

	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: session,
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: session,
		},
	}
}
