package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/policy-dashboard-api/internal/domain"
	"github.com/vfg2006/policy-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/policy-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/policy-dashboard-api/pkg/log"
)

// ComputeRequest aceita uma lista de apólices já extraída do banco.
// O corpo também pode ser a lista pura.
type ComputeRequest struct {
	Policies []domain.Policy `json:"policies"`
}

func decodePolicies(body io.Reader) ([]domain.Policy, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var policies []domain.Policy
		if err := json.Unmarshal(trimmed, &policies); err != nil {
			return nil, err
		}
		return policies, nil
	}

	var req ComputeRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, err
	}
	return req.Policies, nil
}

// loadDashboard resolve o painel respeitando ?refresh=true
func loadDashboard(service dashboarding.Dashboarder, w http.ResponseWriter, r *http.Request) (*domain.Dashboard, bool) {
	logger := log.ForContext(r.Context())

	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	var (
		dashboard *domain.Dashboard
		err       error
	)
	if refresh {
		dashboard, err = service.RefreshDashboard(r.Context())
	} else {
		dashboard, err = service.GetDashboard(r.Context())
	}

	if err != nil {
		logger.WithError(err).Error("dashboard: erro ao montar o painel")
		writeDashboardError(w, err)
		return nil, false
	}

	return dashboard, true
}

func writeDashboardError(w http.ResponseWriter, err error) {
	var policyErr *dashboarding.PolicyError
	if errors.As(err, &policyErr) {
		apiErrors.WriteError(w, apiErrors.ErrDashboardAggregation, policyErr.Error(), map[string]any{
			"policy_index": policyErr.PolicyIndex,
		})
		return
	}

	if errors.Is(err, dashboarding.ErrParse) || errors.Is(err, dashboarding.ErrMissingPricing) {
		apiErrors.WriteError(w, apiErrors.ErrDashboardAggregation, err.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar as apólices", nil)
}

// GetDashboard retorna o painel completo
func GetDashboard(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dashboard, ok := loadDashboard(service, w, r)
		if !ok {
			return
		}

		writeJSON(w, r, http.StatusOK, dashboard)
	})
}

func GetSummary(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dashboard, ok := loadDashboard(service, w, r)
		if !ok {
			return
		}

		writeJSON(w, r, http.StatusOK, dashboard.Summary)
	})
}

func GetMonthlyPolicies(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dashboard, ok := loadDashboard(service, w, r)
		if !ok {
			return
		}

		writeJSON(w, r, http.StatusOK, dashboard.MonthlyPolicies)
	})
}

func GetMonthlyRevenue(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dashboard, ok := loadDashboard(service, w, r)
		if !ok {
			return
		}

		writeJSON(w, r, http.StatusOK, dashboard.MonthlyRevenue)
	})
}

// GetDistribution retorna a distribuição por cidades, espécies ou planos
func GetDistribution(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind := domain.DistributionKind(httprouter.ParamsFromContext(r.Context()).ByName("kind"))

		dashboard, ok := loadDashboard(service, w, r)
		if !ok {
			return
		}

		shares, found := dashboard.Distribution(kind)
		if !found {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Distribuição inválida. Valores aceitos: cities, species, plans", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, shares)
	})
}

func GetTheme(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.GetTheme())
	})
}

// ComputeDashboard calcula o painel para as apólices enviadas no corpo,
// sem consultar o banco nem usar o cache
func ComputeDashboard(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		policies, err := decodePolicies(r.Body)
		if err != nil {
			logger.WithError(err).Warn("dashboard: corpo de apólices inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Lista de apólices inválida", nil)
			return
		}

		dashboard, err := service.ComputeDashboard(policies)
		if err != nil {
			logger.WithError(err).Warn("dashboard: agregação interrompida")
			writeDashboardError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, dashboard)
	})
}
