package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/policy-dashboard-api/internal/scheduler"
	"github.com/vfg2006/policy-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/policy-dashboard-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeDashboardRefresh = "dashboard-refresh"
)

// CronJob é o contrato dos serviços agendados que podem ser disparados manualmente
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	DashboardRefreshService CronJob
}

// NewCronJobServices agrupa os serviços agendados da aplicação
func NewCronJobServices(refresh *scheduler.DashboardRefreshService) CronJobServices {
	if refresh == nil {
		return CronJobServices{}
	}
	return CronJobServices{DashboardRefreshService: refresh}
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeDashboardRefresh:
			if services.DashboardRefreshService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de recálculo do painel não disponível", nil)
				return
			}
			if !services.DashboardRefreshService.TriggerManualSync() {
				apiErrors.WriteError(w, apiErrors.ErrDashboardBusy, "Recálculo do painel já em andamento", nil)
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: dashboard-refresh", nil)
			return
		}

		logger.WithField("cron_type", cronType).Info("Cron job disparada manualmente")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.DashboardRefreshService != nil {
			status[CronJobTypeDashboardRefresh] = services.DashboardRefreshService.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
