package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/policy-dashboard-api/internal/config"
	"github.com/vfg2006/policy-dashboard-api/internal/usecases/dashboarding"
)

// DashboardRefreshConfig representa a configuração do agendador de recálculo do painel
type DashboardRefreshConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// DashboardRefreshService recalcula periodicamente o painel de apólices,
// mantendo o cache do serviço aquecido
type DashboardRefreshService struct {
	scheduler           *gocron.Scheduler
	config              DashboardRefreshConfig
	dashboardService    dashboarding.Dashboarder
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

// NewDashboardRefreshService cria uma nova instância do serviço de recálculo do painel
func NewDashboardRefreshService(dashboardService dashboarding.Dashboarder, appConfig *config.Config) *DashboardRefreshService {
	refreshConfig := DashboardRefreshConfig{
		CronSchedule: appConfig.DashboardRefresh.CronSchedule,
		SyncEnabled:  appConfig.DashboardRefresh.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"sync_enabled":  refreshConfig.SyncEnabled,
	}).Info("Configuração do agendador de recálculo do painel carregada")

	return &DashboardRefreshService{
		scheduler:        gocron.NewScheduler(time.Local),
		config:           refreshConfig,
		dashboardService: dashboardService,
	}
}

// Start inicia o agendador
func (s *DashboardRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Recálculo agendado do painel desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de recálculo do painel")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recálculo do painel: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de recálculo do painel")
		s.scheduler.Stop()
	}()

	return nil
}

// refresh recalcula o painel. Execuções sobrepostas são ignoradas.
func (s *DashboardRefreshService) refresh(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo do painel já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	var syncErr error
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.lastSyncError = ""
		if syncErr != nil {
			s.lastSyncError = syncErr.Error()
		}
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando recálculo do painel de apólices")

	dashboard, err := s.dashboardService.RefreshDashboard(ctx)
	if err != nil {
		syncErr = err
		logrus.WithError(err).Error("Erro ao recalcular o painel de apólices")
		return
	}

	logrus.WithFields(logrus.Fields{
		"duration":         time.Since(startTime).String(),
		"total_policies":   dashboard.Summary.TotalPolicies,
		"skipped_policies": dashboard.SkippedPolicies,
	}).Info("Recálculo do painel de apólices concluído")
}

// TriggerManualSync dispara um recálculo fora do agendamento.
// Retorna false quando já existe um recálculo em andamento.
func (s *DashboardRefreshService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo do painel já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recálculo manual do painel")
	go s.refresh(context.Background())

	return true
}

// GetStatus retorna o status atual do agendador
func (s *DashboardRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
