package dashboarding

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/policy-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/policy-dashboard-api/internal/config"
	"github.com/vfg2006/policy-dashboard-api/internal/domain"
	"github.com/vfg2006/policy-dashboard-api/pkg/log"
)

// Dashboarder define as operações do painel de apólices
type Dashboarder interface {
	// GetDashboard devolve o último painel calculado enquanto estiver dentro do TTL
	GetDashboard(ctx context.Context) (*domain.Dashboard, error)

	// RefreshDashboard busca as apólices no banco e recalcula o painel
	RefreshDashboard(ctx context.Context) (*domain.Dashboard, error)

	// ComputeDashboard calcula o painel para uma lista recebida, sem cache
	ComputeDashboard(policies []domain.Policy) (*domain.Dashboard, error)

	// GetTheme devolve a tabela de cores dos gráficos
	GetTheme() domain.ChartTheme
}

type Service struct {
	policyRepo repository.PolicyRepository
	aggregator *Aggregator
	alliance   string
	theme      domain.ChartTheme
	cacheTTL   time.Duration
	now        func() time.Time

	cacheMutex sync.RWMutex
	cached     *domain.Dashboard
	cachedAt   time.Time
}

func NewService(cfg *config.Config, policyRepo repository.PolicyRepository) (*Service, error) {
	opts, err := NewOptions(cfg.Dashboard)
	if err != nil {
		return nil, err
	}

	aggregator, err := NewAggregator(opts)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"alliance":         cfg.Dashboard.Alliance,
		"timezone":         opts.Location.String(),
		"top_cities":       opts.TopCities,
		"isolation_policy": opts.Isolation,
		"cache_ttl":        cfg.Dashboard.CacheTTL.String(),
	}).Info("Configuração do painel de apólices carregada")

	return &Service{
		policyRepo: policyRepo,
		aggregator: aggregator,
		alliance:   cfg.Dashboard.Alliance,
		theme:      NewChartTheme(cfg.Theme),
		cacheTTL:   cfg.Dashboard.CacheTTL,
		now:        time.Now,
	}, nil
}

func (s *Service) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	if dashboard, ok := s.cachedDashboard(); ok {
		log.ForContext(ctx).Debug("dashboard: usando painel em cache")
		return dashboard, nil
	}

	return s.RefreshDashboard(ctx)
}

func (s *Service) RefreshDashboard(ctx context.Context) (*domain.Dashboard, error) {
	logger := log.ForContext(ctx)
	startedAt := s.now()

	policies, err := s.policyRepo.ListPolicies(ctx, s.alliance)
	if err != nil {
		logger.WithError(err).Error("dashboard: erro ao buscar apólices")
		return nil, err
	}

	dashboard, err := s.aggregator.Aggregate(policies)
	if err != nil {
		logger.WithError(err).Error("dashboard: erro na agregação")
		return nil, err
	}

	s.cacheMutex.Lock()
	s.cached = dashboard
	s.cachedAt = s.now()
	s.cacheMutex.Unlock()

	logger.WithFields(log.Fields{
		"dashboard_policies":    len(policies),
		"dashboard_skipped":     dashboard.SkippedPolicies,
		"dashboard_duration_ms": s.now().Sub(startedAt).Milliseconds(),
	}).Info("dashboard: painel recalculado")

	return dashboard, nil
}

func (s *Service) ComputeDashboard(policies []domain.Policy) (*domain.Dashboard, error) {
	return s.aggregator.Aggregate(policies)
}

func (s *Service) GetTheme() domain.ChartTheme {
	return s.theme
}

func (s *Service) cachedDashboard() (*domain.Dashboard, bool) {
	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()

	if s.cached == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	if s.now().Sub(s.cachedAt) >= s.cacheTTL {
		return nil, false
	}

	return s.cached, true
}

// NewChartTheme monta a tabela de cores a partir da configuração
func NewChartTheme(cfg config.Theme) domain.ChartTheme {
	series := make([]string, len(cfg.ChartColors))
	copy(series, cfg.ChartColors)

	return domain.ChartTheme{
		PrimaryBlue:   cfg.PrimaryBlue,
		SecondaryBlue: cfg.SecondaryBlue,
		LightBlue:     cfg.LightBlue,
		AccentGreen:   cfg.AccentGreen,
		White:         cfg.White,
		Series:        series,
	}
}
