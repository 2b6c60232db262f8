package dashboarding

import (
	"time"

	"github.com/vfg2006/policy-dashboard-api/internal/domain"
	"github.com/vfg2006/policy-dashboard-api/pkg/log"
)

// isolateFunc aplica a política de isolamento a uma apólice com erro.
// Devolve nil para seguir com as demais apólices.
type isolateFunc func(result *policyResult, err error) error

// Aggregator executa o pipeline de agregação sobre uma lista em memória.
// Cada execução é independente e determinística.
type Aggregator struct {
	opts   Options
	logger log.Logger
	now    func() time.Time
}

func NewAggregator(opts Options) (*Aggregator, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return &Aggregator{
		opts:   opts,
		logger: log.L,
		now:    time.Now,
	}, nil
}

// Options devolve as opções usadas pelo agregador
func (a *Aggregator) Options() Options {
	return a.opts
}

// Aggregate calcula todas as saídas do painel para a lista de apólices
func (a *Aggregator) Aggregate(policies []domain.Policy) (*domain.Dashboard, error) {
	isolate := a.isolation()

	results, err := resolvePolicies(policies, isolate)
	if err != nil {
		return nil, err
	}

	revenue, err := computeRevenue(results, a.opts.Location, isolate)
	if err != nil {
		return nil, err
	}

	species := speciesDistribution(results)
	totalRevenue := revenue.total.InexactFloat64()

	skipped := 0
	for _, result := range results {
		if result.failed() {
			skipped++
		}
	}

	if skipped > 0 {
		a.logger.WithFields(log.Fields{
			"dashboard_skipped_policies": skipped,
			"dashboard_total_policies":   len(policies),
		}).Warn("dashboard: apólices ignoradas na agregação")
	}

	return &domain.Dashboard{
		MonthlyPolicies:     MonthlyPolicyCounts(policies, a.opts.Location),
		MonthlyRevenue:      revenue.monthly,
		CityDistribution:    CityDistribution(policies, a.opts.TopCities),
		SpeciesDistribution: species,
		PlanDistribution:    planDistribution(results),
		Summary:             BuildSummary(policies, species, totalRevenue),
		SkippedPolicies:     skipped,
		GeneratedAt:         a.now(),
	}, nil
}

func (a *Aggregator) isolation() isolateFunc {
	if a.opts.Isolation == IsolationAbort {
		return func(result *policyResult, err error) error {
			return newPolicyError(result.index, err)
		}
	}

	return func(result *policyResult, err error) error {
		a.logger.WithFields(log.Fields{
			"policy_index":      result.index,
			"policy_created_at": result.policy.CreatedAt,
			"error":             err.Error(),
		}).Warn("dashboard: apólice contribui com zero")
		return nil
	}
}

// resolvePolicies normaliza as mascotas de cada apólice uma única vez
func resolvePolicies(policies []domain.Policy, isolate isolateFunc) ([]*policyResult, error) {
	results := make([]*policyResult, 0, len(policies))

	for i, policy := range policies {
		result := &policyResult{index: i, policy: policy}

		pets, err := NormalizePets(policy.Pets)
		if err != nil {
			result.parseErr = err
			if err := isolate(result, err); err != nil {
				return nil, err
			}
		} else {
			result.pets = pets
		}

		results = append(results, result)
	}

	return results, nil
}
