package dashboarding

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/policy-dashboard-api/internal/domain"
	"github.com/vfg2006/policy-dashboard-api/pkg/utils"
)

var monthsPerYear = decimal.NewFromInt(12)

// PetPremium calcula o prêmio anualizado de uma mascote.
// Planos mensais são multiplicados por 12 para ficarem comparáveis aos anuais.
func PetPremium(pet domain.Pet, annualPlan bool) (decimal.Decimal, error) {
	pricing := pet.Pricing
	if !pricing.Complete() {
		return decimal.Zero, errors.Wrapf(ErrMissingPricing, "plano %q", pet.Plan)
	}

	switch {
	case pet.RC && annualPlan:
		return decimal.NewFromFloat(*pricing.AnnualPriceRC), nil
	case pet.RC:
		return decimal.NewFromFloat(*pricing.MonthlyPriceRC).Mul(monthsPerYear), nil
	case annualPlan:
		return decimal.NewFromFloat(*pricing.AnnualPrice), nil
	default:
		return decimal.NewFromFloat(*pricing.MonthlyPrice).Mul(monthsPerYear), nil
	}
}

// PolicyPremium soma os prêmios das mascotas da apólice
func PolicyPremium(pets []domain.Pet, annualPlan bool) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, pet := range pets {
		premium, err := PetPremium(pet, annualPlan)
		if err != nil {
			return decimal.Zero, errors.Wrapf(err, "mascote %d", i)
		}
		total = total.Add(premium)
	}
	return total, nil
}

// revenueResult é a receita total e mensal de uma execução
type revenueResult struct {
	total   decimal.Decimal
	monthly []domain.MonthlyRevenue
}

// computeRevenue soma a receita por apólice. Todo mês observado aparece na
// saída, mesmo quando todas as suas apólices falharam.
func computeRevenue(results []*policyResult, loc *time.Location, isolate isolateFunc) (*revenueResult, error) {
	total := decimal.Zero
	byMonth := make(map[string]decimal.Decimal)

	for _, result := range results {
		month := utils.MonthKey(result.policy.CreatedAt, loc)
		if _, ok := byMonth[month]; !ok {
			byMonth[month] = decimal.Zero
		}

		if result.parseErr != nil {
			continue
		}

		premium, err := PolicyPremium(result.pets, result.policy.IsAnnualPlan)
		if err != nil {
			result.pricingErr = err
			if err := isolate(result, err); err != nil {
				return nil, err
			}
			continue
		}

		total = total.Add(premium)
		byMonth[month] = byMonth[month].Add(premium)
	}

	monthly := make([]domain.MonthlyRevenue, 0, len(byMonth))
	for month, revenue := range byMonth {
		monthly = append(monthly, domain.MonthlyRevenue{
			Month:   month,
			Revenue: revenue.InexactFloat64(),
		})
	}

	sort.Slice(monthly, func(i, j int) bool {
		return monthly[i].Month < monthly[j].Month
	})

	return &revenueResult{total: total, monthly: monthly}, nil
}
