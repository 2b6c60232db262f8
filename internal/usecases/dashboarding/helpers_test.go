package dashboarding

import (
	"time"

	"github.com/vfg2006/policy-dashboard-api/internal/domain"
)

func float64Ptr(f float64) *float64 {
	return &f
}

func pricing(annual, monthly, annualRC, monthlyRC float64) *domain.PetPricing {
	return &domain.PetPricing{
		AnnualPrice:    float64Ptr(annual),
		MonthlyPrice:   float64Ptr(monthly),
		AnnualPriceRC:  float64Ptr(annualRC),
		MonthlyPriceRC: float64Ptr(monthlyRC),
	}
}

func pet(species, plan string, rc bool, prices *domain.PetPricing) domain.Pet {
	return domain.Pet{Species: species, Plan: plan, RC: rc, Pricing: prices}
}

func newPolicy(createdAt time.Time, annual bool, city string, pets domain.PetList) domain.Policy {
	return domain.Policy{
		CreatedAt:    createdAt,
		IsAnnualPlan: annual,
		City:         city,
		Pets:         pets,
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func utcOptions() Options {
	opts := DefaultOptions()
	opts.Location = time.UTC
	return opts
}
