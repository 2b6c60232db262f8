package dashboarding

import (
	"github.com/vfg2006/policy-dashboard-api/internal/domain"
	"github.com/vfg2006/policy-dashboard-api/pkg/utils"
)

// BuildSummary calcula os indicadores escalares. Com zero apólices todas as
// razões e porcentagens ficam em 0.
func BuildSummary(policies []domain.Policy, species []domain.CategoryShare, totalRevenue float64) domain.Summary {
	totalPolicies := len(policies)

	annualPolicies := 0
	for _, policy := range policies {
		if policy.IsAnnualPlan {
			annualPolicies++
		}
	}
	nonAnnualPolicies := totalPolicies - annualPolicies

	totalPets := 0
	for _, share := range species {
		totalPets += int(share.Value)
	}

	return domain.Summary{
		TotalPolicies:     totalPolicies,
		AnnualPolicies:    annualPolicies,
		NonAnnualPolicies: nonAnnualPolicies,
		AnnualPercentage:  utils.RoundWithOneDecimalPlace(utils.Percentage(float64(annualPolicies), float64(totalPolicies))),
		MonthlyPercentage: utils.RoundWithOneDecimalPlace(utils.Percentage(float64(nonAnnualPolicies), float64(totalPolicies))),
		TotalPets:         totalPets,
		PetPolicyRatio:    utils.RoundWithTwoDecimalPlace(utils.Ratio(float64(totalPets), float64(totalPolicies))),
		TotalRevenue:      totalRevenue,
	}
}
