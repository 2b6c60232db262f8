package dashboarding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/policy-dashboard-api/internal/domain"
)

func TestBuildSummary(t *testing.T) {
	policies := []domain.Policy{
		newPolicy(day(2024, 1, 1), true, "", domain.NewPetSequence()),
		newPolicy(day(2024, 1, 2), false, "", domain.NewPetSequence()),
		newPolicy(day(2024, 1, 3), false, "", domain.NewPetSequence()),
	}
	species := []domain.CategoryShare{
		{Name: "dog", Value: 3},
		{Name: "cat", Value: 1},
	}

	summary := BuildSummary(policies, species, 4200)

	assert.Equal(t, domain.Summary{
		TotalPolicies:     3,
		AnnualPolicies:    1,
		NonAnnualPolicies: 2,
		AnnualPercentage:  33.3,
		MonthlyPercentage: 66.7,
		TotalPets:         4,
		PetPolicyRatio:    1.33,
		TotalRevenue:      4200,
	}, summary)
}

func TestBuildSummary_EmptyInput(t *testing.T) {
	summary := BuildSummary(nil, nil, 0)

	for _, value := range []float64{summary.AnnualPercentage, summary.MonthlyPercentage, summary.PetPolicyRatio} {
		assert.False(t, math.IsNaN(value))
		assert.False(t, math.IsInf(value, 0))
		assert.Equal(t, 0.0, value)
	}
	assert.Equal(t, 0, summary.TotalPolicies)
	assert.Equal(t, 0, summary.TotalPets)
}
