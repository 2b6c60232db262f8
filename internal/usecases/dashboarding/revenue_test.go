package dashboarding

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/policy-dashboard-api/internal/domain"
)

func TestPetPremium(t *testing.T) {
	prices := pricing(1000, 100, 1500, 150)

	tests := []struct {
		name   string
		rc     bool
		annual bool
		want   float64
	}{
		{name: "anual sem RC usa preço anual", rc: false, annual: true, want: 1000},
		{name: "mensal sem RC anualiza o mensal", rc: false, annual: false, want: 1200},
		{name: "anual com RC usa preço anual RC", rc: true, annual: true, want: 1500},
		{name: "mensal com RC anualiza o mensal RC", rc: true, annual: false, want: 1800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			premium, err := PetPremium(pet("dog", "Plus", tt.rc, prices), tt.annual)
			require.NoError(t, err)
			assert.Equal(t, tt.want, premium.InexactFloat64())
		})
	}
}

func TestPetPremium_MissingPricing(t *testing.T) {
	partial := pricing(1000, 100, 1500, 150)
	partial.MonthlyPriceRC = nil

	tests := []struct {
		name string
		pet  domain.Pet
	}{
		{name: "sem bloco de preços", pet: pet("dog", "Plus", false, nil)},
		{name: "bloco de preços incompleto", pet: pet("dog", "Plus", false, partial)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			premium, err := PetPremium(tt.pet, true)
			assert.True(t, errors.Is(err, ErrMissingPricing))
			assert.True(t, premium.IsZero())
		})
	}
}

func TestPolicyPremium_SumsPets(t *testing.T) {
	pets := []domain.Pet{
		pet("dog", "Plus", false, pricing(1000, 100, 1500, 150)),
		pet("cat", "Básico", true, pricing(500, 50, 700, 65.5)),
	}

	premium, err := PolicyPremium(pets, false)
	require.NoError(t, err)

	// 100*12 + 65.5*12
	assert.Equal(t, 1986.0, premium.InexactFloat64())
}

func TestAggregate_MalformedPetsContributeZero(t *testing.T) {
	aggregator, err := NewAggregator(utcOptions())
	require.NoError(t, err)

	policies := []domain.Policy{
		newPolicy(day(2024, 1, 10), true, "Bogotá", domain.NewPetSequence(
			pet("dog", "Plus", false, pricing(1000, 100, 1500, 150)),
		)),
		newPolicy(day(2024, 2, 10), false, "Cali", domain.NewEncodedPets(`[{"specie": "cat",`)),
	}

	dashboard, err := aggregator.Aggregate(policies)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, dashboard.Summary.TotalRevenue)
	assert.Equal(t, 1, dashboard.SkippedPolicies)
	assert.Equal(t, []domain.MonthlyRevenue{
		{Month: "2024-01", Revenue: 1000},
		{Month: "2024-02", Revenue: 0},
	}, dashboard.MonthlyRevenue)
}

func TestAggregate_MissingPricingContributesZeroButCountsPets(t *testing.T) {
	aggregator, err := NewAggregator(utcOptions())
	require.NoError(t, err)

	policies := []domain.Policy{
		newPolicy(day(2024, 3, 1), false, "Medellín", domain.NewPetSequence(
			pet("dog", "Plus", false, pricing(1000, 100, 1500, 150)),
		)),
		newPolicy(day(2024, 3, 2), false, "Medellín", domain.NewPetSequence(
			pet("dog", "Plus", false, pricing(1000, 80, 1500, 150)),
			pet("cat", "Básico", false, nil),
		)),
	}

	dashboard, err := aggregator.Aggregate(policies)
	require.NoError(t, err)

	// A segunda apólice inteira contribui com zero
	assert.Equal(t, 1200.0, dashboard.Summary.TotalRevenue)
	assert.Equal(t, []domain.MonthlyRevenue{{Month: "2024-03", Revenue: 1200}}, dashboard.MonthlyRevenue)
	assert.Equal(t, 1, dashboard.SkippedPolicies)
	assert.Equal(t, 3, dashboard.Summary.TotalPets)
}

func TestAggregate_RevenueByMonthMatchesTotal(t *testing.T) {
	aggregator, err := NewAggregator(utcOptions())
	require.NoError(t, err)

	prices := pricing(1000, 100, 1500, 150)
	policies := []domain.Policy{
		newPolicy(day(2024, 5, 1), true, "", domain.NewPetSequence(pet("dog", "Plus", true, prices))),
		newPolicy(day(2024, 4, 1), false, "", domain.NewPetSequence(pet("dog", "Plus", false, prices), pet("cat", "Plus", true, prices))),
		newPolicy(day(2024, 5, 20), false, "", domain.NewPetSequence(pet("cat", "Plus", false, prices))),
	}

	dashboard, err := aggregator.Aggregate(policies)
	require.NoError(t, err)

	require.Len(t, dashboard.MonthlyRevenue, 2)
	assert.Equal(t, domain.MonthlyRevenue{Month: "2024-04", Revenue: 3000}, dashboard.MonthlyRevenue[0])
	assert.Equal(t, domain.MonthlyRevenue{Month: "2024-05", Revenue: 2700}, dashboard.MonthlyRevenue[1])
	assert.Equal(t, 5700.0, dashboard.Summary.TotalRevenue)
}
