package dashboarding

import (
	"sort"
	"strings"

	"github.com/vfg2006/policy-dashboard-api/internal/domain"
	"github.com/vfg2006/policy-dashboard-api/pkg/utils"
)

const (
	unknownCity    = "Unknown"
	unknownSpecies = "unknown"
	unknownPlan    = "Unknown"
)

// CityDistribution conta apólices por cidade e mantém apenas as top maiores
func CityDistribution(policies []domain.Policy, top int) []domain.CategoryShare {
	counts := make(map[string]int)
	for _, policy := range policies {
		city := strings.TrimSpace(policy.City)
		if city == "" {
			city = unknownCity
		}
		counts[city]++
	}

	shares := sharesFromCounts(counts)
	if top > 0 && len(shares) > top {
		shares = shares[:top]
	}

	return shares
}

// speciesDistribution conta mascotas por espécie, sem diferenciar maiúsculas
func speciesDistribution(results []*policyResult) []domain.CategoryShare {
	counts := make(map[string]int)
	for _, result := range results {
		if result.parseErr != nil {
			continue
		}
		for _, pet := range result.pets {
			species := strings.ToLower(strings.TrimSpace(pet.Species))
			if species == "" {
				species = unknownSpecies
			}
			counts[species]++
		}
	}

	return sharesFromCounts(counts)
}

// planDistribution devolve a porcentagem de cada plano sobre o total de
// atribuições mascote-plano, não sobre o total de apólices
func planDistribution(results []*policyResult) []domain.CategoryShare {
	counts := make(map[string]int)
	totalPlans := 0
	for _, result := range results {
		if result.parseErr != nil {
			continue
		}
		for _, pet := range result.pets {
			plan := strings.TrimSpace(pet.Plan)
			if plan == "" {
				plan = unknownPlan
			}
			counts[plan]++
			totalPlans++
		}
	}

	shares := sharesFromCounts(counts)
	for i := range shares {
		shares[i].Value = utils.Percentage(shares[i].Value, float64(totalPlans))
	}

	return shares
}

// sharesFromCounts ordena por valor decrescente e, no empate, por nome
func sharesFromCounts(counts map[string]int) []domain.CategoryShare {
	shares := make([]domain.CategoryShare, 0, len(counts))
	for name, count := range counts {
		shares = append(shares, domain.CategoryShare{Name: name, Value: float64(count)})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Value != shares[j].Value {
			return shares[i].Value > shares[j].Value
		}
		return shares[i].Name < shares[j].Name
	})

	return shares
}
