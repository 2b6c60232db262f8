package dashboarding

import (
	"sort"
	"time"

	"github.com/vfg2006/policy-dashboard-api/internal/domain"
	"github.com/vfg2006/policy-dashboard-api/pkg/utils"
)

// MonthlyPolicyCounts agrupa as apólices por mês de criação no fuso informado.
// Meses sem apólices não aparecem; a saída é ordenada pela chave yyyy-mm.
func MonthlyPolicyCounts(policies []domain.Policy, loc *time.Location) []domain.MonthlyCount {
	buckets := make(map[string]*domain.MonthlyCount)

	for _, policy := range policies {
		month := utils.MonthKey(policy.CreatedAt, loc)

		bucket, ok := buckets[month]
		if !ok {
			bucket = &domain.MonthlyCount{Month: month}
			buckets[month] = bucket
		}

		if policy.IsAnnualPlan {
			bucket.Annual++
		} else {
			bucket.NonAnnual++
		}
		bucket.Total++
	}

	counts := make([]domain.MonthlyCount, 0, len(buckets))
	for _, bucket := range buckets {
		counts = append(counts, *bucket)
	}

	// Chaves com zero à esquerda: ordem lexicográfica = ordem cronológica
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Month < counts[j].Month
	})

	return counts
}
