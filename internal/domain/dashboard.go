package domain

import "time"

// MonthlyCount é a contagem de apólices de um mês, separada por frequência de pagamento
type MonthlyCount struct {
	Month     string `json:"month"` // Formato yyyy-mm (ex: 2024-03)
	Annual    int    `json:"annual"`
	NonAnnual int    `json:"nonAnnual"`
	Total     int    `json:"total"`
}

// MonthlyRevenue é a receita anualizada das apólices criadas em um mês
type MonthlyRevenue struct {
	Month   string  `json:"month"` // Formato yyyy-mm (ex: 2024-03)
	Revenue float64 `json:"revenue"`
}

// CategoryShare é uma fatia de distribuição. Value é contagem ou porcentagem conforme o gráfico.
type CategoryShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Summary contém os indicadores escalares do painel
type Summary struct {
	TotalPolicies     int     `json:"totalPolicies"`
	AnnualPolicies    int     `json:"annualPolicies"`
	NonAnnualPolicies int     `json:"nonAnnualPolicies"`
	AnnualPercentage  float64 `json:"annualPercentage"`
	MonthlyPercentage float64 `json:"monthlyPercentage"`
	TotalPets         int     `json:"totalPets"`
	PetPolicyRatio    float64 `json:"petPolicyRatio"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// Dashboard agrupa todas as saídas de uma execução de agregação
type Dashboard struct {
	MonthlyPolicies     []MonthlyCount   `json:"monthlyPolicies"`
	MonthlyRevenue      []MonthlyRevenue `json:"monthlyRevenue"`
	CityDistribution    []CategoryShare  `json:"cityDistribution"`
	SpeciesDistribution []CategoryShare  `json:"speciesDistribution"`
	PlanDistribution    []CategoryShare  `json:"planDistribution"`
	Summary             Summary          `json:"summary"`
	SkippedPolicies     int              `json:"skippedPolicies"`
	GeneratedAt         time.Time        `json:"generatedAt"`
}

// Distribution devolve a distribuição pelo nome usado na API
func (d *Dashboard) Distribution(kind DistributionKind) ([]CategoryShare, bool) {
	switch kind {
	case DistributionCities:
		return d.CityDistribution, true
	case DistributionSpecies:
		return d.SpeciesDistribution, true
	case DistributionPlans:
		return d.PlanDistribution, true
	}
	return nil, false
}

type DistributionKind string

const (
	DistributionCities  DistributionKind = "cities"
	DistributionSpecies DistributionKind = "species"
	DistributionPlans   DistributionKind = "plans"
)
