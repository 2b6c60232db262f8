// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

//go:generate mockgen -source=policy.go -destination=mocks/policy.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/policy-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/policy-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	policiesView = "full_query_polizas"
)

type PolicyRepository interface {
	ListPolicies(ctx context.Context, alliance string) ([]domain.Policy, error)
}

type policyRepository struct {
	conn postgres.Queryer
}

func NewPolicyRepository(conn postgres.Queryer) PolicyRepository {
	return &policyRepository{
		conn: conn,
	}
}

// ListPolicies busca as apólices da aliança informada. Alliance vazia não filtra.
func (r *policyRepository) ListPolicies(ctx context.Context, alliance string) ([]domain.Policy, error) {
	sqlQuery, args, err := buildListPoliciesQuery(alliance)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	policies := make([]domain.Policy, 0)
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear apólice: %w", err)
		}
		policies = append(policies, *policy)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return policies, nil
}

func buildListPoliciesQuery(alliance string) (string, []interface{}, error) {
	queryBuilder := squirrel.
		Select(
			"created_at",
			`"isAnualPlan"`,
			"ciudad",
			"lista_mascotas::text",
		).
		From(policiesView).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if alliance != "" {
		filter, err := json.Marshal(map[string]string{"aliance": alliance})
		if err != nil {
			return "", nil, err
		}
		queryBuilder = queryBuilder.Where(squirrel.Expr("share_data::jsonb @> ?::jsonb", string(filter)))
	}

	return queryBuilder.ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPolicy(row rowScanner) (*domain.Policy, error) {
	var (
		policy     domain.Policy
		annualPlan sql.NullBool
		city       sql.NullString
		pets       sql.NullString
	)

	if err := row.Scan(&policy.CreatedAt, &annualPlan, &city, &pets); err != nil {
		return nil, err
	}

	policy.IsAnnualPlan = annualPlan.Valid && annualPlan.Bool
	policy.City = city.String
	policy.Pets = decodePetsColumn(pets)

	return &policy, nil
}

// decodePetsColumn converte a coluna lista_mascotas. Texto que não é JSON
// vira uma lista codificada para que a normalização gere o erro.
func decodePetsColumn(column sql.NullString) domain.PetList {
	if !column.Valid {
		return domain.PetList{Kind: domain.PetListMissing}
	}

	var pets domain.PetList
	if err := json.Unmarshal([]byte(column.String), &pets); err != nil {
		return domain.NewEncodedPets(column.String)
	}

	return pets
}
