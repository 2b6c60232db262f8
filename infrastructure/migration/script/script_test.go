package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/policy-dashboard-api/internal/domain"
)

func TestBuildInsertPolicy(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	policy := domain.Policy{
		CreatedAt:    createdAt,
		IsAnnualPlan: true,
		Pets:         domain.NewEncodedPets(`[{"specie":"dog"}]`),
	}

	query, args, err := buildInsertPolicy("abc123", policy, "bivett")
	require.NoError(t, err)

	assert.Equal(t,
		`INSERT INTO full_query_polizas (id,created_at,"isAnualPlan",ciudad,lista_mascotas,share_data) VALUES ($1,$2,$3,$4,$5,$6)`,
		query,
	)
	require.Len(t, args, 6)
	assert.Equal(t, "abc123", args[0])
	assert.Equal(t, createdAt, args[1])
	assert.Equal(t, true, args[2])
	assert.Nil(t, args[3])
	assert.Equal(t, `"[{\"specie\":\"dog\"}]"`, args[4])
	assert.Equal(t, `{"aliance":"bivett"}`, args[5])
}

func TestLoadPolicies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policies.json")
	content := `[
		{"created_at":"2024-01-05T10:00:00Z","isAnnualPlan":true,"city":"Cali","pets":[{"specie":"dog","plan":"Plus","rc":false}]},
		{"created_at":"2024-02-10T10:00:00Z","isAnnualPlan":false,"pets":"[]"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	policies, err := loadPolicies(path)
	require.NoError(t, err)
	require.Len(t, policies, 2)

	assert.Equal(t, domain.PetListSequence, policies[0].Pets.Kind)
	assert.Equal(t, domain.PetListEncoded, policies[1].Pets.Kind)
	assert.Equal(t, "", policies[1].City)

	_, err = loadPolicies(filepath.Join(t.TempDir(), "inexistente.json"))
	assert.Error(t, err)
}

func TestLoadPolicies_Fixture(t *testing.T) {
	policies, err := loadPolicies(filepath.Join("..", "..", "..", "fixtures", "policies.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, policies)
}
