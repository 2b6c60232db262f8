package dashboarding

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/policy-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NormalizePets resolve o campo de mascotas em uma lista uniforme.
// Uma lista nativa é devolvida sem alterações; uma string precisa conter
// um array JSON de mascotas.
func NormalizePets(field domain.PetList) ([]domain.Pet, error) {
	switch field.Kind {
	case domain.PetListSequence:
		if field.Pets == nil {
			return []domain.Pet{}, nil
		}
		return field.Pets, nil
	case domain.PetListEncoded:
		return decodeEncodedPets(field.Encoded)
	case domain.PetListMissing:
		return nil, errors.Wrap(ErrParse, "campo ausente")
	}

	return nil, errors.Wrap(ErrParse, "valor não é lista nem string")
}

func decodeEncodedPets(encoded string) ([]domain.Pet, error) {
	raw := []byte(strings.TrimSpace(encoded))

	if !json.Valid(raw) {
		return nil, errors.Wrap(ErrParse, "string não contém JSON válido")
	}
	if len(raw) == 0 || raw[0] != '[' {
		return nil, errors.Wrap(ErrParse, "JSON não é uma lista")
	}

	var pets []domain.Pet
	if err := json.Unmarshal(raw, &pets); err != nil {
		return nil, errors.Wrapf(ErrParse, "lista com itens inválidos: %v", err)
	}
	if pets == nil {
		pets = []domain.Pet{}
	}

	return pets, nil
}

// policyResult é a apólice com as mascotas já normalizadas
type policyResult struct {
	index      int
	policy     domain.Policy
	pets       []domain.Pet
	parseErr   error
	pricingErr error
}

func (r *policyResult) failed() bool {
	return r.parseErr != nil || r.pricingErr != nil
}
