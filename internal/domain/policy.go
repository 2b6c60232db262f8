// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"bytes"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/policy-dashboard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Policy representa uma apólice como chega do banco ou da API
type Policy struct {
	CreatedAt    time.Time `json:"created_at"`
	IsAnnualPlan bool      `json:"isAnnualPlan"`
	City         string    `json:"city,omitempty"`
	Pets         PetList   `json:"pets"`
}

type policyPayload struct {
	CreatedAt    string  `json:"created_at"`
	IsAnnualPlan bool    `json:"isAnnualPlan"`
	City         *string `json:"city"`
	Pets         PetList `json:"pets"`
}

// UnmarshalJSON aceita os formatos de data ISO-8601 devolvidos pelo banco
func (p *Policy) UnmarshalJSON(data []byte) error {
	var payload policyPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	createdAt, err := utils.ParseTimestamp(payload.CreatedAt)
	if err != nil {
		return err
	}

	p.CreatedAt = createdAt
	p.IsAnnualPlan = payload.IsAnnualPlan
	p.City = ""
	if payload.City != nil {
		p.City = *payload.City
	}
	p.Pets = payload.Pets

	return nil
}

// Pet representa uma mascote segurada dentro de uma apólice
type Pet struct {
	Species string      `json:"specie"`
	Plan    string      `json:"plan"`
	RC      bool        `json:"rc"`
	Pricing *PetPricing `json:"pricesOfPlans,omitempty"`
}

// PetPricing guarda os preços do plano. Campos ausentes ficam nil.
type PetPricing struct {
	Plan           string   `json:"plan,omitempty"`
	AnnualPrice    *float64 `json:"pricePlanAnual,omitempty"`
	MonthlyPrice   *float64 `json:"pricePlanMonthly,omitempty"`
	AnnualPriceRC  *float64 `json:"pricePlanAnualRc,omitempty"`
	MonthlyPriceRC *float64 `json:"pricePlanMonthlyRc,omitempty"`
}

// Complete indica se os quatro preços necessários estão presentes
func (p *PetPricing) Complete() bool {
	return p != nil &&
		p.AnnualPrice != nil &&
		p.MonthlyPrice != nil &&
		p.AnnualPriceRC != nil &&
		p.MonthlyPriceRC != nil
}

// PetListKind identifica a forma em que o campo de mascotes foi recebido
type PetListKind int

const (
	PetListMissing PetListKind = iota
	PetListSequence
	PetListEncoded
	PetListInvalid
)

// PetList é o campo polimórfico de mascotes: uma lista nativa ou uma
// string contendo a lista em JSON. A decodificação nunca falha por causa
// do conteúdo; o valor bruto é mantido para a normalização decidir.
type PetList struct {
	Kind    PetListKind
	Pets    []Pet
	Encoded string
	Raw     []byte
}

// NewPetSequence cria um PetList a partir de uma lista nativa
func NewPetSequence(pets ...Pet) PetList {
	if pets == nil {
		pets = []Pet{}
	}
	return PetList{Kind: PetListSequence, Pets: pets}
}

// NewEncodedPets cria um PetList a partir de uma string JSON
func NewEncodedPets(encoded string) PetList {
	return PetList{Kind: PetListEncoded, Encoded: encoded}
}

func (l *PetList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*l = PetList{Raw: append([]byte(nil), trimmed...)}

	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		l.Kind = PetListMissing
		return nil
	}

	switch trimmed[0] {
	case '[':
		var pets []Pet
		if err := json.Unmarshal(trimmed, &pets); err != nil {
			l.Kind = PetListInvalid
			return nil
		}
		l.Kind = PetListSequence
		l.Pets = pets
	case '"':
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			l.Kind = PetListInvalid
			return nil
		}
		l.Kind = PetListEncoded
		l.Encoded = encoded
	default:
		l.Kind = PetListInvalid
	}

	return nil
}

func (l PetList) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case PetListSequence:
		if l.Pets == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(l.Pets)
	case PetListEncoded:
		return json.Marshal(l.Encoded)
	case PetListInvalid:
		if len(l.Raw) > 0 {
			return l.Raw, nil
		}
	}
	return []byte("null"), nil
}
