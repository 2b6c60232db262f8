package dashboarding

import (
	"fmt"

	"github.com/pkg/errors"
)

// Erros da agregação do painel
var (
	// ErrParse indica um campo de mascotas que não é JSON válido ou não é uma lista
	ErrParse = errors.New("campo de mascotas inválido")
	// ErrMissingPricing indica uma mascote sem um dos quatro preços do plano
	ErrMissingPricing = errors.New("preços do plano incompletos")
	// ErrInvalidOptions indica uma configuração de agregação inválida
	ErrInvalidOptions = errors.New("opções de agregação inválidas")
)

// PolicyError associa um erro de agregação à apólice que o gerou
type PolicyError struct {
	Err         error // Erro base
	PolicyIndex int   // Posição da apólice na lista de entrada
}

// Error implementa a interface error
func (e *PolicyError) Error() string {
	return fmt.Sprintf("apólice %d: %s", e.PolicyIndex, e.Err.Error())
}

// Unwrap retorna o erro subjacente
func (e *PolicyError) Unwrap() error {
	return e.Err
}

func newPolicyError(index int, err error) *PolicyError {
	return &PolicyError{Err: err, PolicyIndex: index}
}
