package dashboarding

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/policy-dashboard-api/internal/config"
)

// IsolationPolicy define o que acontece com uma apólice que falha na agregação
type IsolationPolicy string

const (
	// IsolationSkip faz a apólice contribuir com zero e segue com as demais
	IsolationSkip IsolationPolicy = "skip"
	// IsolationAbort interrompe a execução inteira no primeiro erro
	IsolationAbort IsolationPolicy = "abort"
)

const defaultTopCities = 10

// Options controla uma execução de agregação. A mesma política de
// isolamento vale para receita, espécies e planos.
type Options struct {
	Location  *time.Location
	TopCities int
	Isolation IsolationPolicy
}

func DefaultOptions() Options {
	return Options{
		Location:  time.UTC,
		TopCities: defaultTopCities,
		Isolation: IsolationSkip,
	}
}

// NewOptions monta as opções a partir da configuração do painel
func NewOptions(cfg config.Dashboard) (Options, error) {
	loc, err := cfg.Location()
	if err != nil {
		return Options{}, errors.Wrap(ErrInvalidOptions, err.Error())
	}

	opts := Options{
		Location:  loc,
		TopCities: cfg.TopCities,
		Isolation: IsolationPolicy(cfg.IsolationPolicy),
	}

	return opts, opts.validate()
}

func (o Options) validate() error {
	if o.Location == nil {
		return errors.Wrap(ErrInvalidOptions, "fuso horário ausente")
	}
	if o.TopCities <= 0 {
		return errors.Wrapf(ErrInvalidOptions, "top de cidades deve ser positivo: %d", o.TopCities)
	}
	switch o.Isolation {
	case IsolationSkip, IsolationAbort:
		return nil
	}
	return errors.Wrapf(ErrInvalidOptions, "política de isolamento desconhecida: %q", o.Isolation)
}
