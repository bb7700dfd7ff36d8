package camara

import (
	"context"
	"net/url"
)

// API defines the Camara operations the enricher and CLI depend on.
type API interface {
	// Deputados lists deputies matching opts
	Deputados(ctx context.Context, opts *DeputadosOptions) ([]Deputado, error)

	// DeputadoDespesas lists a deputy's quota expenses
	DeputadoDespesas(ctx context.Context, id int, opts *DespesasOptions) ([]Despesa, error)

	// DeputadoFrentes lists the parliamentary fronts a deputy belongs to
	DeputadoFrentes(ctx context.Context, id int) ([]Frente, error)

	// Votacoes lists vote sessions matching opts
	Votacoes(ctx context.Context, opts *VotacoesOptions) ([]Votacao, error)

	// VotacaoVotos lists the individual votes of a session
	VotacaoVotos(ctx context.Context, id string) ([]Voto, error)
}

// Requester provides raw access to the executor
type Requester interface {
	// Do fetches one envelope
	Do(ctx context.Context, path string, params url.Values) (*Response, error)

	// Pages walks every page of a list endpoint
	Pages(ctx context.Context, path string, params url.Values, fn func(*Response) error) error
}

var (
	_ API       = (*Client)(nil)
	_ Requester = (*Client)(nil)
)
