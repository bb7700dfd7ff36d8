package camara

import (
	"context"
	"fmt"
)

// Deputados lists deputies. With no filter the API returns the deputies in office.
func (c *Client) Deputados(ctx context.Context, opts *DeputadosOptions) ([]Deputado, error) {
	return listWith[Deputado](ctx, c, "deputados", opts)
}

// Deputado returns the full profile of one deputy. The payload carries nested
// objects (ultimoStatus, gabinete) so it is returned untyped.
func (c *Client) Deputado(ctx context.Context, id int) (Record, error) {
	return fetch[Record](ctx, c, fmt.Sprintf("deputados/%d", id), nil)
}

// DeputadoDespesas lists the quota expenses of a deputy.
func (c *Client) DeputadoDespesas(ctx context.Context, id int, opts *DespesasOptions) ([]Despesa, error) {
	return listWith[Despesa](ctx, c, fmt.Sprintf("deputados/%d/despesas", id), opts)
}

// DeputadoDiscursos lists a deputy's floor speeches.
func (c *Client) DeputadoDiscursos(ctx context.Context, id int, opts *PeriodoOptions) ([]Record, error) {
	return listWith[Record](ctx, c, fmt.Sprintf("deputados/%d/discursos", id), opts)
}

// DeputadoEventos lists the events a deputy took part in.
func (c *Client) DeputadoEventos(ctx context.Context, id int, opts *EventosOptions) ([]Evento, error) {
	return listWith[Evento](ctx, c, fmt.Sprintf("deputados/%d/eventos", id), opts)
}

// DeputadoFrentes lists the parliamentary fronts a deputy belongs to.
func (c *Client) DeputadoFrentes(ctx context.Context, id int) ([]Frente, error) {
	return list[Frente](ctx, c, fmt.Sprintf("deputados/%d/frentes", id), nil)
}

// DeputadoHistorico lists changes of a deputy's status (party, name, condition).
func (c *Client) DeputadoHistorico(ctx context.Context, id int, opts *PeriodoOptions) ([]Record, error) {
	return listWith[Record](ctx, c, fmt.Sprintf("deputados/%d/historico", id), opts)
}

// DeputadoMandatosExternos lists elected offices held outside the Chamber.
func (c *Client) DeputadoMandatosExternos(ctx context.Context, id int) ([]Record, error) {
	return list[Record](ctx, c, fmt.Sprintf("deputados/%d/mandatosExternos", id), nil)
}

// DeputadoOcupacoes lists a deputy's declared professional occupations.
func (c *Client) DeputadoOcupacoes(ctx context.Context, id int) ([]Record, error) {
	return list[Record](ctx, c, fmt.Sprintf("deputados/%d/ocupacoes", id), nil)
}

// DeputadoOrgaos lists the bodies a deputy is or was a member of.
func (c *Client) DeputadoOrgaos(ctx context.Context, id int, opts *PeriodoOptions) ([]Record, error) {
	return listWith[Record](ctx, c, fmt.Sprintf("deputados/%d/orgaos", id), opts)
}

// DeputadoProfissoes lists a deputy's declared professions.
func (c *Client) DeputadoProfissoes(ctx context.Context, id int) ([]Record, error) {
	return list[Record](ctx, c, fmt.Sprintf("deputados/%d/profissoes", id), nil)
}

// DeputadoProposicoes lists bills authored by a deputy. The API exposes this
// as a filter on /proposicoes, so opts.IDDeputadoAutor is overridden.
func (c *Client) DeputadoProposicoes(ctx context.Context, id int, opts *ProposicoesOptions) ([]Proposicao, error) {
	var o ProposicoesOptions
	if opts != nil {
		o = *opts
	}
	o.IDDeputadoAutor = []int{id}
	return c.Proposicoes(ctx, &o)
}
