package camara

import (
	"context"
	"fmt"
)

// Proposicoes lists bills. Without a date filter the API only returns bills
// presented or updated in the last 30 days.
func (c *Client) Proposicoes(ctx context.Context, opts *ProposicoesOptions) ([]Proposicao, error) {
	return listWith[Proposicao](ctx, c, "proposicoes", opts)
}

// Proposicao returns the full record of one bill.
func (c *Client) Proposicao(ctx context.Context, id int) (Record, error) {
	return fetch[Record](ctx, c, fmt.Sprintf("proposicoes/%d", id), nil)
}

// ProposicaoAutores lists the authors of a bill. Authors are not always deputies.
func (c *Client) ProposicaoAutores(ctx context.Context, id int) ([]Record, error) {
	return list[Record](ctx, c, fmt.Sprintf("proposicoes/%d/autores", id), nil)
}

// ProposicaoRelacionadas lists bills attached to or derived from a bill.
func (c *Client) ProposicaoRelacionadas(ctx context.Context, id int) ([]Proposicao, error) {
	return list[Proposicao](ctx, c, fmt.Sprintf("proposicoes/%d/relacionadas", id), nil)
}

// ProposicaoTemas lists the subject areas of a bill.
func (c *Client) ProposicaoTemas(ctx context.Context, id int) ([]Record, error) {
	return list[Record](ctx, c, fmt.Sprintf("proposicoes/%d/temas", id), nil)
}

// ProposicaoTramitacoes lists the procedural history of a bill.
func (c *Client) ProposicaoTramitacoes(ctx context.Context, id int, opts *Periodo) ([]Record, error) {
	return listWith[Record](ctx, c, fmt.Sprintf("proposicoes/%d/tramitacoes", id), opts)
}

// ProposicaoVotacoes lists the votes held on a bill.
func (c *Client) ProposicaoVotacoes(ctx context.Context, id int, opts *Ordering) ([]Votacao, error) {
	return listWith[Votacao](ctx, c, fmt.Sprintf("proposicoes/%d/votacoes", id), opts)
}
