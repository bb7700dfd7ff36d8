package camara

import (
	"context"
	"fmt"
)

// Orgaos lists committees and other bodies.
func (c *Client) Orgaos(ctx context.Context, opts *OrgaosOptions) ([]Orgao, error) {
	return listWith[Orgao](ctx, c, "orgaos", opts)
}

// Orgao returns the full record of one body.
func (c *Client) Orgao(ctx context.Context, id int) (Record, error) {
	return fetch[Record](ctx, c, fmt.Sprintf("orgaos/%d", id), nil)
}

// OrgaoEventos lists the events held by a body.
func (c *Client) OrgaoEventos(ctx context.Context, id int, opts *EventosOptions) ([]Evento, error) {
	return listWith[Evento](ctx, c, fmt.Sprintf("orgaos/%d/eventos", id), opts)
}

// OrgaoMembros lists the members of a body.
func (c *Client) OrgaoMembros(ctx context.Context, id int, opts *PeriodoOptions) ([]Membro, error) {
	return listWith[Membro](ctx, c, fmt.Sprintf("orgaos/%d/membros", id), opts)
}

// OrgaoVotacoes lists the votes held by a body.
func (c *Client) OrgaoVotacoes(ctx context.Context, id int, opts *VotacoesOptions) ([]Votacao, error) {
	return listWith[Votacao](ctx, c, fmt.Sprintf("orgaos/%d/votacoes", id), opts)
}
