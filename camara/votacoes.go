package camara

import (
	"context"
	"net/url"
)

// Votacoes lists vote sessions. Without a date filter the API returns the last 30 days.
func (c *Client) Votacoes(ctx context.Context, opts *VotacoesOptions) ([]Votacao, error) {
	return listWith[Votacao](ctx, c, "votacoes", opts)
}

// Votacao returns the full record of one vote session.
func (c *Client) Votacao(ctx context.Context, id string) (Record, error) {
	return fetch[Record](ctx, c, "votacoes/"+url.PathEscape(id), nil)
}

// VotacaoVotos lists the individual votes of a roll-call. Symbolic votes
// have none and yield an empty slice.
func (c *Client) VotacaoVotos(ctx context.Context, id string) ([]Voto, error) {
	return list[Voto](ctx, c, "votacoes/"+url.PathEscape(id)+"/votos", nil)
}

// VotacaoOrientacoes lists the leadership guidance given for a vote.
func (c *Client) VotacaoOrientacoes(ctx context.Context, id string) ([]Orientacao, error) {
	return list[Orientacao](ctx, c, "votacoes/"+url.PathEscape(id)+"/orientacoes", nil)
}
