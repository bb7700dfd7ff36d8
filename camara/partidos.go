package camara

import (
	"context"
	"fmt"
	"net/url"
)

// Partidos lists parties with representation in the selected period.
func (c *Client) Partidos(ctx context.Context, opts *PartidosOptions) ([]Partido, error) {
	return listWith[Partido](ctx, c, "partidos", opts)
}

// Partido returns the full record of a party, including its current status and leader.
func (c *Client) Partido(ctx context.Context, id int) (Record, error) {
	return fetch[Record](ctx, c, fmt.Sprintf("partidos/%d", id), nil)
}

// PartidoMembros lists the deputies of a party.
func (c *Client) PartidoMembros(ctx context.Context, id int, opts *PeriodoOptions) ([]Membro, error) {
	return listWith[Membro](ctx, c, fmt.Sprintf("partidos/%d/membros", id), opts)
}

// Blocos lists parliamentary blocs.
func (c *Client) Blocos(ctx context.Context, opts *BlocosOptions) ([]Bloco, error) {
	return listWith[Bloco](ctx, c, "blocos", opts)
}

// Bloco returns one parliamentary bloc.
func (c *Client) Bloco(ctx context.Context, id string) (Record, error) {
	return fetch[Record](ctx, c, "blocos/"+url.PathEscape(id), nil)
}

// PartidoLideres lists the leader and vice-leaders of a party.
func (c *Client) PartidoLideres(ctx context.Context, id int) ([]Membro, error) {
	return list[Membro](ctx, c, fmt.Sprintf("partidos/%d/lideres", id), nil)
}

// BlocoPartidos lists the parties that form a bloc.
func (c *Client) BlocoPartidos(ctx context.Context, id string) ([]Partido, error) {
	return fetch[[]Partido](ctx, c, "blocos/"+url.PathEscape(id)+"/partidos", nil)
}
