package camara

import (
	"context"
	"fmt"
)

// Legislaturas lists legislative terms.
func (c *Client) Legislaturas(ctx context.Context, opts *LegislaturasOptions) ([]Legislatura, error) {
	return listWith[Legislatura](ctx, c, "legislaturas", opts)
}

// Legislatura returns one legislative term.
func (c *Client) Legislatura(ctx context.Context, id int) (Record, error) {
	return fetch[Record](ctx, c, fmt.Sprintf("legislaturas/%d", id), nil)
}

// LegislaturaMesa lists the board (Mesa Diretora) of a legislature.
func (c *Client) LegislaturaMesa(ctx context.Context, id int, opts *Periodo) ([]Membro, error) {
	return listWith[Membro](ctx, c, fmt.Sprintf("legislaturas/%d/mesa", id), opts)
}

// LegislaturaLideres lists the party and bloc leaders of a legislature. Each
// record nests the deputy under "parlamentar" and the caucus under "bancada".
func (c *Client) LegislaturaLideres(ctx context.Context, id int) ([]Record, error) {
	return list[Record](ctx, c, fmt.Sprintf("legislaturas/%d/lideres", id), nil)
}
