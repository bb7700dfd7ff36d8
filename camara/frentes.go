package camara

import (
	"context"
	"fmt"
)

// Frentes lists parliamentary fronts. The API requires at least one legislature.
func (c *Client) Frentes(ctx context.Context, opts *FrentesOptions) ([]Frente, error) {
	return listWith[Frente](ctx, c, "frentes", opts)
}

// Frente returns the full record of one front, including its coordinator.
func (c *Client) Frente(ctx context.Context, id int) (Record, error) {
	return fetch[Record](ctx, c, fmt.Sprintf("frentes/%d", id), nil)
}

// FrenteMembros lists the deputies in a front.
func (c *Client) FrenteMembros(ctx context.Context, id int) ([]Membro, error) {
	return list[Membro](ctx, c, fmt.Sprintf("frentes/%d/membros", id), nil)
}

// Grupos lists interparliamentary friendship groups.
func (c *Client) Grupos(ctx context.Context, opts *Ordering) ([]Record, error) {
	return listWith[Record](ctx, c, "grupos", opts)
}

// Grupo returns one friendship group.
func (c *Client) Grupo(ctx context.Context, id int) (Record, error) {
	return fetch[Record](ctx, c, fmt.Sprintf("grupos/%d", id), nil)
}

// GrupoMembros lists the deputies in a friendship group.
func (c *Client) GrupoMembros(ctx context.Context, id int) ([]Membro, error) {
	return list[Membro](ctx, c, fmt.Sprintf("grupos/%d/membros", id), nil)
}

// GrupoHistorico lists the status changes of a friendship group.
func (c *Client) GrupoHistorico(ctx context.Context, id int) ([]Record, error) {
	return list[Record](ctx, c, fmt.Sprintf("grupos/%d/historico", id), nil)
}
