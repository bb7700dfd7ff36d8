package camara

import (
	"context"
	"fmt"
)

// Eventos lists sessions, hearings and meetings.
func (c *Client) Eventos(ctx context.Context, opts *EventosOptions) ([]Evento, error) {
	return listWith[Evento](ctx, c, "eventos", opts)
}

// Evento returns the full record of one event.
func (c *Client) Evento(ctx context.Context, id int) (Record, error) {
	return fetch[Record](ctx, c, fmt.Sprintf("eventos/%d", id), nil)
}

// EventoDeputados lists the deputies present at an event.
func (c *Client) EventoDeputados(ctx context.Context, id int) ([]Deputado, error) {
	return list[Deputado](ctx, c, fmt.Sprintf("eventos/%d/deputados", id), nil)
}

// EventoOrgaos lists the bodies that held an event.
func (c *Client) EventoOrgaos(ctx context.Context, id int) ([]Orgao, error) {
	return list[Orgao](ctx, c, fmt.Sprintf("eventos/%d/orgaos", id), nil)
}

// EventoPauta lists the agenda items of an event.
func (c *Client) EventoPauta(ctx context.Context, id int) ([]Record, error) {
	return list[Record](ctx, c, fmt.Sprintf("eventos/%d/pauta", id), nil)
}

// EventoVotacoes lists the votes held during an event.
func (c *Client) EventoVotacoes(ctx context.Context, id int) ([]Votacao, error) {
	return list[Votacao](ctx, c, fmt.Sprintf("eventos/%d/votacoes", id), nil)
}
