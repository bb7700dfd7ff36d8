package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/opencamara/camara-go/camara"
)

// DefaultConcurrency is the number of per-item requests in flight at once.
const DefaultConcurrency = 8

var (
	// ErrNoLegislatura is returned when a query names no legislature
	ErrNoLegislatura = errors.New("at least one legislature is required")
	// ErrInvalidPeriod is returned when a period ends before it starts
	ErrInvalidPeriod = errors.New("period ends before it starts")
)

// Enricher fans out per-deputy and per-vote calls and flattens their results
// into denormalised rows.
type Enricher struct {
	api         camara.API
	logger      zerolog.Logger
	concurrency int
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithConcurrency bounds the number of concurrent requests. Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// New creates an Enricher on top of api.
func New(api camara.API, logger zerolog.Logger, opts ...Option) *Enricher {
	e := &Enricher{
		api:         api,
		logger:      logger.With().Str("component", "enrich").Logger(),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DespesasLegislatura returns the expenses of every deputy of the given
// legislatures (and parties), each row tagged with its deputy.
func (e *Enricher) DespesasLegislatura(ctx context.Context, q DespesasQuery) ([]DespesaDeputado, error) {
	if len(q.Legislaturas) == 0 {
		return nil, ErrNoLegislatura
	}

	deputados, err := e.deputados(ctx, &camara.DeputadosOptions{
		IDLegislatura: q.Legislaturas,
		SiglaPartido:  q.Partidos,
	})
	if err != nil {
		return nil, err
	}

	opts := &camara.DespesasOptions{Mes: q.Meses}
	if q.Ano != 0 {
		opts.Ano = []int{q.Ano}
	}

	return fanOut(ctx, e, "despesas", deputados, func(ctx context.Context, d camara.Deputado) ([]DespesaDeputado, error) {
		despesas, err := e.api.DeputadoDespesas(ctx, d.ID, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch expenses of deputy %d (%s): %w", d.ID, d.Nome, err)
		}
		info := infoOf(d)
		rows := make([]DespesaDeputado, len(despesas))
		for i, despesa := range despesas {
			rows[i] = DespesaDeputado{Despesa: despesa, DeputadoInfo: info}
		}
		return rows, nil
	})
}

// FrentesLegislatura returns one row per (deputy, front) membership for the
// deputies of the given legislatures.
func (e *Enricher) FrentesLegislatura(ctx context.Context, legislaturas []int) ([]FrenteDeputado, error) {
	if len(legislaturas) == 0 {
		return nil, ErrNoLegislatura
	}

	deputados, err := e.deputados(ctx, &camara.DeputadosOptions{IDLegislatura: legislaturas})
	if err != nil {
		return nil, err
	}

	return fanOut(ctx, e, "frentes", deputados, func(ctx context.Context, d camara.Deputado) ([]FrenteDeputado, error) {
		frentes, err := e.api.DeputadoFrentes(ctx, d.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch fronts of deputy %d (%s): %w", d.ID, d.Nome, err)
		}
		info := infoOf(d)
		rows := make([]FrenteDeputado, len(frentes))
		for i, frente := range frentes {
			rows[i] = FrenteDeputado{Frente: frente, DeputadoInfo: info}
		}
		return rows, nil
	})
}

// VotosPeriodo returns every individual vote cast in the sessions held
// between inicio and fim, merged with the session's fields.
func (e *Enricher) VotosPeriodo(ctx context.Context, inicio, fim time.Time) ([]VotoDeputado, error) {
	if !fim.IsZero() && fim.Before(inicio) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidPeriod, inicio.Format(time.DateOnly), fim.Format(time.DateOnly))
	}

	votacoes, err := e.api.Votacoes(ctx, &camara.VotacoesOptions{
		Periodo: camara.Periodo{DataInicio: inicio, DataFim: fim},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	e.logger.Debug().
		Int("votacoes", len(votacoes)).
		Msg("Listed vote sessions")

	return fanOut(ctx, e, "votos", votacoes, func(ctx context.Context, v camara.Votacao) ([]VotoDeputado, error) {
		votos, err := e.api.VotacaoVotos(ctx, v.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch votes of session %s: %w", v.ID, err)
		}
		rows := make([]VotoDeputado, len(votos))
		for i, voto := range votos {
			rows[i] = VotoDeputado{
				Votacao:          v,
				TipoVoto:         voto.TipoVoto,
				DataRegistroVoto: voto.DataRegistroVoto,
				DeputadoInfo:     infoOf(voto.Deputado),
			}
		}
		return rows, nil
	})
}

// deputados lists deputies once each. A deputy who served in several of the
// requested legislatures is listed by the API once per legislature.
func (e *Enricher) deputados(ctx context.Context, opts *camara.DeputadosOptions) ([]camara.Deputado, error) {
	all, err := e.api.Deputados(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list deputies: %w", err)
	}

	seen := make(map[int]bool, len(all))
	deputados := make([]camara.Deputado, 0, len(all))
	for _, d := range all {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		deputados = append(deputados, d)
	}

	e.logger.Debug().
		Int("deputados", len(deputados)).
		Int("duplicates", len(all)-len(deputados)).
		Msg("Listed deputies")

	return deputados, nil
}

// fanOut runs fn for every item with bounded concurrency and concatenates the
// results in item order. The first error cancels the remaining calls and is
// returned alone.
func fanOut[In, Out any](ctx context.Context, e *Enricher, what string, items []In, fn func(context.Context, In) ([]Out, error)) ([]Out, error) {
	results := make([][]Out, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	var done atomic.Int64
	start := time.Now()

	for i, item := range items {
		g.Go(func() error {
			rows, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = rows

			if n := done.Add(1); n%50 == 0 {
				e.logger.Debug().
					Str("what", what).
					Int64("done", n).
					Int("total", len(items)).
					Msg("Enrichment progress")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, rows := range results {
		total += len(rows)
	}
	out := make([]Out, 0, total)
	for _, rows := range results {
		out = append(out, rows...)
	}

	e.logger.Info().
		Str("what", what).
		Int("items", len(items)).
		Int("rows", len(out)).
		Dur("elapsed", time.Since(start)).
		Msg("Enrichment complete")

	return out, nil
}
