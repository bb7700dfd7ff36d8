package camara

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
)

// Ordering selects the sort of a list endpoint. Ordem is "ASC" or "DESC".
type Ordering struct {
	Ordem      string `url:"ordem,omitempty"`
	OrdenarPor string `url:"ordenarPor,omitempty"`
}

// Periodo restricts results to a date range. Zero times are not sent.
type Periodo struct {
	DataInicio time.Time `url:"dataInicio,omitempty" layout:"2006-01-02"`
	DataFim    time.Time `url:"dataFim,omitempty" layout:"2006-01-02"`
}

// DeputadosOptions filters /deputados. Slices are sent as repeated parameters.
type DeputadosOptions struct {
	ID            []int    `url:"id,omitempty"`
	Nome          string   `url:"nome,omitempty"`
	SiglaUF       []string `url:"siglaUf,omitempty"`
	SiglaPartido  []string `url:"siglaPartido,omitempty"`
	SiglaSexo     string   `url:"siglaSexo,omitempty"`
	IDLegislatura []int    `url:"idLegislatura,omitempty"`
	Periodo
	Ordering
}

// DespesasOptions filters a deputy's expenses.
type DespesasOptions struct {
	IDLegislatura     []int  `url:"idLegislatura,omitempty"`
	Ano               []int  `url:"ano,omitempty"`
	Mes               []int  `url:"mes,omitempty"`
	CNPJCPFFornecedor string `url:"cnpjCpfFornecedor,omitempty"`
	Ordering
}

// PeriodoOptions filters endpoints that only take a legislature or a date range
// (speeches, history, committees of a deputy, members of a party or body).
type PeriodoOptions struct {
	IDLegislatura []int `url:"idLegislatura,omitempty"`
	Periodo
	Ordering
}

// EventosOptions filters /eventos and the event lists of deputies and bodies.
type EventosOptions struct {
	ID           []int `url:"id,omitempty"`
	IDOrgao      []int `url:"idOrgao,omitempty"`
	IDTipoEvento []int `url:"codTipoEvento,omitempty"`
	Periodo
	Ordering
}

// ProposicoesOptions filters /proposicoes.
type ProposicoesOptions struct {
	ID                     []int     `url:"id,omitempty"`
	SiglaTipo              []string  `url:"siglaTipo,omitempty"`
	Numero                 []int     `url:"numero,omitempty"`
	Ano                    []int     `url:"ano,omitempty"`
	CodTipo                []int     `url:"codTipo,omitempty"`
	IDDeputadoAutor        []int     `url:"idDeputadoAutor,omitempty"`
	Autor                  string    `url:"autor,omitempty"`
	SiglaPartidoAutor      []string  `url:"siglaPartidoAutor,omitempty"`
	IDPartidoAutor         int       `url:"idPartidoAutor,omitempty"`
	SiglaUFAutor           []string  `url:"siglaUfAutor,omitempty"`
	Keywords               []string  `url:"keywords,omitempty"`
	TramitacaoSenado       *bool     `url:"tramitacaoSenado,omitempty"`
	DataApresentacaoInicio time.Time `url:"dataApresentacaoInicio,omitempty" layout:"2006-01-02"`
	DataApresentacaoFim    time.Time `url:"dataApresentacaoFim,omitempty" layout:"2006-01-02"`
	CodSituacao            []int     `url:"codSituacao,omitempty"`
	CodTema                []int     `url:"codTema,omitempty"`
	Periodo
	Ordering
}

// VotacoesOptions filters /votacoes.
type VotacoesOptions struct {
	ID           []string `url:"id,omitempty"`
	IDProposicao []int    `url:"idProposicao,omitempty"`
	IDEvento     []int    `url:"idEvento,omitempty"`
	IDOrgao      []int    `url:"idOrgao,omitempty"`
	Periodo
	Ordering
}

// PartidosOptions filters /partidos.
type PartidosOptions struct {
	Sigla         []string `url:"sigla,omitempty"`
	IDLegislatura []int    `url:"idLegislatura,omitempty"`
	Periodo
	Ordering
}

// OrgaosOptions filters /orgaos.
type OrgaosOptions struct {
	ID           []int    `url:"id,omitempty"`
	Sigla        []string `url:"sigla,omitempty"`
	CodTipoOrgao []int    `url:"codTipoOrgao,omitempty"`
	Periodo
	Ordering
}

// FrentesOptions filters /frentes.
type FrentesOptions struct {
	IDLegislatura []int `url:"idLegislatura,omitempty"`
}

// LegislaturasOptions filters /legislaturas. Data selects the legislature in
// office on that day.
type LegislaturasOptions struct {
	ID   []int     `url:"id,omitempty"`
	Data time.Time `url:"data,omitempty" layout:"2006-01-02"`
	Ordering
}

// BlocosOptions filters /blocos.
type BlocosOptions struct {
	ID            []int `url:"id,omitempty"`
	IDLegislatura []int `url:"idLegislatura,omitempty"`
	Ordering
}

// values encodes an options struct. A nil pointer yields no parameters.
func values(opts any) (url.Values, error) {
	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("encoding query parameters: %w", err)
	}
	return v, nil
}

func listWith[T any](ctx context.Context, c *Client, path string, opts any) ([]T, error) {
	q, err := values(opts)
	if err != nil {
		return nil, err
	}
	return list[T](ctx, c, path, q)
}

func fetchWith[T any](ctx context.Context, c *Client, path string, opts any) (T, error) {
	q, err := values(opts)
	if err != nil {
		var zero T
		return zero, err
	}
	return fetch[T](ctx, c, path, q)
}
