package enrich

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencamara/camara-go/camara"
)

// mockAPI serves canned data and records what it was asked for.
type mockAPI struct {
	deputados []camara.Deputado
	despesas  map[int][]camara.Despesa
	frentes   map[int][]camara.Frente
	votacoes  []camara.Votacao
	votos     map[string][]camara.Voto
	failOn    int
	delay     time.Duration

	mu              sync.Mutex
	deputadosOpts   *camara.DeputadosOptions
	despesasOpts    *camara.DespesasOptions
	votacoesOpts    *camara.VotacoesOptions
	inFlight        atomic.Int32
	maxInFlight     atomic.Int32
	perDeputyCalled atomic.Int32
}

func (m *mockAPI) enter() func() {
	n := m.inFlight.Add(1)
	for {
		peak := m.maxInFlight.Load()
		if n <= peak || m.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return func() { m.inFlight.Add(-1) }
}

func (m *mockAPI) Deputados(_ context.Context, opts *camara.DeputadosOptions) ([]camara.Deputado, error) {
	m.mu.Lock()
	m.deputadosOpts = opts
	m.mu.Unlock()
	return m.deputados, nil
}

func (m *mockAPI) DeputadoDespesas(_ context.Context, id int, opts *camara.DespesasOptions) ([]camara.Despesa, error) {
	defer m.enter()()
	m.perDeputyCalled.Add(1)
	m.mu.Lock()
	m.despesasOpts = opts
	m.mu.Unlock()
	if id == m.failOn {
		return nil, &camara.HTTPError{StatusCode: 500, URL: "despesas"}
	}
	return m.despesas[id], nil
}

func (m *mockAPI) DeputadoFrentes(_ context.Context, id int) ([]camara.Frente, error) {
	defer m.enter()()
	m.perDeputyCalled.Add(1)
	if id == m.failOn {
		return nil, errors.New("boom")
	}
	return m.frentes[id], nil
}

func (m *mockAPI) Votacoes(_ context.Context, opts *camara.VotacoesOptions) ([]camara.Votacao, error) {
	m.mu.Lock()
	m.votacoesOpts = opts
	m.mu.Unlock()
	return m.votacoes, nil
}

func (m *mockAPI) VotacaoVotos(_ context.Context, id string) ([]camara.Voto, error) {
	defer m.enter()()
	return m.votos[id], nil
}

var (
	ana   = camara.Deputado{ID: 1, Nome: "Ana", SiglaUF: "SP", SiglaPartido: "PT"}
	bruno = camara.Deputado{ID: 2, Nome: "Bruno", SiglaUF: "RJ", SiglaPartido: "PL"}
	clara = camara.Deputado{ID: 3, Nome: "Clara", SiglaUF: "MG", SiglaPartido: "PSD"}
)

func TestDespesasLegislatura(t *testing.T) {
	api := &mockAPI{
		// Bruno served in both legislatures and is listed twice
		deputados: []camara.Deputado{ana, bruno, clara, bruno},
		despesas: map[int][]camara.Despesa{
			1: {{Ano: 2023, Mes: 1, ValorLiquido: 10}, {Ano: 2023, Mes: 2, ValorLiquido: 20}},
			2: {{Ano: 2023, Mes: 1, ValorLiquido: 30}},
		},
		delay: time.Millisecond,
	}
	e := New(api, zerolog.Nop(), WithConcurrency(2))

	rows, err := e.DespesasLegislatura(context.Background(), DespesasQuery{
		Legislaturas: []int{56, 57},
		Partidos:     []string{"PT", "PL"},
		Ano:          2023,
	})
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, 1, rows[0].IDDeputado)
	assert.Equal(t, 10.0, rows[0].ValorLiquido)
	assert.Equal(t, 1, rows[1].IDDeputado)
	assert.Equal(t, 20.0, rows[1].ValorLiquido)
	assert.Equal(t, DeputadoInfo{IDDeputado: 2, NomeDeputado: "Bruno", SiglaUFDeputado: "RJ", SiglaPartidoDeputado: "PL"}, rows[2].DeputadoInfo)

	assert.Equal(t, int32(3), api.perDeputyCalled.Load())
	assert.Equal(t, []int{56, 57}, api.deputadosOpts.IDLegislatura)
	assert.Equal(t, []string{"PT", "PL"}, api.deputadosOpts.SiglaPartido)
	assert.Equal(t, []int{2023}, api.despesasOpts.Ano)
	assert.LessOrEqual(t, api.maxInFlight.Load(), int32(2))
}

func TestDespesasLegislatura_FailurePropagates(t *testing.T) {
	api := &mockAPI{
		deputados: []camara.Deputado{ana, bruno, clara},
		despesas:  map[int][]camara.Despesa{1: {{Ano: 2023}}},
		failOn:    2,
	}
	e := New(api, zerolog.Nop())

	rows, err := e.DespesasLegislatura(context.Background(), DespesasQuery{Legislaturas: []int{57}})
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.Contains(t, err.Error(), "deputy 2 (Bruno)")

	var httpErr *camara.HTTPError
	assert.True(t, errors.As(err, &httpErr))
}

func TestDespesasLegislatura_RequiresLegislatura(t *testing.T) {
	e := New(&mockAPI{}, zerolog.Nop())

	_, err := e.DespesasLegislatura(context.Background(), DespesasQuery{Ano: 2023})
	assert.ErrorIs(t, err, ErrNoLegislatura)
}

func TestFrentesLegislatura(t *testing.T) {
	api := &mockAPI{
		deputados: []camara.Deputado{ana, bruno, clara},
		frentes: map[int][]camara.Frente{
			1: {{ID: 10, Titulo: "Frente A"}, {ID: 11, Titulo: "Frente B"}},
			3: {{ID: 10, Titulo: "Frente A"}},
		},
	}
	e := New(api, zerolog.Nop(), WithConcurrency(0))
	assert.Equal(t, DefaultConcurrency, e.concurrency)

	rows, err := e.FrentesLegislatura(context.Background(), []int{57})
	require.NoError(t, err)

	require.Len(t, rows, 3)
	got := make([][2]int, len(rows))
	for i, r := range rows {
		got[i] = [2]int{r.IDDeputado, r.ID}
	}
	assert.Equal(t, [][2]int{{1, 10}, {1, 11}, {3, 10}}, got)
	assert.Equal(t, "MG", rows[2].SiglaUFDeputado)
}

func TestFrentesLegislatura_FailurePropagates(t *testing.T) {
	api := &mockAPI{deputados: []camara.Deputado{ana, bruno}, failOn: 1}
	e := New(api, zerolog.Nop())

	_, err := e.FrentesLegislatura(context.Background(), []int{57})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestVotosPeriodo(t *testing.T) {
	aprovada := 1
	api := &mockAPI{
		votacoes: []camara.Votacao{
			{ID: "100-1", SiglaOrgao: "PLEN", Aprovacao: &aprovada},
			{ID: "100-2", SiglaOrgao: "PLEN"},
			{ID: "200-1", SiglaOrgao: "CCJC"},
		},
		votos: map[string][]camara.Voto{
			"100-1": {{TipoVoto: "Sim", Deputado: ana}, {TipoVoto: "Não", Deputado: bruno}},
			"200-1": {{TipoVoto: "Sim", Deputado: clara}},
		},
	}
	e := New(api, zerolog.Nop())

	inicio := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	fim := time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)
	rows, err := e.VotosPeriodo(context.Background(), inicio, fim)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "100-1", rows[0].Votacao.ID)
	assert.Equal(t, "Sim", rows[0].TipoVoto)
	assert.Equal(t, 1, rows[0].IDDeputado)
	assert.Equal(t, &aprovada, rows[0].Aprovacao)
	assert.Equal(t, "Não", rows[1].TipoVoto)
	assert.Equal(t, 2, rows[1].IDDeputado)
	assert.Equal(t, "200-1", rows[2].Votacao.ID)
	assert.Equal(t, "CCJC", rows[2].SiglaOrgao)

	assert.Equal(t, inicio, api.votacoesOpts.DataInicio)
	assert.Equal(t, fim, api.votacoesOpts.DataFim)
}

func TestVotosPeriodo_InvalidPeriod(t *testing.T) {
	e := New(&mockAPI{}, zerolog.Nop())

	_, err := e.VotosPeriodo(context.Background(),
		time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestVotosPeriodo_NoSessions(t *testing.T) {
	e := New(&mockAPI{}, zerolog.Nop())

	rows, err := e.VotosPeriodo(context.Background(), time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
