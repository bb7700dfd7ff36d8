package enrich

import (
	"github.com/opencamara/camara-go/camara"
)

// DeputadoInfo identifies the deputy a flattened row belongs to.
type DeputadoInfo struct {
	IDDeputado           int    `json:"idDeputado"`
	NomeDeputado         string `json:"nomeDeputado"`
	SiglaUFDeputado      string `json:"siglaUfDeputado"`
	SiglaPartidoDeputado string `json:"siglaPartidoDeputado"`
}

func infoOf(d camara.Deputado) DeputadoInfo {
	return DeputadoInfo{
		IDDeputado:           d.ID,
		NomeDeputado:         d.Nome,
		SiglaUFDeputado:      d.SiglaUF,
		SiglaPartidoDeputado: d.SiglaPartido,
	}
}

// DespesaDeputado is one expense with the deputy that claimed it.
type DespesaDeputado struct {
	camara.Despesa
	DeputadoInfo
}

// FrenteDeputado is one membership of a deputy in a parliamentary front.
type FrenteDeputado struct {
	camara.Frente
	DeputadoInfo
}

// VotoDeputado is one deputy's vote merged with the session it was cast in.
type VotoDeputado struct {
	camara.Votacao
	TipoVoto         string `json:"tipoVoto"`
	DataRegistroVoto string `json:"dataRegistroVoto"`
	DeputadoInfo
}

// DespesasQuery selects the deputies and the year of DespesasLegislatura.
type DespesasQuery struct {
	Legislaturas []int
	// Partidos restricts the deputies to these party acronyms; empty means all.
	Partidos []string
	// Ano is the expense year; zero lets the API pick its default.
	Ano int
	// Meses restricts the expense months; empty means the whole year.
	Meses []int
}
