package camara

import (
	"bytes"
	"encoding/json"
)

// Code is an identifier the API serialises either as a JSON string or as a number.
type Code string

// UnmarshalJSON accepts "12", 12 and null.
func (c *Code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	default:
		*c = Code(data)
		return nil
	}
}

// Deputado is a deputy as listed by /deputados and embedded in votes.
type Deputado struct {
	ID            int    `json:"id"`
	URI           string `json:"uri"`
	Nome          string `json:"nome"`
	SiglaPartido  string `json:"siglaPartido"`
	URIPartido    string `json:"uriPartido"`
	SiglaUF       string `json:"siglaUf"`
	IDLegislatura int    `json:"idLegislatura"`
	URLFoto       string `json:"urlFoto"`
	Email         string `json:"email"`
}

// Membro is a member of a committee, party, front or group.
type Membro struct {
	Deputado
	Titulo     string `json:"titulo,omitempty"`
	CodTitulo  Code   `json:"codTitulo,omitempty"`
	DataInicio string `json:"dataInicio,omitempty"`
	DataFim    string `json:"dataFim,omitempty"`
}

// Despesa is one expense reimbursed from a deputy's parliamentary quota.
type Despesa struct {
	Ano               int     `json:"ano"`
	Mes               int     `json:"mes"`
	TipoDespesa       string  `json:"tipoDespesa"`
	CodDocumento      int64   `json:"codDocumento"`
	TipoDocumento     string  `json:"tipoDocumento"`
	CodTipoDocumento  int     `json:"codTipoDocumento"`
	DataDocumento     string  `json:"dataDocumento"`
	NumDocumento      string  `json:"numDocumento"`
	ValorDocumento    float64 `json:"valorDocumento"`
	URLDocumento      string  `json:"urlDocumento"`
	NomeFornecedor    string  `json:"nomeFornecedor"`
	CNPJCPFFornecedor string  `json:"cnpjCpfFornecedor"`
	ValorLiquido      float64 `json:"valorLiquido"`
	ValorGlosa        float64 `json:"valorGlosa"`
	NumRessarcimento  string  `json:"numRessarcimento"`
	CodLote           int64   `json:"codLote"`
	Parcela           int     `json:"parcela"`
}

// Proposicao is a bill as listed by /proposicoes.
type Proposicao struct {
	ID        int    `json:"id"`
	URI       string `json:"uri"`
	SiglaTipo string `json:"siglaTipo"`
	CodTipo   int    `json:"codTipo"`
	Numero    int    `json:"numero"`
	Ano       int    `json:"ano"`
	Ementa    string `json:"ementa"`
}

// Votacao is a roll-call or symbolic vote session. Its ID is a string such as "2265603-43".
type Votacao struct {
	ID                  string `json:"id"`
	URI                 string `json:"uri"`
	Data                string `json:"data"`
	DataHoraRegistro    string `json:"dataHoraRegistro"`
	SiglaOrgao          string `json:"siglaOrgao"`
	URIOrgao            string `json:"uriOrgao"`
	URIEvento           string `json:"uriEvento"`
	ProposicaoObjeto    string `json:"proposicaoObjeto"`
	URIProposicaoObjeto string `json:"uriProposicaoObjeto"`
	Descricao           string `json:"descricao"`
	Aprovacao           *int   `json:"aprovacao"`
}

// Voto is one deputy's vote in a Votacao.
type Voto struct {
	TipoVoto         string   `json:"tipoVoto"`
	DataRegistroVoto string   `json:"dataRegistroVoto"`
	Deputado         Deputado `json:"deputado_"`
}

// Orientacao is a party or bloc leadership's guidance for a Votacao.
type Orientacao struct {
	OrientacaoVoto    string `json:"orientacaoVoto"`
	CodTipoLideranca  string `json:"codTipoLideranca"`
	SiglaPartidoBloco string `json:"siglaPartidoBloco"`
	CodPartidoBloco   Code   `json:"codPartidoBloco"`
	URIPartidoBloco   string `json:"uriPartidoBloco"`
}

// Partido is a political party.
type Partido struct {
	ID    int    `json:"id"`
	Sigla string `json:"sigla"`
	Nome  string `json:"nome"`
	URI   string `json:"uri"`
}

// Orgao is a committee or any other body of the Chamber.
type Orgao struct {
	ID             int    `json:"id"`
	URI            string `json:"uri"`
	Sigla          string `json:"sigla"`
	Nome           string `json:"nome"`
	Apelido        string `json:"apelido"`
	CodTipoOrgao   int    `json:"codTipoOrgao"`
	TipoOrgao      string `json:"tipoOrgao"`
	NomePublicacao string `json:"nomePublicacao"`
	NomeResumido   string `json:"nomeResumido"`
}

// LocalCamara is where inside the Chamber an Evento takes place.
type LocalCamara struct {
	Nome   string `json:"nome"`
	Predio string `json:"predio"`
	Sala   string `json:"sala"`
	Andar  string `json:"andar"`
}

// Evento is a session, hearing or meeting.
type Evento struct {
	ID             int         `json:"id"`
	URI            string      `json:"uri"`
	DataHoraInicio string      `json:"dataHoraInicio"`
	DataHoraFim    string      `json:"dataHoraFim"`
	Situacao       string      `json:"situacao"`
	DescricaoTipo  string      `json:"descricaoTipo"`
	Descricao      string      `json:"descricao"`
	LocalExterno   string      `json:"localExterno"`
	Orgaos         []Orgao     `json:"orgaos"`
	LocalCamara    LocalCamara `json:"localCamara"`
	URLRegistro    string      `json:"urlRegistro"`
}

// Frente is a parliamentary front.
type Frente struct {
	ID            int    `json:"id"`
	URI           string `json:"uri"`
	Titulo        string `json:"titulo"`
	IDLegislatura int    `json:"idLegislatura"`
}

// Legislatura is a four-year legislative term.
type Legislatura struct {
	ID         int    `json:"id"`
	URI        string `json:"uri"`
	DataInicio string `json:"dataInicio"`
	DataFim    string `json:"dataFim"`
}

// Bloco is a parliamentary bloc of parties.
type Bloco struct {
	ID            Code   `json:"id"`
	URI           string `json:"uri"`
	Nome          string `json:"nome"`
	IDLegislatura Code   `json:"idLegislatura"`
}

// Referencia is one row of a reference table.
type Referencia struct {
	Cod       Code   `json:"cod"`
	Sigla     string `json:"sigla"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
}
