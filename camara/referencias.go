package camara

import (
	"context"
	"strings"
)

// ReferenciaTipo names a reference table under /referencias.
type ReferenciaTipo string

const (
	RefDeputados               ReferenciaTipo = "deputados"
	RefDeputadosSiglaUF        ReferenciaTipo = "deputados/siglaUF"
	RefDeputadosCodSituacao    ReferenciaTipo = "deputados/codSituacao"
	RefDeputadosTipoDespesa    ReferenciaTipo = "deputados/tipoDespesa"
	RefEventosCodSituacao      ReferenciaTipo = "eventos/codSituacaoEvento"
	RefEventosCodTipoEvento    ReferenciaTipo = "eventos/codTipoEvento"
	RefOrgaosCodSituacao       ReferenciaTipo = "orgaos/codSituacao"
	RefOrgaosCodTipoOrgao      ReferenciaTipo = "orgaos/codTipoOrgao"
	RefProposicoes             ReferenciaTipo = "proposicoes"
	RefProposicoesCodSituacao  ReferenciaTipo = "proposicoes/codSituacao"
	RefProposicoesCodTema      ReferenciaTipo = "proposicoes/codTema"
	RefProposicoesCodTipoAutor ReferenciaTipo = "proposicoes/codTipoAutor"
	RefProposicoesTramitacao   ReferenciaTipo = "proposicoes/codTipoTramitacao"
	RefProposicoesSiglaTipo    ReferenciaTipo = "proposicoes/siglaTipo"
	RefSituacoesDeputado       ReferenciaTipo = "situacoesDeputado"
	RefSituacoesEvento         ReferenciaTipo = "situacoesEvento"
	RefSituacoesOrgao          ReferenciaTipo = "situacoesOrgao"
	RefSituacoesProposicao     ReferenciaTipo = "situacoesProposicao"
	RefTemas                   ReferenciaTipo = "temas"
	RefTiposAutor              ReferenciaTipo = "tiposAutor"
	RefTiposEvento             ReferenciaTipo = "tiposEvento"
	RefTiposOrgao              ReferenciaTipo = "tiposOrgao"
	RefTiposProposicao         ReferenciaTipo = "tiposProposicao"
	RefTiposTramitacao         ReferenciaTipo = "tiposTramitacao"
	RefTiposVotacao            ReferenciaTipo = "tiposVotacao"
	RefUF                      ReferenciaTipo = "uf"
)

// ReferenciaTipos is every known reference table, in declaration order.
var ReferenciaTipos = []ReferenciaTipo{
	RefDeputados, RefDeputadosSiglaUF, RefDeputadosCodSituacao, RefDeputadosTipoDespesa,
	RefEventosCodSituacao, RefEventosCodTipoEvento,
	RefOrgaosCodSituacao, RefOrgaosCodTipoOrgao,
	RefProposicoes, RefProposicoesCodSituacao, RefProposicoesCodTema, RefProposicoesCodTipoAutor,
	RefProposicoesTramitacao, RefProposicoesSiglaTipo,
	RefSituacoesDeputado, RefSituacoesEvento, RefSituacoesOrgao, RefSituacoesProposicao,
	RefTemas, RefTiposAutor, RefTiposEvento, RefTiposOrgao, RefTiposProposicao,
	RefTiposTramitacao, RefTiposVotacao, RefUF,
}

// Referencias returns one reference table. Reference tables are not paged.
// Tables that group several sub-tables (RefDeputados, RefProposicoes) return
// a nested shape that does not fit Referencia; use Client.Get for those.
func (c *Client) Referencias(ctx context.Context, tipo ReferenciaTipo) ([]Referencia, error) {
	return fetch[[]Referencia](ctx, c, "referencias/"+strings.Trim(string(tipo), "/"), nil)
}
