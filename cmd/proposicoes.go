package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencamara/camara-go/camara"
)

var (
	siglaTipo       []string
	numeros         []int
	autor           string
	deputadoAutor   []int
	keywords        []string
	temas           []int
	proposicaoIDs   []int
	orgaoIDs        []int
	eventoIDs       []int
	showOrientacoes bool
)

var proposicoesCmd = &cobra.Command{
	Use:   "proposicoes",
	Short: "List bills and other propositions",
	Example: `  camara proposicoes --tipo PEC --ano 2023
  camara proposicoes --keywords "reforma tributária" --fields id,siglaTipo,numero,ano,ementa`,
	Args: cobra.NoArgs,
	RunE: runProposicoes,
}

var proposicaoCmd = &cobra.Command{
	Use:   "proposicao <id> [autores|relacionadas|temas|tramitacoes|votacoes]",
	Short: "Show a proposition, or one of its related lists",
	Example: `  camara proposicao 2192459
  camara proposicao 2192459 tramitacoes --inicio 2023-01-01`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runProposicao,
}

var votacoesCmd = &cobra.Command{
	Use:   "votacoes",
	Short: "List vote sessions",
	Long: `List vote sessions. Without a period the API returns the last 30 days; a
period may not span more than three months.`,
	Example: `  camara votacoes --inicio 2023-03-01 --fim 2023-03-31 --where 'siglaOrgao == "PLEN"'`,
	Args:    cobra.NoArgs,
	RunE:    runVotacoes,
}

var votosCmd = &cobra.Command{
	Use:   "votos <votacaoId>",
	Short: "List the individual votes of a vote session",
	Long: `List how each deputy voted in a session. Symbolic votes have no individual
votes. Use --orientacoes for the party leaders' guidance instead.`,
	Example: `  camara votos 2265603-43 --where 'tipoVoto == "Não"'`,
	Args:    cobra.ExactArgs(1),
	RunE:    runVotos,
}

func init() {
	rootCmd.AddCommand(proposicoesCmd, proposicaoCmd, votacoesCmd, votosCmd)

	proposicoesCmd.Flags().StringSliceVar(&siglaTipo, "tipo", nil, "type acronym(s), e.g. PL, PEC, MPV")
	proposicoesCmd.Flags().IntSliceVar(&numeros, "numero", nil, "number(s)")
	proposicoesCmd.Flags().IntSliceVar(&anos, "ano", nil, "year(s) of presentation")
	proposicoesCmd.Flags().StringVar(&autor, "autor", "", "part of an author's name")
	proposicoesCmd.Flags().IntSliceVar(&deputadoAutor, "deputado-autor", nil, "id(s) of an authoring deputy")
	proposicoesCmd.Flags().StringSliceVar(&siglaPartido, "partido-autor", nil, "party acronym(s) of the authors")
	proposicoesCmd.Flags().StringSliceVar(&siglaUF, "uf-autor", nil, "state acronym(s) of the authors")
	proposicoesCmd.Flags().StringSliceVar(&keywords, "keywords", nil, "keyword(s) in the summary or indexing")
	proposicoesCmd.Flags().IntSliceVar(&temas, "tema", nil, "theme code(s), see 'camara referencias proposicoes/codTema'")
	addPeriodoFlags(proposicoesCmd)
	addOrderingFlags(proposicoesCmd)

	addPeriodoFlags(proposicaoCmd)
	addOrderingFlags(proposicaoCmd)

	votacoesCmd.Flags().IntSliceVar(&proposicaoIDs, "proposicao", nil, "proposition id(s)")
	votacoesCmd.Flags().IntSliceVar(&orgaoIDs, "orgao", nil, "body id(s)")
	votacoesCmd.Flags().IntSliceVar(&eventoIDs, "evento", nil, "event id(s)")
	addPeriodoFlags(votacoesCmd)
	addOrderingFlags(votacoesCmd)

	votosCmd.Flags().BoolVar(&showOrientacoes, "orientacoes", false, "show the leaders' guidance instead of the votes")
}

func runProposicoes(cmd *cobra.Command, args []string) error {
	p, err := periodo()
	if err != nil {
		return err
	}

	proposicoes, err := client.Proposicoes(cmd.Context(), &camara.ProposicoesOptions{
		SiglaTipo:         siglaTipo,
		Numero:            numeros,
		Ano:               anos,
		Autor:             autor,
		IDDeputadoAutor:   deputadoAutor,
		SiglaPartidoAutor: siglaPartido,
		SiglaUFAutor:      siglaUF,
		Keywords:          keywords,
		CodTema:           temas,
		Periodo:           p,
		Ordering:          ordering(),
	})
	if err != nil {
		return fmt.Errorf("failed to list propositions: %w", err)
	}
	return render(cmd, proposicoes)
}

func runProposicao(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	p, err := periodo()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var result any
	sub := ""
	if len(args) == 2 {
		sub = args[1]
	}
	switch sub {
	case "":
		result, err = client.Proposicao(ctx, id)
	case "autores":
		result, err = client.ProposicaoAutores(ctx, id)
	case "relacionadas":
		result, err = client.ProposicaoRelacionadas(ctx, id)
	case "temas":
		result, err = client.ProposicaoTemas(ctx, id)
	case "tramitacoes":
		result, err = client.ProposicaoTramitacoes(ctx, id, &p)
	case "votacoes":
		o := ordering()
		result, err = client.ProposicaoVotacoes(ctx, id, &o)
	default:
		return fmt.Errorf("unknown proposition list %q", sub)
	}
	if err != nil {
		return fmt.Errorf("failed to get proposition %d: %w", id, err)
	}
	return render(cmd, result)
}

func runVotacoes(cmd *cobra.Command, args []string) error {
	p, err := periodo()
	if err != nil {
		return err
	}

	votacoes, err := client.Votacoes(cmd.Context(), &camara.VotacoesOptions{
		IDProposicao: proposicaoIDs,
		IDOrgao:      orgaoIDs,
		IDEvento:     eventoIDs,
		Periodo:      p,
		Ordering:     ordering(),
	})
	if err != nil {
		return fmt.Errorf("failed to list vote sessions: %w", err)
	}
	return render(cmd, votacoes)
}

// votoRow flattens a vote so the deputy's fields become columns.
type votoRow struct {
	TipoVoto         string `json:"tipoVoto"`
	DataRegistroVoto string `json:"dataRegistroVoto"`
	ID               int    `json:"id"`
	Nome             string `json:"nome"`
	SiglaPartido     string `json:"siglaPartido"`
	SiglaUF          string `json:"siglaUf"`
}

func runVotos(cmd *cobra.Command, args []string) error {
	id := args[0]
	ctx := cmd.Context()

	if showOrientacoes {
		orientacoes, err := client.VotacaoOrientacoes(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to list guidance of vote session %s: %w", id, err)
		}
		return render(cmd, orientacoes)
	}

	votos, err := client.VotacaoVotos(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list votes of vote session %s: %w", id, err)
	}
	if len(votos) == 0 {
		logger.Info().Str("votacao", id).Msg("No individual votes (symbolic vote?)")
	}

	rows := make([]votoRow, len(votos))
	for i, v := range votos {
		rows[i] = votoRow{
			TipoVoto:         v.TipoVoto,
			DataRegistroVoto: v.DataRegistroVoto,
			ID:               v.Deputado.ID,
			Nome:             v.Deputado.Nome,
			SiglaPartido:     v.Deputado.SiglaPartido,
			SiglaUF:          v.Deputado.SiglaUF,
		}
	}
	return render(cmd, rows)
}
