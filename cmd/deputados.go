package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencamara/camara-go/camara"
)

var (
	nomeDeputado string
	siglaSexo    string
	fornecedor   string
)

var deputadosCmd = &cobra.Command{
	Use:   "deputados",
	Short: "List deputies",
	Long: `List deputies. Without filters the API returns the deputies currently in office;
use --legislatura or --inicio/--fim to look at other periods.`,
	Example: `  camara deputados --uf SP --partido PT
  camara deputados -l 56 -l 57 --fields id,nome,siglaPartido`,
	Args: cobra.NoArgs,
	RunE: runDeputados,
}

var deputadoCmd = &cobra.Command{
	Use:   "deputado <id> [discursos|eventos|frentes|historico|mandatos|ocupacoes|orgaos|profissoes|proposicoes]",
	Short: "Show a deputy, or one of the deputy's related lists",
	Example: `  camara deputado 204554
  camara deputado 204554 frentes
  camara deputado 204554 discursos --inicio 2023-01-01 --fim 2023-06-30`,
	Args: cobra.RangeArgs(1, 2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			return []string{"discursos", "eventos", "frentes", "historico", "mandatos", "ocupacoes", "orgaos", "profissoes", "proposicoes"}, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runDeputado,
}

var despesasCmd = &cobra.Command{
	Use:   "despesas <id>",
	Short: "List a deputy's parliamentary quota expenses",
	Example: `  camara despesas 204554 --ano 2023
  camara despesas 204554 --ano 2023 --mes 1 --mes 2 --where 'valorLiquido > 1000'`,
	Args: cobra.ExactArgs(1),
	RunE: runDespesas,
}

func init() {
	rootCmd.AddCommand(deputadosCmd, deputadoCmd, despesasCmd)

	deputadosCmd.Flags().StringVar(&nomeDeputado, "nome", "", "part of the deputy's name")
	deputadosCmd.Flags().StringSliceVar(&siglaUF, "uf", nil, "state acronym(s)")
	deputadosCmd.Flags().StringSliceVar(&siglaPartido, "partido", nil, "party acronym(s)")
	deputadosCmd.Flags().StringVar(&siglaSexo, "sexo", "", "M or F")
	addLegislaturaFlag(deputadosCmd)
	addPeriodoFlags(deputadosCmd)
	addOrderingFlags(deputadosCmd)

	addLegislaturaFlag(deputadoCmd)
	addPeriodoFlags(deputadoCmd)

	despesasCmd.Flags().IntSliceVar(&anos, "ano", nil, "year(s) of the expenses")
	despesasCmd.Flags().IntSliceVar(&meses, "mes", nil, "month(s) of the expenses")
	despesasCmd.Flags().StringVar(&fornecedor, "fornecedor", "", "supplier CNPJ or CPF")
	addLegislaturaFlag(despesasCmd)
	addOrderingFlags(despesasCmd)
}

func runDeputados(cmd *cobra.Command, args []string) error {
	p, err := periodo()
	if err != nil {
		return err
	}

	deputados, err := client.Deputados(cmd.Context(), &camara.DeputadosOptions{
		Nome:          nomeDeputado,
		SiglaUF:       siglaUF,
		SiglaPartido:  siglaPartido,
		SiglaSexo:     siglaSexo,
		IDLegislatura: legislaturas,
		Periodo:       p,
		Ordering:      ordering(),
	})
	if err != nil {
		return fmt.Errorf("failed to list deputies: %w", err)
	}
	return render(cmd, deputados)
}

func runDeputado(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	p, err := periodo()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	opts := &camara.PeriodoOptions{IDLegislatura: legislaturas, Periodo: p}

	var result any
	sub := ""
	if len(args) == 2 {
		sub = args[1]
	}
	switch sub {
	case "":
		result, err = client.Deputado(ctx, id)
	case "discursos":
		result, err = client.DeputadoDiscursos(ctx, id, opts)
	case "eventos":
		result, err = client.DeputadoEventos(ctx, id, &camara.EventosOptions{Periodo: p})
	case "frentes":
		result, err = client.DeputadoFrentes(ctx, id)
	case "historico":
		result, err = client.DeputadoHistorico(ctx, id, opts)
	case "mandatos":
		result, err = client.DeputadoMandatosExternos(ctx, id)
	case "ocupacoes":
		result, err = client.DeputadoOcupacoes(ctx, id)
	case "orgaos":
		result, err = client.DeputadoOrgaos(ctx, id, opts)
	case "profissoes":
		result, err = client.DeputadoProfissoes(ctx, id)
	case "proposicoes":
		result, err = client.DeputadoProposicoes(ctx, id, &camara.ProposicoesOptions{Periodo: p})
	default:
		return fmt.Errorf("unknown deputy list %q", sub)
	}
	if err != nil {
		return fmt.Errorf("failed to get deputy %d: %w", id, err)
	}
	return render(cmd, result)
}

func runDespesas(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	for _, m := range meses {
		if m < 1 || m > 12 {
			return fmt.Errorf("invalid --mes %d: must be between 1 and 12", m)
		}
	}

	despesas, err := client.DeputadoDespesas(cmd.Context(), id, &camara.DespesasOptions{
		IDLegislatura:     legislaturas,
		Ano:               anos,
		Mes:               meses,
		CNPJCPFFornecedor: fornecedor,
		Ordering:          ordering(),
	})
	if err != nil {
		return fmt.Errorf("failed to list expenses of deputy %d: %w", id, err)
	}
	return render(cmd, despesas)
}
