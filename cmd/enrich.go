package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencamara/camara-go/enrich"
)

var concurrency int

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Bulk-download data for every deputy or vote, tagged with the deputy",
	Long: `Enrich fans out one request per deputy (or per vote session) and flattens
the results into rows that carry the deputy's id, name, state and party.
Any failing request fails the whole command.`,
}

var enrichDespesasCmd = &cobra.Command{
	Use:     "despesas",
	Short:   "Expenses of every deputy of the given legislature(s)",
	Example: `  camara enrich despesas -l 57 --partido PL --ano 2023 -o json > despesas.json`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var ano int
		if len(anos) > 1 {
			return fmt.Errorf("--ano takes a single year")
		}
		if len(anos) == 1 {
			ano = anos[0]
		}

		rows, err := newEnricher().DespesasLegislatura(cmd.Context(), enrich.DespesasQuery{
			Legislaturas: legislaturas,
			Partidos:     siglaPartido,
			Ano:          ano,
			Meses:        meses,
		})
		if err != nil {
			return fmt.Errorf("failed to enrich expenses: %w", err)
		}
		return render(cmd, rows)
	},
}

var enrichFrentesCmd = &cobra.Command{
	Use:     "frentes",
	Short:   "Front memberships of every deputy of the given legislature(s)",
	Example: `  camara enrich frentes -l 57`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := newEnricher().FrentesLegislatura(cmd.Context(), legislaturas)
		if err != nil {
			return fmt.Errorf("failed to enrich fronts: %w", err)
		}
		return render(cmd, rows)
	},
}

var enrichVotosCmd = &cobra.Command{
	Use:     "votos",
	Short:   "Every individual vote cast in the given period",
	Example: `  camara enrich votos --inicio 2023-03-01 --fim 2023-03-31`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inicio, fim, err := requirePeriodo()
		if err != nil {
			return err
		}
		rows, err := newEnricher().VotosPeriodo(cmd.Context(), inicio, fim)
		if err != nil {
			return fmt.Errorf("failed to enrich votes: %w", err)
		}
		return render(cmd, rows)
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)
	enrichCmd.AddCommand(enrichDespesasCmd, enrichFrentesCmd, enrichVotosCmd)

	enrichCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0, "concurrent requests (default from config, 8)")

	addLegislaturaFlag(enrichDespesasCmd)
	enrichDespesasCmd.Flags().StringSliceVar(&siglaPartido, "partido", nil, "only deputies of these parties")
	enrichDespesasCmd.Flags().IntSliceVar(&anos, "ano", nil, "year of the expenses")
	enrichDespesasCmd.Flags().IntSliceVar(&meses, "mes", nil, "month(s) of the expenses")

	addLegislaturaFlag(enrichFrentesCmd)

	addPeriodoFlags(enrichVotosCmd)
}

func newEnricher() *enrich.Enricher {
	n := cfg.Enrich.Concurrency
	if concurrency > 0 {
		n = concurrency
	}
	return enrich.New(client, logger, enrich.WithConcurrency(n))
}

// requirePeriodo is periodo for commands that need both ends of the range.
func requirePeriodo() (time.Time, time.Time, error) {
	if dataInicio == "" || dataFim == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--inicio and --fim are required")
	}
	p, err := periodo()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return p.DataInicio, p.DataFim, nil
}
