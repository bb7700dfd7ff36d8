package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	rawParams []string
	fetchAll  bool
)

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Query any API path",
	Long: `Query any path of the API and print its "dados". The path is relative to the
base URL; absolute URLs (such as the "uri" fields of records) are used as is.

With --all, the path is treated as a list endpoint and every page is read.`,
	Example: `  camara get deputados/204554/orgaos
  camara get proposicoes -p siglaTipo=PEC -p ano=2023 --all
  camara get https://dadosabertos.camara.leg.br/api/v2/partidos/36844`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringArrayVarP(&rawParams, "param", "p", nil, "query parameter as key=value (repeatable)")
	getCmd.Flags().BoolVar(&fetchAll, "all", false, "follow pagination and return every record")
}

func runGet(cmd *cobra.Command, args []string) error {
	params, err := parseParams(rawParams)
	if err != nil {
		return err
	}
	path := args[0]

	if fetchAll {
		records, err := client.List(cmd.Context(), path, params)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", path, err)
		}
		return render(cmd, records)
	}

	var dados any
	if err := client.Get(cmd.Context(), path, params, &dados); err != nil {
		return fmt.Errorf("failed to get %s: %w", path, err)
	}
	return render(cmd, dados)
}
