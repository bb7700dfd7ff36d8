package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/opencamara/camara-go/network"
)

var (
	showNodes bool
	topEdges  int
	strongest bool
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Build deputy networks from shared fronts or co-voting",
	Long: `Network builds an undirected graph of deputies and prints its edges (or its
nodes with --nodes). Edges are sorted by weight, lowest first; --desc reverses
the order and --top keeps only the first N.`,
}

var networkFrentesCmd = &cobra.Command{
	Use:   "frentes",
	Short: "Link deputies by the number of fronts they share",
	Long: `Every pair of deputies that belong to at least one common parliamentary
front is linked, weighted by the number of fronts they share.`,
	Example: `  camara network frentes -l 57 --desc --top 20`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := newEnricher().FrentesLegislatura(cmd.Context(), legislaturas)
		if err != nil {
			return fmt.Errorf("failed to load fronts: %w", err)
		}
		return renderGraph(cmd, network.FromFrentes(rows))
	},
}

var networkVotosCmd = &cobra.Command{
	Use:   "votos",
	Short: "Link deputies by how often they vote alike",
	Long: `Every pair of deputies that voted in the same session is linked. Each
session adds 1 to the weight when they voted alike and subtracts 1 otherwise.`,
	Example: `  camara network votos --inicio 2023-03-01 --fim 2023-03-31 --top 20`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inicio, fim, err := requirePeriodo()
		if err != nil {
			return err
		}
		rows, err := newEnricher().VotosPeriodo(cmd.Context(), inicio, fim)
		if err != nil {
			return fmt.Errorf("failed to load votes: %w", err)
		}
		return renderGraph(cmd, network.FromVotos(rows))
	},
}

func init() {
	rootCmd.AddCommand(networkCmd)
	networkCmd.AddCommand(networkFrentesCmd, networkVotosCmd)

	networkCmd.PersistentFlags().BoolVar(&showNodes, "nodes", false, "print the nodes instead of the edges")
	networkCmd.PersistentFlags().IntVar(&topEdges, "top", 0, "print only the first N edges")
	networkCmd.PersistentFlags().BoolVar(&strongest, "desc", false, "sort edges by weight, highest first")
	networkCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0, "concurrent requests (default from config, 8)")

	addLegislaturaFlag(networkFrentesCmd)
	addPeriodoFlags(networkVotosCmd)
}

// edgeRow is an edge with both endpoints' names and parties.
type edgeRow struct {
	Source        int    `json:"source"`
	SourceNome    string `json:"sourceNome"`
	SourcePartido string `json:"sourcePartido"`
	Target        int    `json:"target"`
	TargetNome    string `json:"targetNome"`
	TargetPartido string `json:"targetPartido"`
	Weight        int    `json:"weight"`
}

func renderGraph(cmd *cobra.Command, g *network.Graph) error {
	logger.Info().
		Int("nodes", g.NodeCount()).
		Int("edges", g.EdgeCount()).
		Msg("Built network")

	if showNodes {
		return render(cmd, g.Nodes())
	}

	edges := g.SortedEdges()
	if strongest {
		slices.Reverse(edges)
	}
	if topEdges > 0 && topEdges < len(edges) {
		edges = edges[:topEdges]
	}

	rows := make([]edgeRow, len(edges))
	for i, e := range edges {
		src, _ := g.Node(e.Source)
		dst, _ := g.Node(e.Target)
		rows[i] = edgeRow{
			Source:        e.Source,
			SourceNome:    src.Nome,
			SourcePartido: src.Partido,
			Target:        e.Target,
			TargetNome:    dst.Nome,
			TargetPartido: dst.Partido,
			Weight:        e.Weight,
		}
	}
	return render(cmd, rows)
}
