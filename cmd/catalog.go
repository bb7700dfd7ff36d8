package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencamara/camara-go/camara"
)

var (
	siglas        []string
	tiposOrgao    []int
	tiposEvento   []int
	dataReferente string
)

// detailFunc fetches one entity or one of its related lists.
type detailFunc func(ctx context.Context, id int) (any, error)

func anyOf[T any](v T, err error) (any, error) {
	return v, err
}

// runDetail serves "<command> <id> [sub]": the entity itself, or the related
// list named by sub.
func runDetail(cmd *cobra.Command, args []string, kind string, detail detailFunc, subs map[string]detailFunc) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	fn := detail
	if len(args) == 2 {
		var ok bool
		if fn, ok = subs[args[1]]; !ok {
			names := make([]string, 0, len(subs))
			for name := range subs {
				names = append(names, name)
			}
			slices.Sort(names)
			return fmt.Errorf("unknown %s list %q (valid: %s)", kind, args[1], strings.Join(names, ", "))
		}
	}

	result, err := fn(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get %s %d: %w", kind, id, err)
	}
	return render(cmd, result)
}

func orgaoEventos(p camara.Periodo) detailFunc {
	return func(ctx context.Context, id int) (any, error) {
		return anyOf(client.OrgaoEventos(ctx, id, &camara.EventosOptions{IDTipoEvento: tiposEvento, Periodo: p}))
	}
}

func orgaoMembros(p camara.Periodo) detailFunc {
	return func(ctx context.Context, id int) (any, error) {
		return anyOf(client.OrgaoMembros(ctx, id, &camara.PeriodoOptions{Periodo: p}))
	}
}

func orgaoVotacoes(p camara.Periodo) detailFunc {
	return func(ctx context.Context, id int) (any, error) {
		return anyOf(client.OrgaoVotacoes(ctx, id, &camara.VotacoesOptions{Periodo: p}))
	}
}

var partidosCmd = &cobra.Command{
	Use:   "partidos [id [membros|lideres]]",
	Short: "List parties, or show a party and its members or leaders",
	Example: `  camara partidos -l 57
  camara partidos 36844 membros`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := periodo()
		if err != nil {
			return err
		}
		if len(args) > 0 {
			return runDetail(cmd, args, "party",
				func(ctx context.Context, id int) (any, error) { return anyOf(client.Partido(ctx, id)) },
				map[string]detailFunc{
					"membros": func(ctx context.Context, id int) (any, error) {
						return anyOf(client.PartidoMembros(ctx, id, &camara.PeriodoOptions{IDLegislatura: legislaturas, Periodo: p}))
					},
					"lideres": func(ctx context.Context, id int) (any, error) { return anyOf(client.PartidoLideres(ctx, id)) },
				})
		}

		partidos, err := client.Partidos(cmd.Context(), &camara.PartidosOptions{
			Sigla:         siglas,
			IDLegislatura: legislaturas,
			Periodo:       p,
			Ordering:      ordering(),
		})
		if err != nil {
			return fmt.Errorf("failed to list parties: %w", err)
		}
		return render(cmd, partidos)
	},
}

var orgaosCmd = &cobra.Command{
	Use:   "orgaos [id [eventos|membros|votacoes]]",
	Short: "List committees and other bodies, or show one and its related lists",
	Example: `  camara orgaos --sigla CCJC
  camara orgaos 2003 membros`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := periodo()
		if err != nil {
			return err
		}
		if len(args) > 0 {
			return runDetail(cmd, args, "body",
				func(ctx context.Context, id int) (any, error) { return anyOf(client.Orgao(ctx, id)) },
				map[string]detailFunc{
					"eventos":  orgaoEventos(p),
					"membros":  orgaoMembros(p),
					"votacoes": orgaoVotacoes(p),
				})
		}

		orgaos, err := client.Orgaos(cmd.Context(), &camara.OrgaosOptions{
			Sigla:        siglas,
			CodTipoOrgao: tiposOrgao,
			Periodo:      p,
			Ordering:     ordering(),
		})
		if err != nil {
			return fmt.Errorf("failed to list bodies: %w", err)
		}
		return render(cmd, orgaos)
	},
}

var eventosCmd = &cobra.Command{
	Use:   "eventos [id [deputados|orgaos|pauta|votacoes]]",
	Short: "List events, or show an event and its related lists",
	Example: `  camara eventos --inicio 2023-03-01 --fim 2023-03-07
  camara eventos 70000 pauta`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return runDetail(cmd, args, "event",
				func(ctx context.Context, id int) (any, error) { return anyOf(client.Evento(ctx, id)) },
				map[string]detailFunc{
					"deputados": func(ctx context.Context, id int) (any, error) { return anyOf(client.EventoDeputados(ctx, id)) },
					"orgaos":    func(ctx context.Context, id int) (any, error) { return anyOf(client.EventoOrgaos(ctx, id)) },
					"pauta":     func(ctx context.Context, id int) (any, error) { return anyOf(client.EventoPauta(ctx, id)) },
					"votacoes":  func(ctx context.Context, id int) (any, error) { return anyOf(client.EventoVotacoes(ctx, id)) },
				})
		}

		p, err := periodo()
		if err != nil {
			return err
		}
		eventos, err := client.Eventos(cmd.Context(), &camara.EventosOptions{
			IDOrgao:      orgaoIDs,
			IDTipoEvento: tiposEvento,
			Periodo:      p,
			Ordering:     ordering(),
		})
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		return render(cmd, eventos)
	},
}

var frentesCmd = &cobra.Command{
	Use:   "frentes [id [membros]]",
	Short: "List parliamentary fronts, or show a front and its members",
	Example: `  camara frentes -l 57
  camara frentes 54012 membros`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return runDetail(cmd, args, "front",
				func(ctx context.Context, id int) (any, error) { return anyOf(client.Frente(ctx, id)) },
				map[string]detailFunc{
					"membros": func(ctx context.Context, id int) (any, error) { return anyOf(client.FrenteMembros(ctx, id)) },
				})
		}

		if len(legislaturas) == 0 {
			return fmt.Errorf("--legislatura is required to list fronts")
		}
		frentes, err := client.Frentes(cmd.Context(), &camara.FrentesOptions{IDLegislatura: legislaturas})
		if err != nil {
			return fmt.Errorf("failed to list fronts: %w", err)
		}
		return render(cmd, frentes)
	},
}

var gruposCmd = &cobra.Command{
	Use:   "grupos [id [membros|historico]]",
	Short: "List interparliamentary friendship groups, or show one and its related lists",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return runDetail(cmd, args, "group",
				func(ctx context.Context, id int) (any, error) { return anyOf(client.Grupo(ctx, id)) },
				map[string]detailFunc{
					"membros":   func(ctx context.Context, id int) (any, error) { return anyOf(client.GrupoMembros(ctx, id)) },
					"historico": func(ctx context.Context, id int) (any, error) { return anyOf(client.GrupoHistorico(ctx, id)) },
				})
		}

		o := ordering()
		grupos, err := client.Grupos(cmd.Context(), &o)
		if err != nil {
			return fmt.Errorf("failed to list groups: %w", err)
		}
		return render(cmd, grupos)
	},
}

var legislaturasCmd = &cobra.Command{
	Use:   "legislaturas [id [lideres|mesa]]",
	Short: "List legislative terms, or show one with its leaders or board",
	Example: `  camara legislaturas --data 2024-06-01
  camara legislaturas 57 mesa`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := periodo()
		if err != nil {
			return err
		}
		if len(args) > 0 {
			return runDetail(cmd, args, "legislature",
				func(ctx context.Context, id int) (any, error) { return anyOf(client.Legislatura(ctx, id)) },
				map[string]detailFunc{
					"lideres": func(ctx context.Context, id int) (any, error) { return anyOf(client.LegislaturaLideres(ctx, id)) },
					"mesa":    func(ctx context.Context, id int) (any, error) { return anyOf(client.LegislaturaMesa(ctx, id, &p)) },
				})
		}

		data, err := parseDay("data", dataReferente)
		if err != nil {
			return err
		}
		legs, err := client.Legislaturas(cmd.Context(), &camara.LegislaturasOptions{Data: data, Ordering: ordering()})
		if err != nil {
			return fmt.Errorf("failed to list legislatures: %w", err)
		}
		return render(cmd, legs)
	},
}

var blocosCmd = &cobra.Command{
	Use:   "blocos [id [partidos]]",
	Short: "List parliamentary blocs, or show a bloc and its parties",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		switch {
		case len(args) == 2 && args[1] == "partidos":
			partidos, err := client.BlocoPartidos(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list parties of bloc %s: %w", args[0], err)
			}
			return render(cmd, partidos)
		case len(args) == 2:
			return fmt.Errorf("unknown bloc list %q (valid: partidos)", args[1])
		case len(args) == 1:
			bloco, err := client.Bloco(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get bloc %s: %w", args[0], err)
			}
			return render(cmd, bloco)
		}

		blocos, err := client.Blocos(ctx, &camara.BlocosOptions{IDLegislatura: legislaturas, Ordering: ordering()})
		if err != nil {
			return fmt.Errorf("failed to list blocs: %w", err)
		}
		return render(cmd, blocos)
	},
}

var referenciasCmd = &cobra.Command{
	Use:   "referencias [tipo]",
	Short: "Show a reference table (codes used by the other endpoints)",
	Long: `Show a reference table such as proposicoes/siglaTipo or uf. Without an
argument, list the available tables.`,
	Example: `  camara referencias
  camara referencias proposicoes/codTema`,
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(camara.ReferenciaTipos))
		for i, t := range camara.ReferenciaTipos {
			names[i] = string(t)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return render(cmd, camara.ReferenciaTipos)
		}

		tipo := camara.ReferenciaTipo(args[0])
		if !slices.Contains(camara.ReferenciaTipos, tipo) {
			logger.Warn().Str("tipo", args[0]).Msg("Unknown reference table, querying anyway")
		}

		// Grouped tables nest one list per sub-table and do not fit Referencia
		if tipo == camara.RefDeputados || tipo == camara.RefProposicoes {
			var grouped any
			if err := client.Get(cmd.Context(), "referencias/"+string(tipo), nil, &grouped); err != nil {
				return fmt.Errorf("failed to get reference table %s: %w", tipo, err)
			}
			return render(cmd, grouped)
		}

		refs, err := client.Referencias(cmd.Context(), tipo)
		if err != nil {
			return fmt.Errorf("failed to get reference table %s: %w", tipo, err)
		}
		return render(cmd, refs)
	},
}

func init() {
	rootCmd.AddCommand(partidosCmd, orgaosCmd, eventosCmd, frentesCmd, gruposCmd, legislaturasCmd, blocosCmd, referenciasCmd)

	partidosCmd.Flags().StringSliceVar(&siglas, "sigla", nil, "party acronym(s)")
	addLegislaturaFlag(partidosCmd)
	addPeriodoFlags(partidosCmd)
	addOrderingFlags(partidosCmd)

	orgaosCmd.Flags().StringSliceVar(&siglas, "sigla", nil, "body acronym(s)")
	orgaosCmd.Flags().IntSliceVar(&tiposOrgao, "tipo", nil, "body type code(s)")
	orgaosCmd.Flags().IntSliceVar(&tiposEvento, "tipo-evento", nil, "event type code(s), for 'eventos'")
	addPeriodoFlags(orgaosCmd)
	addOrderingFlags(orgaosCmd)

	eventosCmd.Flags().IntSliceVar(&orgaoIDs, "orgao", nil, "body id(s)")
	eventosCmd.Flags().IntSliceVar(&tiposEvento, "tipo", nil, "event type code(s)")
	addPeriodoFlags(eventosCmd)
	addOrderingFlags(eventosCmd)

	addLegislaturaFlag(frentesCmd)

	addOrderingFlags(gruposCmd)

	legislaturasCmd.Flags().StringVar(&dataReferente, "data", "", "legislature in office on this date (YYYY-MM-DD)")
	addPeriodoFlags(legislaturasCmd)
	addOrderingFlags(legislaturasCmd)

	addLegislaturaFlag(blocosCmd)
	addOrderingFlags(blocosCmd)
}
