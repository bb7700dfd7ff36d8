package cmd

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencamara/camara-go/camara"
)

// Flags shared by several commands. Only one command runs per process, so
// binding the same variable on more than one command is safe.
var (
	dataInicio   string
	dataFim      string
	ordem        string
	ordenarPor   string
	legislaturas []int
	siglaUF      []string
	siglaPartido []string
	anos         []int
	meses        []int
)

func addPeriodoFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&dataInicio, "inicio", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dataFim, "fim", "", "end date (YYYY-MM-DD)")
}

func addOrderingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ordem, "ordem", "", "sort direction: ASC or DESC")
	cmd.Flags().StringVar(&ordenarPor, "ordenar-por", "", "field to sort by")
}

func addLegislaturaFlag(cmd *cobra.Command) {
	cmd.Flags().IntSliceVarP(&legislaturas, "legislatura", "l", nil, "legislature id(s), e.g. 57")
}

// parseDay parses a YYYY-MM-DD flag value. An empty value is the zero time.
func parseDay(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", flag, value)
	}
	return t, nil
}

func periodo() (camara.Periodo, error) {
	inicio, err := parseDay("inicio", dataInicio)
	if err != nil {
		return camara.Periodo{}, err
	}
	fim, err := parseDay("fim", dataFim)
	if err != nil {
		return camara.Periodo{}, err
	}
	if !inicio.IsZero() && !fim.IsZero() && fim.Before(inicio) {
		return camara.Periodo{}, fmt.Errorf("--fim %s is before --inicio %s", dataFim, dataInicio)
	}
	return camara.Periodo{DataInicio: inicio, DataFim: fim}, nil
}

func ordering() camara.Ordering {
	return camara.Ordering{Ordem: strings.ToUpper(ordem), OrdenarPor: ordenarPor}
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", arg)
	}
	return id, nil
}

// parseParams turns repeated key=value flags into query parameters. A key may
// repeat, which the API reads as a list.
func parseParams(pairs []string) (url.Values, error) {
	params := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", pair)
		}
		params.Add(key, value)
	}
	return params, nil
}
