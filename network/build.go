package network

import (
	"strconv"

	"github.com/opencamara/camara-go/enrich"
)

func nodeOf(d enrich.DeputadoInfo) Node {
	return Node{
		ID:      d.IDDeputado,
		Nome:    d.NomeDeputado,
		Partido: d.SiglaPartidoDeputado,
		UF:      d.SiglaUFDeputado,
	}
}

// FromFrentes links deputies by the number of parliamentary fronts they share.
// Deputies with no shared front stay unlinked.
func FromFrentes(rows []enrich.FrenteDeputado) *Graph {
	g := New()

	var order []int
	memberships := make(map[int]map[string]bool)
	for _, r := range rows {
		id := r.IDDeputado
		if _, ok := memberships[id]; !ok {
			order = append(order, id)
			memberships[id] = make(map[string]bool)
		}
		g.AddNode(nodeOf(r.DeputadoInfo))
		memberships[id][frenteKey(r)] = true
	}

	for i, a := range order {
		for _, b := range order[i+1:] {
			shared := 0
			for f := range memberships[a] {
				if memberships[b][f] {
					shared++
				}
			}
			if shared > 0 {
				g.AddWeight(a, b, shared)
			}
		}
	}
	return g
}

// frenteKey identifies a front by id, or by title for rows without one.
func frenteKey(r enrich.FrenteDeputado) string {
	if r.ID != 0 {
		return strconv.Itoa(r.ID)
	}
	return "titulo:" + r.Titulo
}

// FromVotos links deputies who voted in the same session: +1 each time they
// voted alike, -1 each time they did not. A pair that co-voted keeps its edge
// even when the balance is zero.
func FromVotos(rows []enrich.VotoDeputado) *Graph {
	g := New()

	type session struct {
		order []int
		votes map[int]string
	}
	var sessionOrder []string
	sessions := make(map[string]*session)

	for _, r := range rows {
		g.AddNode(nodeOf(r.DeputadoInfo))

		s, ok := sessions[r.Votacao.ID]
		if !ok {
			s = &session{votes: make(map[int]string)}
			sessions[r.Votacao.ID] = s
			sessionOrder = append(sessionOrder, r.Votacao.ID)
		}
		if _, voted := s.votes[r.IDDeputado]; !voted {
			s.order = append(s.order, r.IDDeputado)
		}
		// A repeated row for the same deputy replaces the earlier vote.
		s.votes[r.IDDeputado] = r.TipoVoto
	}

	for _, id := range sessionOrder {
		s := sessions[id]
		for i, a := range s.order {
			for _, b := range s.order[i+1:] {
				if s.votes[a] == s.votes[b] {
					g.AddWeight(a, b, 1)
				} else {
					g.AddWeight(a, b, -1)
				}
			}
		}
	}
	return g
}
