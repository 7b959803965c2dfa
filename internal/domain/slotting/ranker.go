package slotting

import (
	"sort"

	"github.com/jhoicas/slotting-api/internal/domain/entity"
)

// HardConstraintWeight peso de cada violación dura en el score de prioridad.
// Domina cualquier volumen de pedidos razonable, así temperatura/peso se resuelven antes que congestión.
const HardConstraintWeight = 1000

// Candidate ítem a reubicar con su score de prioridad.
type Candidate struct {
	Item       *entity.Item
	Violations ViolationSet
	Score      int
}

// Hard indica si el candidato lleva una violación de temperatura o peso.
func (c Candidate) Hard() bool { return c.Score >= HardConstraintWeight }

// Score = 1000·[temp] + 1000·[peso] + pedidos·[congestión].
func Score(v ViolationSet, orderCount int) int {
	score := 0
	if v.Temperature {
		score += HardConstraintWeight
	}
	if v.Weight {
		score += HardConstraintWeight
	}
	if v.Congestion {
		score += orderCount
	}
	return score
}

// Rank devuelve los candidatos (ítems con al menos una violación) ordenados por score
// descendente y, en empate, por ID ascendente.
func Rank(items []*entity.Item, violations map[string]ViolationSet) []Candidate {
	out := make([]Candidate, 0, len(violations))
	for _, it := range items {
		v, ok := violations[it.ID]
		if !ok || !v.Any() {
			continue
		}
		out = append(out, Candidate{Item: it, Violations: v, Score: Score(v, it.OrderCount)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Item.ID < out[j].Item.ID
	})
	return out
}
