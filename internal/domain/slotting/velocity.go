package slotting

import (
	"sort"

	"github.com/jhoicas/slotting-api/internal/domain/entity"
)

// VelocitySet ítems marcados como de alta velocidad (top-N por pedidos históricos).
type VelocitySet map[string]struct{}

// Has indica si el ítem está marcado.
func (s VelocitySet) Has(itemID string) bool {
	_, ok := s[itemID]
	return ok
}

// TopVelocity marca los n ítems con más pedidos. Empates por ID ascendente;
// ítems con cero pedidos nunca se marcan aunque quepan en el top.
func TopVelocity(items []*entity.Item, n int) VelocitySet {
	set := make(VelocitySet)
	if n <= 0 {
		return set
	}
	ranked := make([]*entity.Item, 0, len(items))
	for _, it := range items {
		if it.OrderCount > 0 {
			ranked = append(ranked, it)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].OrderCount != ranked[j].OrderCount {
			return ranked[i].OrderCount > ranked[j].OrderCount
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	for _, it := range ranked {
		set[it.ID] = struct{}{}
	}
	return set
}
