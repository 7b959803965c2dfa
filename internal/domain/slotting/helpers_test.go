package slotting_test

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/slotting-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testCongestionPrefix = "B"

func newItem(id string, weight float64, temp string, orders int, loc string) *entity.Item {
	return &entity.Item{
		ID:         id,
		Weight:     decimal.NewFromFloat(weight),
		TempReq:    temp,
		OrderCount: orders,
		LocationID: loc,
	}
}

func newLoc(id, aisle, zone string, maxWeight float64) *entity.Location {
	return &entity.Location{
		ID:        id,
		AisleID:   aisle,
		TempZone:  zone,
		MaxWeight: decimal.NewFromFloat(maxWeight),
	}
}

func locationIDs(locs []*entity.Location) []string {
	ids := make([]string, 0, len(locs))
	for _, l := range locs {
		ids = append(ids, l.ID)
	}
	return ids
}
