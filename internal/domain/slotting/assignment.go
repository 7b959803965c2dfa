package slotting

import (
	"fmt"

	"github.com/jhoicas/slotting-api/internal/domain"
)

// Assignment mapeo parcial ítem ↔ ubicación, consistente en ambos sentidos:
// ninguna ubicación la reclaman dos ítems y ningún ítem reclama dos ubicaciones.
type Assignment struct {
	itemToLoc map[string]string
	locToItem map[string]string
}

// NewAssignment crea una asignación vacía.
func NewAssignment() *Assignment {
	return &Assignment{
		itemToLoc: make(map[string]string),
		locToItem: make(map[string]string),
	}
}

// LocationOf ubicación actual del ítem.
func (a *Assignment) LocationOf(itemID string) (string, bool) {
	loc, ok := a.itemToLoc[itemID]
	return loc, ok
}

// ItemAt ítem que ocupa la ubicación.
func (a *Assignment) ItemAt(locationID string) (string, bool) {
	item, ok := a.locToItem[locationID]
	return item, ok
}

// Occupied número de ubicaciones ocupadas.
func (a *Assignment) Occupied() int { return len(a.locToItem) }

// Assign ubica el ítem en la ubicación. Falla si alguno de los dos lados ya está tomado.
func (a *Assignment) Assign(itemID, locationID string) error {
	if other, ok := a.locToItem[locationID]; ok {
		return fmt.Errorf("%w: %s ocupada por %s: %w", domain.ErrInvariantViolation, locationID, other, domain.ErrLocationOccupied)
	}
	if current, ok := a.itemToLoc[itemID]; ok {
		return fmt.Errorf("%w: %s ya está en %s: %w", domain.ErrInvariantViolation, itemID, current, domain.ErrItemAlreadyAssigned)
	}
	a.itemToLoc[itemID] = locationID
	a.locToItem[locationID] = itemID
	return nil
}

// Release libera la ubicación del ítem y la devuelve. ok=false si el ítem no estaba ubicado.
func (a *Assignment) Release(itemID string) (string, bool) {
	loc, ok := a.itemToLoc[itemID]
	if !ok {
		return "", false
	}
	delete(a.itemToLoc, itemID)
	if a.locToItem[loc] == itemID {
		delete(a.locToItem, loc)
	}
	return loc, true
}

// Consistent verifica que ambos sentidos del mapeo coincidan.
func (a *Assignment) Consistent() bool {
	if len(a.itemToLoc) != len(a.locToItem) {
		return false
	}
	for item, loc := range a.itemToLoc {
		if a.locToItem[loc] != item {
			return false
		}
	}
	return true
}
