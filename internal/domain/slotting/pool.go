package slotting

import (
	"fmt"
	"sort"

	"github.com/jhoicas/slotting-api/internal/domain"
	"github.com/jhoicas/slotting-api/internal/domain/entity"
)

// Pool conjunto de ubicaciones libres. Mantiene todas las ubicaciones en un arreglo
// ordenado por ID con una marca de libre por posición: Add/Remove son O(1) y Find
// enumera siempre en el mismo orden, así "el primer candidato" es reproducible.
//
// No es seguro para uso concurrente: elegir y luego reclamar es check-then-act.
type Pool struct {
	locations []*entity.Location
	index     map[string]int
	free      []bool
	size      int
}

// NewPool construye el pool con todas las ubicaciones conocidas, inicialmente ocupadas;
// el llamador libera las que no referencia ningún ítem.
func NewPool(locations []*entity.Location) *Pool {
	sorted := make([]*entity.Location, len(locations))
	copy(sorted, locations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	p := &Pool{
		locations: sorted,
		index:     make(map[string]int, len(sorted)),
		free:      make([]bool, len(sorted)),
	}
	for i, loc := range sorted {
		p.index[loc.ID] = i
	}
	return p
}

// Len número de ubicaciones libres.
func (p *Pool) Len() int { return p.size }

// Contains indica si la ubicación está libre.
func (p *Pool) Contains(locationID string) bool {
	i, ok := p.index[locationID]
	return ok && p.free[i]
}

// Find devuelve las ubicaciones libres que cumplen pred, en orden de ID ascendente.
func (p *Pool) Find(pred func(*entity.Location) bool) []*entity.Location {
	var out []*entity.Location
	for i, loc := range p.locations {
		if p.free[i] && pred(loc) {
			out = append(out, loc)
		}
	}
	return out
}

// First devuelve la primera ubicación libre que cumple pred.
func (p *Pool) First(pred func(*entity.Location) bool) (*entity.Location, bool) {
	for i, loc := range p.locations {
		if p.free[i] && pred(loc) {
			return loc, true
		}
	}
	return nil, false
}

// Remove reclama una ubicación. Reclamar una ubicación que no está libre es un error de lógica.
func (p *Pool) Remove(locationID string) error {
	i, ok := p.index[locationID]
	if !ok || !p.free[i] {
		return fmt.Errorf("%w: remove %s: %w", domain.ErrInvariantViolation, locationID, domain.ErrLocationNotInPool)
	}
	p.free[i] = false
	p.size--
	return nil
}

// Add devuelve una ubicación desocupada al pool.
func (p *Pool) Add(loc *entity.Location) error {
	i, ok := p.index[loc.ID]
	if !ok {
		return fmt.Errorf("%w: add %s: %w", domain.ErrInvariantViolation, loc.ID, domain.ErrUnknownLocation)
	}
	if p.free[i] {
		return fmt.Errorf("%w: add %s: %w", domain.ErrInvariantViolation, loc.ID, domain.ErrLocationAlreadyInPool)
	}
	p.free[i] = true
	p.size++
	return nil
}

// FreeIDs IDs libres en orden ascendente.
func (p *Pool) FreeIDs() []string {
	ids := make([]string, 0, p.size)
	for i, loc := range p.locations {
		if p.free[i] {
			ids = append(ids, loc.ID)
		}
	}
	return ids
}
