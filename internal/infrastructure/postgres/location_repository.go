package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/slotting-api/internal/domain/entity"
	"github.com/jhoicas/slotting-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo lectura de slots (storage_locations) sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// ListByWarehouse lista los slots de la bodega.
func (r *LocationRepo) ListByWarehouse(ctx context.Context, companyID, warehouseID string) ([]*entity.Location, error) {
	query := `
		SELECT slot_id, company_id, warehouse_id, aisle_id, temp_zone, max_weight_kg
		FROM storage_locations
		WHERE company_id = $1 AND warehouse_id = $2
		ORDER BY slot_id`
	rows, err := r.q.Query(ctx, query, companyID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list storage_locations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Location
	for rows.Next() {
		var (
			loc  entity.Location
			zone *string
		)
		if err := rows.Scan(&loc.ID, &loc.CompanyID, &loc.WarehouseID, &loc.AisleID, &zone, &loc.MaxWeight); err != nil {
			return nil, fmt.Errorf("scan storage_locations: %w", err)
		}
		loc.TempZone = valueOrEmpty(zone)
		list = append(list, &loc)
	}
	return list, rows.Err()
}
