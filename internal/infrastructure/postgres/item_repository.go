package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/slotting-api/internal/domain/entity"
	"github.com/jhoicas/slotting-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo lectura del maestro de SKUs (sku_master) sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// ListByWarehouse lista los SKUs de la bodega ordenados por sku_id (orden estable entre corridas).
func (r *ItemRepo) ListByWarehouse(ctx context.Context, companyID, warehouseID string) ([]*entity.Item, error) {
	query := `
		SELECT sku_id, company_id, warehouse_id, category, weight_kg, temp_req, current_slot
		FROM sku_master
		WHERE company_id = $1 AND warehouse_id = $2
		ORDER BY sku_id`
	rows, err := r.q.Query(ctx, query, companyID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list sku_master: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		var (
			it       entity.Item
			category *string
			slot     *string
		)
		if err := rows.Scan(&it.ID, &it.CompanyID, &it.WarehouseID, &category, &it.Weight, &it.TempReq, &slot); err != nil {
			return nil, fmt.Errorf("scan sku_master: %w", err)
		}
		it.Category = valueOrEmpty(category)
		it.LocationID = valueOrEmpty(slot)
		list = append(list, &it)
	}
	return list, rows.Err()
}
