package csvstore

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/slotting-api/internal/domain"
	"github.com/jhoicas/slotting-api/internal/domain/entity"
	"github.com/jhoicas/slotting-api/internal/domain/repository"
)

var (
	_ repository.ItemRepository         = (*ItemRepo)(nil)
	_ repository.LocationRepository     = (*LocationRepo)(nil)
	_ repository.OrderHistoryRepository = (*OrderHistoryRepo)(nil)
)

// ItemRepo lee sku_master (sku_id, category, weight_kg, temp_req, current_slot).
// Cada archivo contiene una sola bodega: companyID y warehouseID solo se copian a las entidades.
type ItemRepo struct {
	path string
	enc  Encoding
}

// NewItemRepository construye el adaptador sobre el archivo indicado.
func NewItemRepository(path string, enc Encoding) *ItemRepo {
	return &ItemRepo{path: path, enc: enc}
}

// ListByWarehouse devuelve los ítems en orden de archivo.
func (r *ItemRepo) ListByWarehouse(ctx context.Context, companyID, warehouseID string) ([]*entity.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := readTable(r.path, r.enc)
	if err != nil {
		return nil, err
	}
	idCol, err := t.column("sku_id")
	if err != nil {
		return nil, err
	}
	weightCol, err := t.column("weight_kg")
	if err != nil {
		return nil, err
	}
	tempCol, err := t.column("temp_req")
	if err != nil {
		return nil, err
	}
	categoryCol := t.optional("category")
	slotCol := t.optional("current_slot")

	list := make([]*entity.Item, 0, len(t.rows))
	for n, rec := range t.rows {
		id := cell(rec, idCol)
		if unset(id) {
			return nil, rowError(r.path, n, "sku_id vacío")
		}
		weight, err := parseDecimal(cell(rec, weightCol))
		if err != nil {
			return nil, rowError(r.path, n, "weight_kg inválido: "+err.Error())
		}
		list = append(list, &entity.Item{
			ID:          id,
			CompanyID:   companyID,
			WarehouseID: warehouseID,
			Category:    optionalCell(rec, categoryCol),
			Weight:      weight,
			TempReq:     optionalCell(rec, tempCol),
			LocationID:  optionalCell(rec, slotCol),
		})
	}
	return list, nil
}

// LocationRepo lee warehouse_constraints (slot_id, aisle_id, temp_zone, max_weight_kg).
type LocationRepo struct {
	path string
	enc  Encoding
}

// NewLocationRepository construye el adaptador sobre el archivo indicado.
func NewLocationRepository(path string, enc Encoding) *LocationRepo {
	return &LocationRepo{path: path, enc: enc}
}

// ListByWarehouse devuelve los slots en orden de archivo. temp_zone nulo = zona desconocida.
func (r *LocationRepo) ListByWarehouse(ctx context.Context, companyID, warehouseID string) ([]*entity.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := readTable(r.path, r.enc)
	if err != nil {
		return nil, err
	}
	idCol, err := t.column("slot_id")
	if err != nil {
		return nil, err
	}
	aisleCol, err := t.column("aisle_id")
	if err != nil {
		return nil, err
	}
	zoneCol, err := t.column("temp_zone")
	if err != nil {
		return nil, err
	}
	maxCol, err := t.column("max_weight_kg")
	if err != nil {
		return nil, err
	}

	list := make([]*entity.Location, 0, len(t.rows))
	for n, rec := range t.rows {
		id := cell(rec, idCol)
		if unset(id) {
			return nil, rowError(r.path, n, "slot_id vacío")
		}
		maxWeight, err := parseDecimal(cell(rec, maxCol))
		if err != nil {
			return nil, rowError(r.path, n, "max_weight_kg inválido: "+err.Error())
		}
		list = append(list, &entity.Location{
			ID:          id,
			CompanyID:   companyID,
			WarehouseID: warehouseID,
			AisleID:     optionalCell(rec, aisleCol),
			TempZone:    optionalCell(rec, zoneCol),
			MaxWeight:   maxWeight,
		})
	}
	return list, nil
}

// OrderHistoryRepo lee order_history: una fila por línea de pedido con columna sku_id.
type OrderHistoryRepo struct {
	path string
	enc  Encoding
}

// NewOrderHistoryRepository construye el adaptador sobre el archivo indicado.
func NewOrderHistoryRepository(path string, enc Encoding) *OrderHistoryRepo {
	return &OrderHistoryRepo{path: path, enc: enc}
}

// CountOrdersBySKU cuenta filas por sku_id; las filas sin SKU se ignoran.
func (r *OrderHistoryRepo) CountOrdersBySKU(ctx context.Context, _, _ string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := readTable(r.path, r.enc)
	if err != nil {
		return nil, err
	}
	idCol, err := t.column("sku_id")
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, rec := range t.rows {
		id := cell(rec, idCol)
		if unset(id) {
			continue
		}
		counts[id]++
	}
	return counts, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if unset(s) {
		return decimal.Zero, fmt.Errorf("valor vacío")
	}
	return decimal.NewFromString(s)
}

// rowError n es el índice de fila de datos; la fila 1 del archivo es la cabecera.
func rowError(path string, n int, msg string) error {
	return fmt.Errorf("%s fila %d: %s: %w", path, n+2, msg, domain.ErrInvalidInput)
}
