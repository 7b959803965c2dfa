package repository

import (
	"context"

	"github.com/jhoicas/slotting-api/internal/domain/entity"
)

// ItemRepository lectura del maestro de ítems ya validado (sku_master).
type ItemRepository interface {
	ListByWarehouse(ctx context.Context, companyID, warehouseID string) ([]*entity.Item, error)
}

// LocationRepository lectura de los slots y sus capacidades (warehouse_constraints).
type LocationRepository interface {
	ListByWarehouse(ctx context.Context, companyID, warehouseID string) ([]*entity.Location, error)
}

// OrderHistoryRepository agregados del historial de pedidos.
type OrderHistoryRepository interface {
	// CountOrdersBySKU devuelve pedidos históricos por sku_id.
	CountOrdersBySKU(ctx context.Context, companyID, warehouseID string) (map[string]int, error)
}

// PlanRepository persistencia de planes de slotting (cabecera, mapeo final y movimientos).
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.SlottingPlan) error
	CreateEntries(ctx context.Context, planID string, entries []entity.PlanEntry) error
	CreateMoves(ctx context.Context, planID string, moves []entity.Move) error
	GetByID(ctx context.Context, id string) (*entity.SlottingPlan, error)
	ListEntries(ctx context.Context, planID string) ([]entity.PlanEntry, error)
	ListMoves(ctx context.Context, planID string, limit int) ([]entity.Move, error)
}
