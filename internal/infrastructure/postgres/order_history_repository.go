package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/slotting-api/internal/domain/repository"
)

var _ repository.OrderHistoryRepository = (*OrderHistoryRepo)(nil)

// OrderHistoryRepo agregados sobre order_history (una fila por línea de pedido).
type OrderHistoryRepo struct {
	q Querier
}

// NewOrderHistoryRepository construye el adaptador.
func NewOrderHistoryRepository(q Querier) *OrderHistoryRepo {
	return &OrderHistoryRepo{q: q}
}

// CountOrdersBySKU cuenta líneas de pedido por sku_id.
func (r *OrderHistoryRepo) CountOrdersBySKU(ctx context.Context, companyID, warehouseID string) (map[string]int, error) {
	query := `
		SELECT sku_id, COUNT(*)
		FROM order_history
		WHERE company_id = $1 AND warehouse_id = $2
		GROUP BY sku_id`
	rows, err := r.q.Query(ctx, query, companyID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("count order_history: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			sku string
			n   int64
		)
		if err := rows.Scan(&sku, &n); err != nil {
			return nil, fmt.Errorf("scan order_history: %w", err)
		}
		counts[sku] = int(n)
	}
	return counts, rows.Err()
}
