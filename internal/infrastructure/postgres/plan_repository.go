package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/slotting-api/internal/domain"
	"github.com/jhoicas/slotting-api/internal/domain/entity"
	"github.com/jhoicas/slotting-api/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo persistencia de planes de slotting (usable con pool o tx).
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

// Create persiste la cabecera del plan con su resumen.
func (r *PlanRepo) Create(ctx context.Context, p *entity.SlottingPlan) error {
	query := `
		INSERT INTO slotting_plans (
			id, company_id, warehouse_id, congestion_aisle_prefix, velocity_top_n, top_moves,
			total_items, total_locations, high_velocity_items, relocation_candidates,
			temperature_mismatches, weight_exceeded, congestion_risks,
			residual_temperature, residual_weight, residual_congestion,
			moves_planned, relaxed_moves, unresolved_failures, data_quality_warnings,
			created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.WarehouseID, p.CongestionAislePrefix, p.VelocityTopN, p.TopMoves,
		p.TotalItems, p.TotalLocations, p.HighVelocityItems, p.RelocationCandidates,
		p.TemperatureMismatches, p.WeightExceeded, p.CongestionRisks,
		p.ResidualTemperature, p.ResidualWeight, p.ResidualCongestion,
		p.MovesPlanned, p.RelaxedMoves, p.UnresolvedFailures, p.DataQualityWarnings,
		nullIfEmpty(p.CreatedBy), p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert slotting_plan: %w", err)
	}
	return nil
}

// CreateEntries inserta el mapeo final con COPY (un plan cubre todo el maestro de SKUs).
func (r *PlanRepo) CreateEntries(ctx context.Context, planID string, entries []entity.PlanEntry) error {
	rows := make([][]any, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []any{planID, i + 1, e.ItemID, nullIfEmpty(e.LocationID)})
	}
	_, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"slotting_plan_entries"},
		[]string{"plan_id", "position", "sku_id", "bin_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy slotting_plan_entries: %w", err)
	}
	return nil
}

// CreateMoves inserta el log de movimientos con COPY.
func (r *PlanRepo) CreateMoves(ctx context.Context, planID string, moves []entity.Move) error {
	rows := make([][]any, 0, len(moves))
	for _, m := range moves {
		kinds := make([]string, 0, len(m.Kinds))
		for _, k := range m.Kinds {
			kinds = append(kinds, string(k))
		}
		rows = append(rows, []any{
			planID, m.Sequence, m.ItemID, nullIfEmpty(m.FromLocationID), m.ToLocationID,
			m.Score, kinds, m.Relaxed,
		})
	}
	_, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"slotting_moves"},
		[]string{"plan_id", "sequence", "sku_id", "from_slot", "to_slot", "score", "violations", "relaxed"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy slotting_moves: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un plan; (nil, nil) si no existe.
func (r *PlanRepo) GetByID(ctx context.Context, id string) (*entity.SlottingPlan, error) {
	query := `
		SELECT id, company_id, warehouse_id, congestion_aisle_prefix, velocity_top_n, top_moves,
			total_items, total_locations, high_velocity_items, relocation_candidates,
			temperature_mismatches, weight_exceeded, congestion_risks,
			residual_temperature, residual_weight, residual_congestion,
			moves_planned, relaxed_moves, unresolved_failures, data_quality_warnings,
			created_by, created_at
		FROM slotting_plans WHERE id = $1`
	var (
		p         entity.SlottingPlan
		createdBy *string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CompanyID, &p.WarehouseID, &p.CongestionAislePrefix, &p.VelocityTopN, &p.TopMoves,
		&p.TotalItems, &p.TotalLocations, &p.HighVelocityItems, &p.RelocationCandidates,
		&p.TemperatureMismatches, &p.WeightExceeded, &p.CongestionRisks,
		&p.ResidualTemperature, &p.ResidualWeight, &p.ResidualCongestion,
		&p.MovesPlanned, &p.RelaxedMoves, &p.UnresolvedFailures, &p.DataQualityWarnings,
		&createdBy, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slotting_plan: %w", err)
	}
	p.CreatedBy = valueOrEmpty(createdBy)
	return &p, nil
}

// ListEntries devuelve el mapeo final en el orden en que se emitió.
func (r *PlanRepo) ListEntries(ctx context.Context, planID string) ([]entity.PlanEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT sku_id, bin_id FROM slotting_plan_entries
		WHERE plan_id = $1 ORDER BY position`, planID)
	if err != nil {
		return nil, fmt.Errorf("list slotting_plan_entries: %w", err)
	}
	defer rows.Close()

	var list []entity.PlanEntry
	for rows.Next() {
		var (
			e   entity.PlanEntry
			bin *string
		)
		if err := rows.Scan(&e.ItemID, &bin); err != nil {
			return nil, fmt.Errorf("scan slotting_plan_entries: %w", err)
		}
		e.LocationID = valueOrEmpty(bin)
		list = append(list, e)
	}
	return list, rows.Err()
}

// ListMoves devuelve los movimientos por secuencia; limit <= 0 = todos.
func (r *PlanRepo) ListMoves(ctx context.Context, planID string, limit int) ([]entity.Move, error) {
	query := `
		SELECT sequence, sku_id, from_slot, to_slot, score, violations, relaxed
		FROM slotting_moves WHERE plan_id = $1 ORDER BY sequence`
	args := []any{planID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slotting_moves: %w", err)
	}
	defer rows.Close()

	var list []entity.Move
	for rows.Next() {
		var (
			m     entity.Move
			from  *string
			kinds []string
		)
		if err := rows.Scan(&m.Sequence, &m.ItemID, &from, &m.ToLocationID, &m.Score, &kinds, &m.Relaxed); err != nil {
			return nil, fmt.Errorf("scan slotting_moves: %w", err)
		}
		m.FromLocationID = valueOrEmpty(from)
		for _, k := range kinds {
			m.Kinds = append(m.Kinds, entity.ViolationKind(k))
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
