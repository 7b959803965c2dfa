package slotting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/slotting-api/internal/application/dto"
	"github.com/jhoicas/slotting-api/internal/domain"
	"github.com/jhoicas/slotting-api/internal/domain/entity"
	"github.com/jhoicas/slotting-api/internal/domain/repository"
	"github.com/jhoicas/slotting-api/internal/domain/slotting"
	"github.com/jhoicas/slotting-api/pkg/logger"
)

// ErrPersistenceDisabled el caso de uso se construyó sin TxRunner/PlanRepository (runner batch).
var ErrPersistenceDisabled = errors.New("persistencia de planes no configurada")

// Deps puertos del caso de uso. Warehouses, Plans, TxRunner, Report y Exporter son opcionales:
// el runner batch sobre CSV solo necesita los tres repositorios de lectura.
type Deps struct {
	Items      repository.ItemRepository
	Locations  repository.LocationRepository
	Orders     repository.OrderHistoryRepository
	Warehouses repository.WarehouseRepository
	Plans      repository.PlanRepository
	TxRunner   TxRunner
	Report     ReportGenerator
	Exporter   PlanExporter
}

// Defaults valores de corrida cuando la petición no los especifica.
type Defaults struct {
	CongestionAislePrefix string
	VelocityTopN          int
	TopMoves              int
}

// PlanUseCase genera, persiste y consulta planes de slotting.
type PlanUseCase struct {
	deps     Deps
	defaults Defaults
	log      *logger.Logger
	now      func() time.Time
}

// NewPlanUseCase construye el caso de uso. log nil = logger.Nop().
func NewPlanUseCase(deps Deps, defaults Defaults, log *logger.Logger) *PlanUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PlanUseCase{deps: deps, defaults: defaults, log: log, now: time.Now}
}

// GenerateInput entrada de una corrida. Los punteros nil toman el valor por defecto.
type GenerateInput struct {
	CompanyID             string
	WarehouseID           string
	UserID                string
	CongestionAislePrefix *string
	VelocityTopN          *int
	TopMoves              *int
}

// runParams parámetros efectivos de una corrida ya resueltos.
type runParams struct {
	cfg       slotting.Config
	topMoves  int
	warehouse *entity.Warehouse
}

// Generate carga el snapshot de la bodega, ejecuta el motor y devuelve el plan.
//
// Retorna:
//   - domain.ErrNotFound     si la bodega no existe.
//   - domain.ErrForbidden    si la bodega no pertenece a la empresa.
//   - domain.ErrInvalidInput si faltan parámetros o el snapshot es inválido.
func (uc *PlanUseCase) Generate(ctx context.Context, in GenerateInput) (*slotting.Plan, error) {
	params, err := uc.resolve(ctx, in)
	if err != nil {
		return nil, err
	}
	engine, err := slotting.NewEngine(params.cfg)
	if err != nil {
		return nil, err
	}

	snap, err := uc.loadSnapshot(ctx, in.CompanyID, in.WarehouseID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	plan, err := engine.PlanSnapshot(snap, params.topMoves)
	if err != nil {
		uc.log.Error().Err(err).Str("warehouse_id", in.WarehouseID).Msg("corrida de slotting abortada")
		return nil, fmt.Errorf("slotting: %w", err)
	}
	uc.log.Debug().Dur("elapsed", time.Since(start)).Msg("pasada del motor completada")

	uc.logPlan(in.WarehouseID, plan)
	return plan, nil
}

// GenerateAndSave genera el plan y persiste cabecera, mapeo final y movimientos en una transacción.
func (uc *PlanUseCase) GenerateAndSave(ctx context.Context, in GenerateInput) (*dto.SlottingPlanResponse, error) {
	if uc.deps.TxRunner == nil {
		return nil, ErrPersistenceDisabled
	}
	plan, err := uc.Generate(ctx, in)
	if err != nil {
		return nil, err
	}

	header := headerFromPlan(uuid.New().String(), in, plan, uc.now())
	err = uc.deps.TxRunner.Run(ctx, func(plans repository.PlanRepository) error {
		if err := plans.Create(ctx, header); err != nil {
			return fmt.Errorf("guardar plan: %w", err)
		}
		if err := plans.CreateEntries(ctx, header.ID, plan.Entries); err != nil {
			return fmt.Errorf("guardar mapeo final: %w", err)
		}
		if err := plans.CreateMoves(ctx, header.ID, plan.Moves); err != nil {
			return fmt.Errorf("guardar movimientos: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("plan_id", header.ID).Str("warehouse_id", header.WarehouseID).Msg("plan de slotting guardado")

	out := toPlanResponse(header, plan.TopMoves)
	out.Unresolved = toUnresolvedResponse(plan.Unresolved)
	out.Warnings = toWarningResponse(plan.Warnings)
	return out, nil
}

// GetByID devuelve el resumen de un plan guardado con sus movimientos de mayor prioridad.
func (uc *PlanUseCase) GetByID(ctx context.Context, companyID, planID string) (*dto.SlottingPlanResponse, error) {
	header, err := uc.loadPlan(ctx, companyID, planID)
	if err != nil {
		return nil, err
	}
	moves, err := uc.topMoves(ctx, header)
	if err != nil {
		return nil, err
	}
	return toPlanResponse(header, moves), nil
}

// ListEntries devuelve el mapeo final SKU → slot de un plan guardado, en orden de emisión.
func (uc *PlanUseCase) ListEntries(ctx context.Context, companyID, planID string) ([]entity.PlanEntry, error) {
	if _, err := uc.loadPlan(ctx, companyID, planID); err != nil {
		return nil, err
	}
	entries, err := uc.deps.Plans.ListEntries(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("listar mapeo final: %w", err)
	}
	return entries, nil
}

// ExportCSV escribe el mapeo final del plan en w con el formato de dos columnas.
func (uc *PlanUseCase) ExportCSV(ctx context.Context, companyID, planID string, w io.Writer) error {
	if uc.deps.Exporter == nil {
		return errors.New("exportador de planes no configurado")
	}
	entries, err := uc.ListEntries(ctx, companyID, planID)
	if err != nil {
		return err
	}
	return uc.deps.Exporter.WritePlan(w, entries)
}

// ReportPDF genera el reporte PDF de un plan guardado.
//
// Retorna (pdfBytes, filename, nil), domain.ErrNotFound o domain.ErrForbidden.
func (uc *PlanUseCase) ReportPDF(ctx context.Context, companyID, planID string) (pdfBytes []byte, filename string, err error) {
	if uc.deps.Report == nil {
		return nil, "", errors.New("generador de reportes no configurado")
	}
	header, err := uc.loadPlan(ctx, companyID, planID)
	if err != nil {
		return nil, "", err
	}
	moves, err := uc.topMoves(ctx, header)
	if err != nil {
		return nil, "", err
	}

	report := &PlanReport{
		PlanID:                header.ID,
		WarehouseID:           header.WarehouseID,
		CongestionAislePrefix: header.CongestionAislePrefix,
		VelocityTopN:          header.VelocityTopN,
		GeneratedAt:           header.CreatedAt,
		Summary:               summaryFromHeader(header),
		TopMoves:              moves,
	}
	if uc.deps.Warehouses != nil {
		if wh, whErr := uc.deps.Warehouses.GetByID(ctx, header.WarehouseID); whErr == nil && wh != nil {
			report.WarehouseName = wh.Name
		}
	}

	pdfBytes, err = uc.deps.Report.GeneratePlanReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("slotting_%s.pdf", header.ID), nil
}

// NewPlanReport arma los datos del reporte a partir de un plan recién generado (sin persistir).
func NewPlanReport(planID, warehouseID, warehouseName string, generatedAt time.Time, plan *slotting.Plan) *PlanReport {
	return &PlanReport{
		PlanID:                planID,
		WarehouseID:           warehouseID,
		WarehouseName:         warehouseName,
		CongestionAislePrefix: plan.CongestionAislePrefix,
		VelocityTopN:          plan.VelocityTopN,
		GeneratedAt:           generatedAt,
		Summary:               plan.Summary,
		TopMoves:              plan.TopMoves,
		Warnings:              plan.Warnings,
	}
}

// resolve valida la bodega y resuelve prefijo, top-N y top moves:
// petición, luego bodega (solo el prefijo), luego valores por defecto.
func (uc *PlanUseCase) resolve(ctx context.Context, in GenerateInput) (runParams, error) {
	var p runParams
	if uc.deps.Warehouses != nil {
		if in.WarehouseID == "" {
			return p, fmt.Errorf("warehouse_id requerido: %w", domain.ErrInvalidInput)
		}
		wh, err := uc.deps.Warehouses.GetByID(ctx, in.WarehouseID)
		if err != nil {
			return p, fmt.Errorf("obtener bodega: %w", err)
		}
		if wh == nil {
			return p, domain.ErrNotFound
		}
		if wh.CompanyID != in.CompanyID {
			return p, domain.ErrForbidden
		}
		p.warehouse = wh
	}

	prefix := uc.defaults.CongestionAislePrefix
	if p.warehouse != nil && strings.TrimSpace(p.warehouse.CongestionAislePrefix) != "" {
		prefix = p.warehouse.CongestionAislePrefix
	}
	if in.CongestionAislePrefix != nil && strings.TrimSpace(*in.CongestionAislePrefix) != "" {
		prefix = *in.CongestionAislePrefix
	}
	p.cfg.CongestionAislePrefix = strings.TrimSpace(prefix)

	p.cfg.VelocityTopN = uc.defaults.VelocityTopN
	if in.VelocityTopN != nil {
		p.cfg.VelocityTopN = *in.VelocityTopN
	}
	p.topMoves = uc.defaults.TopMoves
	if in.TopMoves != nil {
		p.topMoves = *in.TopMoves
	}
	if p.topMoves < 0 {
		return p, fmt.Errorf("top_moves negativo: %w", domain.ErrInvalidInput)
	}
	return p, nil
}

// loadSnapshot carga ítems, slots y conteo de pedidos en paralelo y une los conteos a los ítems.
// Los ítems devueltos son copias: el repositorio puede reutilizar los suyos.
func (uc *PlanUseCase) loadSnapshot(ctx context.Context, companyID, warehouseID string) (slotting.Snapshot, error) {
	var (
		items  []*entity.Item
		locs   []*entity.Location
		counts map[string]int
	)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = uc.deps.Items.ListByWarehouse(gctx, companyID, warehouseID)
		if err != nil {
			return fmt.Errorf("cargar ítems: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		locs, err = uc.deps.Locations.ListByWarehouse(gctx, companyID, warehouseID)
		if err != nil {
			return fmt.Errorf("cargar slots: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		counts, err = uc.deps.Orders.CountOrdersBySKU(gctx, companyID, warehouseID)
		if err != nil {
			return fmt.Errorf("cargar historial de pedidos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return slotting.Snapshot{}, err
	}

	merged := make([]*entity.Item, 0, len(items))
	known := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		cp := *it
		cp.OrderCount = counts[it.ID]
		merged = append(merged, &cp)
		known[it.ID] = struct{}{}
	}
	orphans := 0
	for sku := range counts {
		if _, ok := known[sku]; !ok {
			orphans++
		}
	}
	if orphans > 0 {
		uc.log.Warn().Int("skus", orphans).Str("warehouse_id", warehouseID).
			Msg("historial de pedidos con SKUs fuera del maestro; se ignoran")
	}

	uc.log.Debug().
		Dur("elapsed", time.Since(start)).
		Int("items", len(merged)).
		Int("locations", len(locs)).
		Int("skus_with_orders", len(counts)).
		Msg("snapshot de slotting cargado")

	return slotting.Snapshot{Items: merged, Locations: locs}, nil
}

func (uc *PlanUseCase) logPlan(warehouseID string, plan *slotting.Plan) {
	for _, w := range plan.Warnings {
		uc.log.Warn().
			Str("code", string(w.Code)).
			Str("sku_id", w.ItemID).
			Str("slot_id", w.LocationID).
			Msg(w.Message)
	}
	for _, u := range plan.Unresolved {
		uc.log.Warn().
			Str("sku_id", u.ItemID).
			Str("slot_id", u.LocationID).
			Strs("violations", kindsToStrings(u.Kinds)).
			Int("score", u.Score).
			Msg("no se encontró slot para el SKU: " + u.Reason)
	}
	s := plan.Summary
	uc.log.Info().
		Str("warehouse_id", warehouseID).
		Str("congestion_aisle", plan.CongestionAislePrefix).
		Int("total_items", s.TotalItems).
		Int("total_locations", s.TotalLocations).
		Int("high_velocity_items", s.HighVelocityItems).
		Int("relocation_candidates", s.RelocationCandidates).
		Int("temp_violations", s.Initial.TemperatureMismatch).
		Int("weight_violations", s.Initial.WeightExceeded).
		Int("congestion_risks", s.Initial.CongestionRisk).
		Int("moves_planned", s.MovesPlanned).
		Int("relaxed_moves", s.RelaxedMoves).
		Int("unresolved", s.UnresolvedFailures).
		Msg("plan de slotting generado")
}

func (uc *PlanUseCase) loadPlan(ctx context.Context, companyID, planID string) (*entity.SlottingPlan, error) {
	if uc.deps.Plans == nil {
		return nil, ErrPersistenceDisabled
	}
	if planID == "" {
		return nil, fmt.Errorf("id de plan requerido: %w", domain.ErrInvalidInput)
	}
	header, err := uc.deps.Plans.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("obtener plan: %w", err)
	}
	if header == nil {
		return nil, domain.ErrNotFound
	}
	if header.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return header, nil
}

// topMoves relee los K movimientos con los que se generó el plan.
func (uc *PlanUseCase) topMoves(ctx context.Context, header *entity.SlottingPlan) ([]entity.Move, error) {
	if header.TopMoves <= 0 {
		return nil, nil
	}
	moves, err := uc.deps.Plans.ListMoves(ctx, header.ID, header.TopMoves)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	return moves, nil
}
