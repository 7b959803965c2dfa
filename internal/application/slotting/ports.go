package slotting

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/slotting-api/internal/domain/entity"
	"github.com/jhoicas/slotting-api/internal/domain/repository"
	"github.com/jhoicas/slotting-api/internal/domain/slotting"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio de planes
// atado a esa tx. Cabecera, mapeo final y movimientos se persisten de forma atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(plans repository.PlanRepository) error) error
}

// ReportGenerator genera el reporte PDF para el operador de piso.
type ReportGenerator interface {
	GeneratePlanReport(ctx context.Context, report *PlanReport) ([]byte, error)
}

// PlanExporter serializa el mapeo final SKU → slot (dos columnas: sku_id, Bin_ID).
type PlanExporter interface {
	WritePlan(w io.Writer, entries []entity.PlanEntry) error
}

// PlanReport datos que el generador de reportes necesita (sin acoplarse a la persistencia).
type PlanReport struct {
	PlanID                string
	WarehouseID           string
	WarehouseName         string
	CongestionAislePrefix string
	VelocityTopN          int
	GeneratedAt           time.Time
	Summary               slotting.Summary
	TopMoves              []entity.Move
	Warnings              []slotting.Warning // solo en corridas en memoria; no se persisten
}
