// Package pdf genera el reporte operativo de un plan de slotting para el equipo de piso.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Bodega + pasillo de congestión │ Plan + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: SKUs / Slots / Alta velocidad / Candidatos         │
//	│  VIOLACIONES: Temp | Peso | Congestión (inicial -> final)     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | SKU | Desde | Hacia | Score | Motivos            │
//	│  ADVERTENCIAS: SKU | Slot original | Detalle (si hay)        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID del plan + leyenda                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appslotting "github.com/jhoicas/slotting-api/internal/application/slotting"
	"github.com/jhoicas/slotting-api/internal/domain/entity"
	"github.com/jhoicas/slotting-api/internal/domain/slotting"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ appslotting.ReportGenerator = (*MarotoPlanReport)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPlanReport implementa slotting.ReportGenerator usando Maroto v2.
type MarotoPlanReport struct{}

// NewMarotoPlanReport construye el generador.
func NewMarotoPlanReport() *MarotoPlanReport { return &MarotoPlanReport{} }

// GeneratePlanReport genera el PDF y devuelve sus bytes.
func (g *MarotoPlanReport) GeneratePlanReport(_ context.Context, r *appslotting.PlanReport) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Plan de slotting", true).
		WithAuthor(nonEmpty(r.WarehouseName, r.WarehouseID), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(r.Summary, r.VelocityTopN))
	m.AddRows(violationsRow(r.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(movesTitleRow(len(r.TopMoves), r.Summary.MovesPlanned))
	m.AddRows(tableHeaderRow())
	for _, mr := range moveRows(r.TopMoves) {
		m.AddRows(mr)
	}
	for _, wr := range warningRows(r.Warnings) {
		m.AddRows(wr)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: bodega y pasillo de congestión (izq), plan y fecha (der).
func headerRow(r *appslotting.PlanReport) core.Row {
	fecha := "-"
	if !r.GeneratedAt.IsZero() {
		fecha = r.GeneratedAt.Format("02/01/2006 15:04")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(r.WarehouseName, nonEmpty(r.WarehouseID, "Bodega")), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Pasillo de congestión: "+nonEmpty(r.CongestionAislePrefix, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PLAN DE REUBICACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(r.PlanID, "-"), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRow: volumen del snapshot y resultado de la corrida.
func summaryRow(s slotting.Summary, topN int) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		cell("SKUs / Slots", formatInt(s.TotalItems)+" / "+formatInt(s.TotalLocations)),
		cell(fmt.Sprintf("Alta velocidad (top %d)", topN), formatInt(s.HighVelocityItems)),
		cell("Movimientos planeados", formatInt(s.MovesPlanned)),
		cell("Sin resolver", formatInt(s.UnresolvedFailures)),
	)
}

// violationsRow: violaciones antes y después de aplicar el plan.
func violationsRow(s slotting.Summary) core.Row {
	cell := func(label string, before, after int) core.Col {
		color := colorPrimary
		if after > 0 {
			color = colorAlert
		}
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(formatInt(before)+" -> "+formatInt(after), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 5, Align: align.Center, Color: color,
			}),
		)
	}
	return row.New(14).Add(
		cell("Temperatura", s.Initial.TemperatureMismatch, s.Final.TemperatureMismatch),
		cell("Peso", s.Initial.WeightExceeded, s.Final.WeightExceeded),
		cell("Congestión", s.Initial.CongestionRisk, s.Final.CongestionRisk),
	)
}

func movesTitleRow(shown, total int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("MOVIMIENTOS PRIORITARIOS (%d de %d)", shown, total), props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("SKU", 2, align.Left),
		h("Desde", 2, align.Left),
		h("Hacia", 2, align.Left),
		h("Score", 1, align.Right),
		h("Motivos", 4, align.Left),
	)
}

// moveRows: una fila por movimiento, en orden de prioridad.
func moveRows(moves []entity.Move) []core.Row {
	if len(moves) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("No hay movimientos planeados.", props.Text{Size: 8, Color: colorGray, Top: 2, Align: align.Center}),
		))}
	}
	result := make([]core.Row, 0, len(moves))
	for _, mv := range moves {
		motivos := reasons(mv.Kinds)
		if mv.Relaxed {
			motivos += " (destino en pasillo de congestión)"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(mv.Sequence), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(mv.ItemID, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(mv.FromLocationID, "sin ubicación"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(mv.ToLocationID, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(formatInt(mv.Score), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(4).Add(text.New(motivos, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return result
}

// warningRows: advertencias de calidad de datos con el slot que traía el maestro.
// Sin advertencias no se agrega la sección.
func warningRows(ws []slotting.Warning) []core.Row {
	if len(ws) == 0 {
		return nil
	}
	rows := make([]core.Row, 0, len(ws)+1)
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("ADVERTENCIAS DE DATOS (%d)", len(ws)), props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorAlert, Top: 3,
		}),
	)))
	for _, w := range ws {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(w.ItemID, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(w.LocationID, "-"), props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(8).Add(text.New(w.Message, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return rows
}

// footerRow: QR con el ID del plan para los terminales de piso.
func footerRow(r *appslotting.PlanReport) core.Row {
	leyenda := text.New(
		"Ejecute los movimientos en el orden indicado. Cada movimiento libera el slot de origen "+
			"para los siguientes.",
		props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray},
	)
	if r.PlanID == "" {
		return row.New(12).Add(col.New(12).Add(leyenda))
	}
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(r.PlanID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(leyenda),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

var reasonLabels = map[entity.ViolationKind]string{
	entity.ViolationTemperatureMismatch: "Temperatura",
	entity.ViolationWeightExceeded:      "Peso",
	entity.ViolationCongestionRisk:      "Congestión",
}

func reasons(kinds []entity.ViolationKind) string {
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		if l, ok := reasonLabels[k]; ok {
			parts = append(parts, l)
			continue
		}
		parts = append(parts, string(k))
	}
	return strings.Join(parts, ", ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatInt inserta puntos de miles. Ej: 25000 → "25.000".
func formatInt(v int) string {
	s := fmt.Sprint(v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
