package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/slotting-api/internal/domain/entity"
)

// PlanHeader cabecera exacta del plan final.
var PlanHeader = []string{"sku_id", "Bin_ID"}

// PlanWriter serializa el mapeo final a CSV de dos columnas.
type PlanWriter struct{}

// NewPlanWriter construye el escritor.
func NewPlanWriter() *PlanWriter { return &PlanWriter{} }

// WritePlan escribe cabecera y una fila por entrada. Bin_ID vacío = SKU sin ubicación.
func (PlanWriter) WritePlan(w io.Writer, entries []entity.PlanEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(PlanHeader); err != nil {
		return fmt.Errorf("escribir cabecera: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.ItemID, e.LocationID}); err != nil {
			return fmt.Errorf("escribir %s: %w", e.ItemID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePlanFile crea (o reemplaza) path con el plan.
func (pw PlanWriter) WritePlanFile(path string, entries []entity.PlanEntry) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return pw.WritePlan(f, entries)
}
