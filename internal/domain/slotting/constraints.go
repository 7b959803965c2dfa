// Package slotting implementa el motor de reasignación de slots: clasifica violaciones
// de la asignación actual ítem→ubicación, prioriza los ítems a mover y busca, de forma
// voraz y determinista, destinos libres que respeten las restricciones físicas.
//
// El paquete es puro: no hace I/O ni logging. Los adaptadores (CSV, PostgreSQL, HTTP)
// construyen un Snapshot, ejecutan Engine.Run y emiten el plan con Emit.
package slotting

import (
	"strings"

	"github.com/jhoicas/slotting-api/internal/domain"
	"github.com/jhoicas/slotting-api/internal/domain/entity"
)

// ConstraintModel agrupa los predicados de compatibilidad ítem/ubicación.
// Sin estado mutable: seguro de compartir.
type ConstraintModel struct {
	congestionPrefix string
}

// NewConstraintModel construye el modelo con el prefijo del pasillo de congestión.
// El prefijo es un dato externo obligatorio (no se deduce de convenciones de nombres).
func NewConstraintModel(congestionAislePrefix string) (*ConstraintModel, error) {
	prefix := strings.TrimSpace(congestionAislePrefix)
	if prefix == "" {
		return nil, domain.ErrInvalidInput
	}
	return &ConstraintModel{congestionPrefix: prefix}, nil
}

// CongestionPrefix devuelve el prefijo configurado.
func (m *ConstraintModel) CongestionPrefix() string { return m.congestionPrefix }

// TemperatureCompatible: zona desconocida es compatible (no se bloquea por metadatos faltantes).
func (m *ConstraintModel) TemperatureCompatible(item *entity.Item, loc *entity.Location) bool {
	zone := strings.TrimSpace(loc.TempZone)
	if zone == "" {
		return true
	}
	return strings.EqualFold(zone, strings.TrimSpace(item.TempReq))
}

// WeightCompatible: peso del ítem <= capacidad máxima del slot.
func (m *ConstraintModel) WeightCompatible(item *entity.Item, loc *entity.Location) bool {
	return item.Weight.LessThanOrEqual(loc.MaxWeight)
}

// IsCongestionZone indica si el slot está en el pasillo de alta congestión.
func (m *ConstraintModel) IsCongestionZone(loc *entity.Location) bool {
	return strings.HasPrefix(strings.TrimSpace(loc.AisleID), m.congestionPrefix)
}

// MinimallyCompatible: temperatura y peso, ignorando la preferencia de congestión.
func (m *ConstraintModel) MinimallyCompatible(item *entity.Item, loc *entity.Location) bool {
	return m.TemperatureCompatible(item, loc) && m.WeightCompatible(item, loc)
}

// FullyCompatible: MinimallyCompatible y, si avoidCongestion, fuera del pasillo de congestión.
func (m *ConstraintModel) FullyCompatible(item *entity.Item, loc *entity.Location, avoidCongestion bool) bool {
	if !m.MinimallyCompatible(item, loc) {
		return false
	}
	return !avoidCongestion || !m.IsCongestionZone(loc)
}
