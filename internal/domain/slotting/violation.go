package slotting

import "github.com/jhoicas/slotting-api/internal/domain/entity"

// ViolationSet conjunto de violaciones de un ítem en su ubicación actual.
// Es un hecho derivado: se recalcula desde la asignación, nunca se muta in situ.
type ViolationSet struct {
	Temperature bool
	Weight      bool
	Congestion  bool
}

// Any indica si hay al menos una violación (candidato a reubicación).
func (v ViolationSet) Any() bool {
	return v.Temperature || v.Weight || v.Congestion
}

// Hard indica si hay una violación de restricción dura (temperatura o peso).
func (v ViolationSet) Hard() bool {
	return v.Temperature || v.Weight
}

// Kinds devuelve los tipos presentes en orden fijo.
func (v ViolationSet) Kinds() []entity.ViolationKind {
	kinds := make([]entity.ViolationKind, 0, 3)
	if v.Temperature {
		kinds = append(kinds, entity.ViolationTemperatureMismatch)
	}
	if v.Weight {
		kinds = append(kinds, entity.ViolationWeightExceeded)
	}
	if v.Congestion {
		kinds = append(kinds, entity.ViolationCongestionRisk)
	}
	return kinds
}

// ViolationCounts conteo de ítems por tipo de violación.
type ViolationCounts struct {
	TemperatureMismatch int `json:"temperature_mismatch"`
	WeightExceeded      int `json:"weight_exceeded"`
	CongestionRisk      int `json:"congestion_risk"`
}

// Hard suma de violaciones duras (temperatura + peso).
func (c ViolationCounts) Hard() int {
	return c.TemperatureMismatch + c.WeightExceeded
}

// CountViolations agrega un mapa ítem → violaciones en conteos por tipo.
func CountViolations(byItem map[string]ViolationSet) ViolationCounts {
	var c ViolationCounts
	for _, v := range byItem {
		if v.Temperature {
			c.TemperatureMismatch++
		}
		if v.Weight {
			c.WeightExceeded++
		}
		if v.Congestion {
			c.CongestionRisk++
		}
	}
	return c
}
