package entity

// ViolationKind tipo de violación de una restricción de ubicación.
type ViolationKind string

// Tipos de violación detectados por el clasificador.
const (
	ViolationTemperatureMismatch ViolationKind = "TEMPERATURE_MISMATCH"
	ViolationWeightExceeded      ViolationKind = "WEIGHT_EXCEEDED"
	ViolationCongestionRisk      ViolationKind = "CONGESTION_RISK"
)
