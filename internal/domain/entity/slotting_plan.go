package entity

import "time"

// SlottingPlan cabecera persistida de un plan de slotting con su resumen.
type SlottingPlan struct {
	ID                    string
	CompanyID             string
	WarehouseID           string
	CongestionAislePrefix string
	VelocityTopN          int
	TopMoves              int // movimientos reportados al operador en la corrida
	TotalItems            int
	TotalLocations        int
	HighVelocityItems     int
	RelocationCandidates  int
	TemperatureMismatches int // violaciones en la asignación inicial
	WeightExceeded        int
	CongestionRisks       int
	ResidualTemperature   int // violaciones que quedan tras aplicar el plan
	ResidualWeight        int
	ResidualCongestion    int
	MovesPlanned          int
	RelaxedMoves          int
	UnresolvedFailures    int
	DataQualityWarnings   int
	CreatedBy             string
	CreatedAt             time.Time
}

// PlanEntry fila del plan final: SKU → ubicación (vacío = sin ubicación).
type PlanEntry struct {
	ItemID     string
	LocationID string
}
