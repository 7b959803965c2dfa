package dto

import "time"

// GenerateSlottingPlanRequest body de POST /api/slotting/plans.
// Los campos opcionales nulos toman el valor configurado de la bodega o del servicio.
type GenerateSlottingPlanRequest struct {
	WarehouseID           string  `json:"warehouse_id"`
	CongestionAislePrefix *string `json:"congestion_aisle_prefix,omitempty"`
	VelocityTopN          *int    `json:"velocity_top_n,omitempty"`
	TopMoves              *int    `json:"top_moves,omitempty"`
}

// ViolationCountsResponse conteo de ítems por tipo de violación.
type ViolationCountsResponse struct {
	TemperatureMismatch int `json:"temperature_mismatch"`
	WeightExceeded      int `json:"weight_exceeded"`
	CongestionRisk      int `json:"congestion_risk"`
}

// PlanSummaryResponse resumen de una corrida.
type PlanSummaryResponse struct {
	TotalItems           int                     `json:"total_items"`
	TotalLocations       int                     `json:"total_locations"`
	HighVelocityItems    int                     `json:"high_velocity_items"`
	RelocationCandidates int                     `json:"relocation_candidates"`
	InitialViolations    ViolationCountsResponse `json:"initial_violations"`
	FinalViolations      ViolationCountsResponse `json:"final_violations"`
	MovesPlanned         int                     `json:"moves_planned"`
	RelaxedMoves         int                     `json:"relaxed_moves"`
	UnresolvedFailures   int                     `json:"unresolved_failures"`
	DataQualityWarnings  int                     `json:"data_quality_warnings"`
}

// MoveResponse movimiento recomendado al operador.
type MoveResponse struct {
	Sequence int      `json:"sequence"`
	SKUID    string   `json:"sku_id"`
	FromSlot string   `json:"from_slot,omitempty"`
	ToSlot   string   `json:"to_slot"`
	Score    int      `json:"score"`
	Reasons  []string `json:"reasons"`
	Relaxed  bool     `json:"relaxed"`
}

// UnresolvedResponse ítem que quedó sin reubicar.
type UnresolvedResponse struct {
	SKUID   string   `json:"sku_id"`
	Slot    string   `json:"slot,omitempty"`
	Reasons []string `json:"reasons"`
	Detail  string   `json:"detail"`
}

// WarningResponse advertencia de calidad de datos.
type WarningResponse struct {
	Code    string `json:"code"`
	SKUID   string `json:"sku_id"`
	Slot    string `json:"slot,omitempty"`
	Message string `json:"message"`
}

// SlottingPlanResponse respuesta de generación/consulta de un plan.
// Unresolved y Warnings solo se devuelven al generar; no se persisten.
type SlottingPlanResponse struct {
	ID                    string               `json:"id"`
	WarehouseID           string               `json:"warehouse_id"`
	CongestionAislePrefix string               `json:"congestion_aisle_prefix"`
	VelocityTopN          int                  `json:"velocity_top_n"`
	Summary               PlanSummaryResponse  `json:"summary"`
	TopMoves              []MoveResponse       `json:"top_moves"`
	Unresolved            []UnresolvedResponse `json:"unresolved,omitempty"`
	Warnings              []WarningResponse    `json:"warnings,omitempty"`
	CreatedBy             string               `json:"created_by,omitempty"`
	CreatedAt             time.Time            `json:"created_at"`
}
