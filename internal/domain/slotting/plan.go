package slotting

import "github.com/jhoicas/slotting-api/internal/domain/entity"

// Summary conteos que consume la capa de reportes.
type Summary struct {
	TotalItems           int             `json:"total_items"`
	TotalLocations       int             `json:"total_locations"`
	HighVelocityItems    int             `json:"high_velocity_items"`
	RelocationCandidates int             `json:"relocation_candidates"`
	Initial              ViolationCounts `json:"initial_violations"`
	Final                ViolationCounts `json:"final_violations"`
	MovesPlanned         int             `json:"moves_planned"`
	RelaxedMoves         int             `json:"relaxed_moves"`
	UnresolvedFailures   int             `json:"unresolved_failures"`
	DataQualityWarnings  int             `json:"data_quality_warnings"`
	FreeLocations        int             `json:"free_locations"`
}

// Plan salida del motor: mapeo final, log de movimientos y resumen.
type Plan struct {
	CongestionAislePrefix string
	VelocityTopN          int
	TopMovesLimit         int // K solicitado; puede superar len(TopMoves)
	Entries               []entity.PlanEntry // uno por ítem de entrada, en orden de entrada
	Moves                 []entity.Move
	TopMoves              []entity.Move // primeros movimientos = mayor prioridad
	Unresolved            []Unresolved
	Warnings              []Warning
	Summary               Summary
}

// Emit serializa el resultado. Cada ítem de entrada aparece exactamente una vez en Entries:
// con su destino, con su ubicación original si no se movió, o vacío si no tiene ubicación.
func Emit(s Snapshot, res *Result, cfg Config, topMoves int) *Plan {
	entries := make([]entity.PlanEntry, 0, len(s.Items))
	for _, it := range s.Items {
		loc, _ := res.Assignment.LocationOf(it.ID)
		entries = append(entries, entity.PlanEntry{ItemID: it.ID, LocationID: loc})
	}

	if topMoves < 0 {
		topMoves = 0
	}
	limit := topMoves
	if topMoves > len(res.Moves) {
		topMoves = len(res.Moves)
	}

	relaxed := 0
	for _, m := range res.Moves {
		if m.Relaxed {
			relaxed++
		}
	}

	return &Plan{
		CongestionAislePrefix: cfg.CongestionAislePrefix,
		VelocityTopN:          cfg.VelocityTopN,
		TopMovesLimit:         limit,
		Entries:               entries,
		Moves:                 res.Moves,
		TopMoves:              res.Moves[:topMoves],
		Unresolved:            res.Unresolved,
		Warnings:              res.Warnings,
		Summary: Summary{
			TotalItems:           len(s.Items),
			TotalLocations:       len(s.Locations),
			HighVelocityItems:    len(res.Velocity),
			RelocationCandidates: len(res.Candidates),
			Initial:              CountViolations(res.Initial),
			Final:                CountViolations(res.Final),
			MovesPlanned:         len(res.Moves),
			RelaxedMoves:         relaxed,
			UnresolvedFailures:   len(res.Unresolved),
			DataQualityWarnings:  len(res.Warnings),
			FreeLocations:        res.Pool.Len(),
		},
	}
}

// PlanSnapshot ejecuta el motor y emite el plan en un paso.
func (e *Engine) PlanSnapshot(s Snapshot, topMoves int) (*Plan, error) {
	res, err := e.Run(s)
	if err != nil {
		return nil, err
	}
	return Emit(s, res, e.cfg, topMoves), nil
}
