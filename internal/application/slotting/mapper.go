package slotting

import (
	"time"

	"github.com/jhoicas/slotting-api/internal/application/dto"
	"github.com/jhoicas/slotting-api/internal/domain/entity"
	"github.com/jhoicas/slotting-api/internal/domain/slotting"
)

func headerFromPlan(id string, in GenerateInput, plan *slotting.Plan, now time.Time) *entity.SlottingPlan {
	s := plan.Summary
	return &entity.SlottingPlan{
		ID:                    id,
		CompanyID:             in.CompanyID,
		WarehouseID:           in.WarehouseID,
		CongestionAislePrefix: plan.CongestionAislePrefix,
		VelocityTopN:          plan.VelocityTopN,
		TopMoves:              plan.TopMovesLimit,
		TotalItems:            s.TotalItems,
		TotalLocations:        s.TotalLocations,
		HighVelocityItems:     s.HighVelocityItems,
		RelocationCandidates:  s.RelocationCandidates,
		TemperatureMismatches: s.Initial.TemperatureMismatch,
		WeightExceeded:        s.Initial.WeightExceeded,
		CongestionRisks:       s.Initial.CongestionRisk,
		ResidualTemperature:   s.Final.TemperatureMismatch,
		ResidualWeight:        s.Final.WeightExceeded,
		ResidualCongestion:    s.Final.CongestionRisk,
		MovesPlanned:          s.MovesPlanned,
		RelaxedMoves:          s.RelaxedMoves,
		UnresolvedFailures:    s.UnresolvedFailures,
		DataQualityWarnings:   s.DataQualityWarnings,
		CreatedBy:             in.UserID,
		CreatedAt:             now,
	}
}

// summaryFromHeader reconstruye el resumen de un plan guardado.
// FreeLocations no se persiste.
func summaryFromHeader(h *entity.SlottingPlan) slotting.Summary {
	return slotting.Summary{
		TotalItems:           h.TotalItems,
		TotalLocations:       h.TotalLocations,
		HighVelocityItems:    h.HighVelocityItems,
		RelocationCandidates: h.RelocationCandidates,
		Initial: slotting.ViolationCounts{
			TemperatureMismatch: h.TemperatureMismatches,
			WeightExceeded:      h.WeightExceeded,
			CongestionRisk:      h.CongestionRisks,
		},
		Final: slotting.ViolationCounts{
			TemperatureMismatch: h.ResidualTemperature,
			WeightExceeded:      h.ResidualWeight,
			CongestionRisk:      h.ResidualCongestion,
		},
		MovesPlanned:        h.MovesPlanned,
		RelaxedMoves:        h.RelaxedMoves,
		UnresolvedFailures:  h.UnresolvedFailures,
		DataQualityWarnings: h.DataQualityWarnings,
	}
}

func toPlanResponse(h *entity.SlottingPlan, moves []entity.Move) *dto.SlottingPlanResponse {
	s := summaryFromHeader(h)
	return &dto.SlottingPlanResponse{
		ID:                    h.ID,
		WarehouseID:           h.WarehouseID,
		CongestionAislePrefix: h.CongestionAislePrefix,
		VelocityTopN:          h.VelocityTopN,
		Summary: dto.PlanSummaryResponse{
			TotalItems:           s.TotalItems,
			TotalLocations:       s.TotalLocations,
			HighVelocityItems:    s.HighVelocityItems,
			RelocationCandidates: s.RelocationCandidates,
			InitialViolations:    toCountsResponse(s.Initial),
			FinalViolations:      toCountsResponse(s.Final),
			MovesPlanned:         s.MovesPlanned,
			RelaxedMoves:         s.RelaxedMoves,
			UnresolvedFailures:   s.UnresolvedFailures,
			DataQualityWarnings:  s.DataQualityWarnings,
		},
		TopMoves:  toMoveResponse(moves),
		CreatedBy: h.CreatedBy,
		CreatedAt: h.CreatedAt,
	}
}

func toCountsResponse(c slotting.ViolationCounts) dto.ViolationCountsResponse {
	return dto.ViolationCountsResponse{
		TemperatureMismatch: c.TemperatureMismatch,
		WeightExceeded:      c.WeightExceeded,
		CongestionRisk:      c.CongestionRisk,
	}
}

func toMoveResponse(moves []entity.Move) []dto.MoveResponse {
	out := make([]dto.MoveResponse, 0, len(moves))
	for _, m := range moves {
		out = append(out, dto.MoveResponse{
			Sequence: m.Sequence,
			SKUID:    m.ItemID,
			FromSlot: m.FromLocationID,
			ToSlot:   m.ToLocationID,
			Score:    m.Score,
			Reasons:  kindsToStrings(m.Kinds),
			Relaxed:  m.Relaxed,
		})
	}
	return out
}

func toUnresolvedResponse(list []slotting.Unresolved) []dto.UnresolvedResponse {
	if len(list) == 0 {
		return nil
	}
	out := make([]dto.UnresolvedResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.UnresolvedResponse{
			SKUID:   u.ItemID,
			Slot:    u.LocationID,
			Reasons: kindsToStrings(u.Kinds),
			Detail:  u.Reason,
		})
	}
	return out
}

func toWarningResponse(list []slotting.Warning) []dto.WarningResponse {
	if len(list) == 0 {
		return nil
	}
	out := make([]dto.WarningResponse, 0, len(list))
	for _, w := range list {
		out = append(out, dto.WarningResponse{
			Code:    string(w.Code),
			SKUID:   w.ItemID,
			Slot:    w.LocationID,
			Message: w.Message,
		})
	}
	return out
}

func kindsToStrings(kinds []entity.ViolationKind) []string {
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, string(k))
	}
	return out
}
