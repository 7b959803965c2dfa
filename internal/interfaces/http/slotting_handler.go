package http

import (
	"bytes"
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/slotting-api/internal/application/dto"
	"github.com/jhoicas/slotting-api/internal/application/slotting"
	"github.com/jhoicas/slotting-api/pkg/logger"
)

// planService es el contrato que necesita el handler; lo implementa *slotting.PlanUseCase.
type planService interface {
	GenerateAndSave(ctx context.Context, in slotting.GenerateInput) (*dto.SlottingPlanResponse, error)
	GetByID(ctx context.Context, companyID, planID string) (*dto.SlottingPlanResponse, error)
	ExportCSV(ctx context.Context, companyID, planID string, w io.Writer) error
	ReportPDF(ctx context.Context, companyID, planID string) ([]byte, string, error)
}

// SlottingHandler maneja las peticiones HTTP de planes de slotting (protegido).
type SlottingHandler struct {
	uc  planService
	log *logger.Logger
}

// NewSlottingHandler construye el handler. log nil = logger.Nop().
func NewSlottingHandler(uc planService, log *logger.Logger) *SlottingHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SlottingHandler{uc: uc, log: log}
}

// Generate godoc
// @Summary      Generar plan de slotting
// @Description  Corre el motor sobre el snapshot actual de la bodega y guarda el plan.
// @Tags         slotting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateSlottingPlanRequest  true  "Bodega y parámetros opcionales"
// @Success      201   {object}  dto.SlottingPlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/slotting/plans [post]
func (h *SlottingHandler) Generate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.GenerateSlottingPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.WarehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	out, err := h.uc.GenerateAndSave(c.Context(), slotting.GenerateInput{
		CompanyID:             companyID,
		WarehouseID:           in.WarehouseID,
		UserID:                GetUserID(c),
		CongestionAislePrefix: in.CongestionAislePrefix,
		VelocityTopN:          in.VelocityTopN,
		TopMoves:              in.TopMoves,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener plan de slotting
// @Tags         slotting
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del plan"
// @Success      200  {object}  dto.SlottingPlanResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/slotting/plans/{id} [get]
func (h *SlottingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar plan final (CSV sku_id,Bin_ID)
// @Tags         slotting
// @Security     Bearer
// @Produce      text/csv
// @Param        id   path  string  true  "ID del plan"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/slotting/plans/{id}/export [get]
func (h *SlottingHandler) Export(c *fiber.Ctx) error {
	id := c.Params("id")
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.Context(), GetCompanyID(c), id, &buf); err != nil {
		return respondError(c, h.log, err)
	}
	c.Attachment("final_slotting_plan_" + id + ".csv")
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

// ReportPDF godoc
// @Summary      Reporte PDF del plan
// @Tags         slotting
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del plan"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/slotting/plans/{id}/report.pdf [get]
func (h *SlottingHandler) ReportPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.ReportPDF(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}
