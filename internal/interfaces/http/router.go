package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/slotting-api/internal/application/dto"
	"github.com/jhoicas/slotting-api/pkg/jwt"
	"github.com/jhoicas/slotting-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PlanUC      planService
	ServiceName string
	Verifier    *jwt.Verifier
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.ServiceName})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Verifier))

	// Planes de slotting
	plans := protected.Group("/slotting/plans")
	h := NewSlottingHandler(deps.PlanUC, deps.Log)
	plans.Post("/", RequireRole(jwt.RoleAdmin, jwt.RolePlanner), h.Generate)

	readers := RequireRole(jwt.RoleAdmin, jwt.RolePlanner, jwt.RoleOperator)
	plans.Get("/:id", readers, h.GetByID)
	plans.Get("/:id/export", readers, h.Export)
	plans.Get("/:id/report.pdf", readers, h.ReportPDF)
}
