// Command slotplan corre el motor de slotting sobre los CSV limpios y escribe
// final_slotting_plan.csv (sku_id,Bin_ID) y, opcionalmente, el reporte PDF.
//
// Toda la configuración viene de variables de entorno o .env (ver pkg/config):
//
//	SLOTTING_CONGESTION_AISLE_PREFIX=B SLOTTING_REPORT_PDF=plan.pdf slotplan
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/slotting-api/internal/application/slotting"
	"github.com/jhoicas/slotting-api/internal/infrastructure/csvstore"
	infrapdf "github.com/jhoicas/slotting-api/internal/infrastructure/pdf"
	"github.com/jhoicas/slotting-api/pkg/config"
	"github.com/jhoicas/slotting-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg.Slotting, log); err != nil {
		log.Error().Err(err).Msg("slotplan falló")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.SlottingConfig, log *logger.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	enc, err := csvstore.ParseEncoding(cfg.CSVEncoding)
	if err != nil {
		return err
	}

	uc := slotting.NewPlanUseCase(slotting.Deps{
		Items:     csvstore.NewItemRepository(cfg.ItemsCSV, enc),
		Locations: csvstore.NewLocationRepository(cfg.LocationsCSV, enc),
		Orders:    csvstore.NewOrderHistoryRepository(cfg.OrdersCSV, enc),
	}, slotting.Defaults{
		CongestionAislePrefix: cfg.CongestionAislePrefix,
		VelocityTopN:          cfg.VelocityTopN,
		TopMoves:              cfg.TopMoves,
	}, log)

	plan, err := uc.Generate(ctx, slotting.GenerateInput{})
	if err != nil {
		return err
	}

	if err := csvstore.NewPlanWriter().WritePlanFile(cfg.PlanCSV, plan.Entries); err != nil {
		return err
	}
	log.Info().Str("path", cfg.PlanCSV).Int("rows", len(plan.Entries)).Msg("plan final guardado")

	for _, m := range plan.TopMoves {
		log.Info().
			Int("sequence", m.Sequence).
			Str("sku_id", m.ItemID).
			Str("from", m.FromLocationID).
			Str("to", m.ToLocationID).
			Int("score", m.Score).
			Bool("relaxed", m.Relaxed).
			Msg("movimiento prioritario")
	}

	if cfg.ReportPDF == "" {
		return nil
	}
	report := slotting.NewPlanReport(uuid.New().String(), "", "", time.Now(), plan)
	pdfBytes, err := infrapdf.NewMarotoPlanReport().GeneratePlanReport(ctx, report)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.ReportPDF, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", cfg.ReportPDF, err)
	}
	log.Info().Str("path", cfg.ReportPDF).Str("plan_id", report.PlanID).Msg("reporte PDF guardado")
	return nil
}
