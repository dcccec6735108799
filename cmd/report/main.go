package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/quickcart/commerce-analytics/internal/charts"
	"github.com/quickcart/commerce-analytics/internal/enrich"
	"github.com/quickcart/commerce-analytics/internal/report"
	"github.com/quickcart/commerce-analytics/pkg/config"
	pkgerrors "github.com/quickcart/commerce-analytics/pkg/errors"
	"github.com/quickcart/commerce-analytics/pkg/logger"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "report"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	cfg.Service.Kind = "report"

	logg = logger.New(logger.Options{
		ServiceName: "report",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	runCtx := logg.WithRunID(ctx, uuid.NewString())
	runCtx = logg.WithStage(runCtx, "report")

	result, err := enrich.LoadResult(cfg.Data.Dir)
	requireResource(runCtx, logg, "enriched tables", err)

	logg.Info(logg.WithFields(runCtx, map[string]any{
		"orders":     len(result.Orders),
		"line_items": len(result.LineItems),
	}), "enriched tables loaded")

	rep := report.Build(result.Orders, result.LineItems)

	if err := report.WriteWorkbook(cfg.Report.Path, rep); err != nil {
		failStage(runCtx, logg, "writing workbook failed", err)
	}
	logg.Info(logg.WithArtifact(runCtx, cfg.Report.Path), "workbook written")

	renderer := charts.NewRenderer(cfg.Report.ChartsDir)
	if err := renderer.RenderAll(rep, result.Orders); err != nil {
		failStage(runCtx, logg, "rendering charts failed", err)
	}
	logg.Info(logg.WithArtifact(runCtx, cfg.Report.ChartsDir), "charts rendered")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	failStage(ctx, logg, fmt.Sprintf("resource not working: %s", resource), err)
}

// failStage logs the failure with its full cause chain and exits with the
// code assigned to the error's taxonomy entry.
func failStage(ctx context.Context, logg *logger.Logger, msg string, err error) {
	logg.Error(logg.WithField(ctx, "error_chain", pkgerrors.Dump(err).Chain), msg, err)
	os.Exit(pkgerrors.MetadataFor(pkgerrors.As(err).Code()).ExitCode)
}
