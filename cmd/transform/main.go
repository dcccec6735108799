package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/quickcart/commerce-analytics/internal/enrich"
	"github.com/quickcart/commerce-analytics/pkg/config"
	pkgerrors "github.com/quickcart/commerce-analytics/pkg/errors"
	"github.com/quickcart/commerce-analytics/pkg/logger"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "transform"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	cfg.Service.Kind = "transform"

	logg = logger.New(logger.Options{
		ServiceName: "transform",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	runCtx := logg.WithRunID(ctx, uuid.NewString())
	runCtx = logg.WithStage(runCtx, "transform")

	tables, err := enrich.LoadTables(cfg.Data.Dir)
	requireResource(runCtx, logg, "base tables", err)

	logg.Info(logg.WithFields(runCtx, map[string]any{
		"products":  len(tables.Products),
		"customers": len(tables.Customers),
		"orders":    len(tables.Orders),
	}), "tables loaded")

	printer := enrich.NewPrinter(os.Stdout)
	printer.PrintQuality(enrich.Quality(tables))

	result, err := enrich.NewEnricher(cfg.Generate.Seed).Enrich(tables)
	if err != nil {
		failStage(runCtx, logg, "enrichment failed", err)
	}

	printer.PrintAnalyses(result)

	if err := result.Write(cfg.Data.Dir); err != nil {
		failStage(runCtx, logg, "writing enriched tables failed", err)
	}
	logg.Info(logg.WithFields(logg.WithArtifact(runCtx, cfg.Data.Dir), map[string]any{
		"orders":     len(result.Orders),
		"line_items": len(result.LineItems),
	}), "enriched tables written")
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
