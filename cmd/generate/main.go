package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/quickcart/commerce-analytics/internal/export"
	"github.com/quickcart/commerce-analytics/internal/generate"
	"github.com/quickcart/commerce-analytics/pkg/config"
	pkgerrors "github.com/quickcart/commerce-analytics/pkg/errors"
	"github.com/quickcart/commerce-analytics/pkg/logger"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "generate"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	cfg.Service.Kind = "generate"

	logg = logger.New(logger.Options{
		ServiceName: "generate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	runCtx := logg.WithRunID(ctx, uuid.NewString())
	runCtx = logg.WithStage(runCtx, "generate")

	genCfg := generate.DefaultConfig()
	genCfg.Seed = cfg.Generate.Seed
	genCfg.Orders = cfg.Generate.Orders
	genCfg.Customers = cfg.Generate.Customers
	genCfg.Products = cfg.Generate.Products

	generator, err := generate.New(genCfg)
	requireResource(runCtx, logg, "generator", err)

	logg.Info(runCtx, "generating dataset")
	ds, err := generator.Generate()
	if err != nil {
		failStage(runCtx, logg, "generation failed", err)
	}

	logg.Info(logg.WithFields(runCtx, map[string]any{
		"products":  len(ds.Products),
		"customers": len(ds.Customers),
		"stores":    len(ds.Stores),
		"orders":    len(ds.Orders),
		"payments":  len(ds.Payments),
	}), "dataset generated")

	if err := ds.Write(cfg.Data.Dir); err != nil {
		failStage(runCtx, logg, "writing dataset failed", err)
	}
	logg.Info(logg.WithArtifact(runCtx, cfg.Data.Dir), "dataset written")

	if cfg.Export.Enabled() {
		sink, err := export.Open(cfg.Export.SQLitePath)
		requireResource(runCtx, logg, "sqlite sink", err)
		defer func() {
			if err := sink.Close(); err != nil {
				logg.Error(runCtx, "failed to close sqlite sink", err)
			}
		}()

		counts, err := sink.WriteTables(ds.Products, ds.Customers, ds.Stores, ds.Orders, ds.Payments)
		if err != nil {
			failStage(runCtx, logg, "sqlite export failed", err)
		}
		logg.Info(logg.WithFields(runCtx, map[string]any{
			"path":   cfg.Export.SQLitePath,
			"orders": counts.Orders,
		}), "dataset exported to sqlite")
	}
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
