package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"schemagen/internal/api"
	"schemagen/internal/compiler"
	"schemagen/internal/config"
	"schemagen/internal/dsl"
	"schemagen/internal/logging"
	"schemagen/internal/pg"
	"schemagen/internal/reference"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("config.yaml", os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// 1. Загружаем DSL-сущности
	entities, err := dsl.LoadAllEntities(cfg.DSLDir)
	if err != nil {
		return fmt.Errorf("load DSL: %w", err)
	}
	logger.Info("entities loaded", zap.Int("count", len(entities)), zap.String("dir", cfg.DSLDir))

	// 2. Загружаем справочники вариантов
	optionSets, err := reference.LoadOptionSetCatalog(cfg.OptionSetsDir)
	if err != nil {
		return fmt.Errorf("load option sets: %w", err)
	}
	logger.Info("option sets loaded", zap.Int("count", len(optionSets)), zap.String("dir", cfg.OptionSetsDir))

	// 3. Компилируем схему
	opts := compiler.DefaultOptions()
	opts.IncludeLegacySystemModel = cfg.LegacySystemModel
	storage, err := api.NewStorage(entities, optionSets, opts, logger)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	for _, issue := range api.SchemaLint(entities, optionSets, opts.IncludeLegacySystemModel) {
		logger.Warn("schema lint",
			zap.String("entity", issue.Entity),
			zap.String("field", issue.Field),
			zap.String("code", issue.Code),
			zap.String("message", issue.Message))
	}

	// 4. База — опционально
	if cfg.DBURL != "" {
		db, err := pg.Open(ctx, cfg.DBURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		storage.DB = db

		if cfg.AutoApply {
			rev := storage.Current()
			if rev.DDLError != "" {
				return fmt.Errorf("auto-apply: %s", rev.DDLError)
			}
			if _, err := pg.ApplyDDL(ctx, db, rev.DDL, logger); err != nil {
				return fmt.Errorf("auto-apply: %w", err)
			}
		}
	}

	// 5. REST API
	return api.RunServer(":"+cfg.Port, storage, api.RouterConfig{
		DSLDir:        cfg.DSLDir,
		OptionSetsDir: cfg.OptionSetsDir,
	})
}
