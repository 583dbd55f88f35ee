package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultry/internal/config"
	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/repository/memory"
	"github.com/mamadbah2/poultry/internal/repository/mongodb"
	"github.com/mamadbah2/poultry/internal/repository/sheets"
	"github.com/mamadbah2/poultry/internal/repository/sqlstore"
	"github.com/mamadbah2/poultry/internal/service/husbandry"
)

// openStores builds one store per record kind on the configured backend. The
// returned closer releases the backend connection.
func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (husbandry.Stores, func(), error) {
	noop := func() {}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		logger.Warn("memory store selected, records are lost on restart")
		return husbandry.Stores{
			Poultry:  memory.NewStore[models.PoultryRecord](),
			Broilers: memory.NewStore[models.Broiler](),
			Layers:   memory.NewStore[models.Layer](),
			Eggs:     memory.NewStore[models.Egg](),
		}, noop, nil

	case config.DriverSQLite, config.DriverPostgres:
		var (
			db  *sqlstore.DB
			err error
		)
		if cfg.Store.Driver == config.DriverSQLite {
			db, err = sqlstore.OpenSQLite(ctx, cfg.Store.SQLitePath)
		} else {
			db, err = sqlstore.OpenPostgres(ctx, cfg.Store.PostgresDSN)
		}
		if err != nil {
			return husbandry.Stores{}, noop, err
		}
		closer := func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close database", zap.Error(err))
			}
		}
		return husbandry.Stores{
			Poultry:  sqlstore.NewStore[models.PoultryRecord](db, string(models.KindPoultry)),
			Broilers: sqlstore.NewStore[models.Broiler](db, string(models.KindBroiler)),
			Layers:   sqlstore.NewStore[models.Layer](db, string(models.KindLayer)),
			Eggs:     sqlstore.NewStore[models.Egg](db, string(models.KindEgg)),
		}, closer, nil

	case config.DriverMongoDB:
		client, err := mongodb.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return husbandry.Stores{}, noop, err
		}
		closer := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				logger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}
		return husbandry.Stores{
			Poultry:  mongodb.NewStore[models.PoultryRecord](client, string(models.KindPoultry)),
			Broilers: mongodb.NewStore[models.Broiler](client, string(models.KindBroiler)),
			Layers:   mongodb.NewStore[models.Layer](client, string(models.KindLayer)),
			Eggs:     mongodb.NewStore[models.Egg](client, string(models.KindEgg)),
		}, closer, nil

	case config.DriverSheets:
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named("repo.sheets"))
		if err != nil {
			return husbandry.Stores{}, noop, err
		}
		storeLogger := logger.Named("store.sheets")
		return husbandry.Stores{
			Poultry:  sheets.NewStore[models.PoultryRecord](repo, string(models.KindPoultry), storeLogger),
			Broilers: sheets.NewStore[models.Broiler](repo, string(models.KindBroiler), storeLogger),
			Layers:   sheets.NewStore[models.Layer](repo, string(models.KindLayer), storeLogger),
			Eggs:     sheets.NewStore[models.Egg](repo, string(models.KindEgg), storeLogger),
		}, noop, nil
	}

	return husbandry.Stores{}, noop, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
}
