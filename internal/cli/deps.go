package cli

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/appointy-booking/internal/config"
	"github.com/m04kA/appointy-booking/pkg/dbmetrics"
	"github.com/m04kA/appointy-booking/pkg/kvstore"
)

// openDB соединение с postgres без метрик
func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, *dbmetrics.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database %s:%d/%s: %w", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, err)
	}
	return db, dbmetrics.Wrap(db, nil), nil
}

// openStore хранилище документов; close закрывает клиента redis
func openStore(ctx context.Context, cfg *config.Config) (kvstore.Store, func() error, error) {
	if cfg.Redis.Driver == "memory" {
		return kvstore.NewMemoryStore(), func() error { return nil }, nil
	}

	client, err := kvstore.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	return kvstore.NewRedisStore(client, cfg.Redis.KeyPrefix), client.Close, nil
}
