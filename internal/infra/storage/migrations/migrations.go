package migrations

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/m04kA/appointy-booking/pkg/dbmetrics"
)

//go:embed schema.sql
var schema string

// Schema текст схемы (для вывода в CLI)
func Schema() string {
	return schema
}

// Apply создает таблицы, если их еще нет. Идемпотентна.
func Apply(ctx context.Context, db dbmetrics.DBExecutor) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrations: apply schema: %w", err)
	}
	return nil
}
