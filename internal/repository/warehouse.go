package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"fleet-analytics-service/internal/metrics"
)

var tracer = otel.Tracer("fleet-analytics-service/repository")

// warehouse runs named queries with a per-query timeout, a span and a
// duration metric around each call.
type warehouse struct {
	db      *gorm.DB
	timeout time.Duration
}

func newWarehouse(db *gorm.DB, timeout time.Duration) warehouse {
	return warehouse{db: db, timeout: timeout}
}

func (w warehouse) run(ctx context.Context, name string, fn func(tx *gorm.DB) error) error {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	ctx, span := tracer.Start(ctx, "warehouse."+name, trace.WithAttributes(
		attribute.String("db.system", "snowflake"),
		attribute.String("db.operation", name),
	))
	defer span.End()

	started := time.Now()
	err := fn(w.db.WithContext(ctx))
	metrics.ObserveQuery(name, started, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// transaction runs fn inside a single warehouse transaction under one span.
func (w warehouse) transaction(ctx context.Context, name string, fn func(tx *gorm.DB) error) error {
	return w.run(ctx, name, func(tx *gorm.DB) error {
		return tx.Transaction(fn)
	})
}

func (w warehouse) relationExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := w.run(ctx, "relation_exists", func(tx *gorm.DB) error {
		return tx.Raw(`SELECT COUNT(*)
			FROM information_schema.tables
			WHERE table_schema = CURRENT_SCHEMA() AND table_name = UPPER(?)`, name).
			Scan(&count).Error
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// raw binds args by name only when the statement references a named
// placeholder. Without one gorm binds the map itself as a positional value.
func raw(tx *gorm.DB, sql string, args map[string]interface{}) *gorm.DB {
	if !strings.Contains(sql, "@") {
		return tx.Raw(sql)
	}
	return tx.Raw(sql, args)
}

// joinIDs renders ids for SPLIT_TO_TABLE.
func joinIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}

// endOfDay turns an inclusive day-aligned upper bound into an exclusive one.
func endOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}
