package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include bound variables in db.statement (dev only)
	SlowQueryThresh time.Duration // default 200ms
	DBSystem        string        // postgresql or sqlite
}

// DBTracing is a GORM plugin that installs otelgorm and annotates its spans
// with table, rows affected, and a slow-query marker.
type DBTracing struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracing creates the plugin. Register it with persistence.WithPlugins or db.Use.
func NewDBTracing(cfg DBTracingConfig, logger *zap.Logger) *DBTracing {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.DBSystem == "" {
		cfg.DBSystem = "postgresql"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBTracing{config: cfg, logger: logger}
}

// Name implements gorm.Plugin
func (p *DBTracing) Name() string {
	return "ledger:db_tracing"
}

// Initialize implements gorm.Plugin
func (p *DBTracing) Initialize(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := p.registerCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)
	return nil
}

type callbackRegistrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

type statementHook struct {
	op     string
	before func(string) callbackRegistrar
	after  func(string) callbackRegistrar
}

func (p *DBTracing) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	// after hooks run before otelgorm ends the span
	hooks := []statementHook{
		{"create", func(n string) callbackRegistrar { return cb.Create().Before(n) }, func(n string) callbackRegistrar { return cb.Create().After(n).Before("otel:after:create") }},
		{"query", func(n string) callbackRegistrar { return cb.Query().Before(n) }, func(n string) callbackRegistrar { return cb.Query().After(n).Before("otel:after:query") }},
		{"update", func(n string) callbackRegistrar { return cb.Update().Before(n) }, func(n string) callbackRegistrar { return cb.Update().After(n).Before("otel:after:update") }},
		{"delete", func(n string) callbackRegistrar { return cb.Delete().Before(n) }, func(n string) callbackRegistrar { return cb.Delete().After(n).Before("otel:after:delete") }},
		{"row", func(n string) callbackRegistrar { return cb.Row().Before(n) }, func(n string) callbackRegistrar { return cb.Row().After(n).Before("otel:after:row") }},
		{"raw", func(n string) callbackRegistrar { return cb.Raw().Before(n) }, func(n string) callbackRegistrar { return cb.Raw().After(n).Before("otel:after:raw") }},
	}

	for _, h := range hooks {
		if err := h.before("gorm:"+h.op).Register("ledger_timing:before_"+h.op, markQueryStart); err != nil {
			return err
		}
		if err := h.after("gorm:"+h.op).Register("ledger_timing:after_"+h.op, p.annotateSpan); err != nil {
			return err
		}
	}
	return nil
}

type queryStartKey struct{}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

// annotateSpan runs after every statement
func (p *DBTracing) annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}
