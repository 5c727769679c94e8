package ledger

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/logger"
	"github.com/tekstil/ledger/internal/infrastructure/telemetry"
)

// instrumentation is embedded by the ledger services for logging, spans and metrics
type instrumentation struct {
	metrics *telemetry.LedgerMetrics
}

// SetLedgerMetrics sets the metrics recorder (optional)
func (i *instrumentation) SetLedgerMetrics(m *telemetry.LedgerMetrics) {
	i.metrics = m
}

// fail records err on span. Domain errors are logged as rejections and
// counted by code; anything else is an internal failure.
func (i *instrumentation) fail(ctx context.Context, span trace.Span, err error) error {
	telemetry.RecordError(span, err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		i.metrics.RecordRejection(ctx, domainErr.Code)
		logger.L(ctx).Warn("Ledger request rejected",
			logger.Code(domainErr.Code),
			zap.String("reason", domainErr.Message),
		)
		return err
	}
	logger.L(ctx).Error("Ledger operation failed", zap.Error(err))
	return err
}

// posted logs and counts a successful posting
func (i *instrumentation) posted(ctx context.Context, span trace.Span, trx *ledger.TradeTransaction, op ledger.Operation) {
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTransactionID, trx.ID.String(),
		telemetry.SpanAttrAmount, trx.Total.String(),
	)
	i.metrics.RecordPosting(ctx, trx.Direction.String(), string(op), trx.Total)
	logger.L(ctx).Info("Transaction posted",
		logger.TransactionID(trx.ID),
		logger.Direction(trx.Direction.String()),
		zap.String("operation", string(op)),
		logger.Amount("total", trx.Total),
	)
}
