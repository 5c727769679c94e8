package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when metrics are built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// CashBalanceReader supplies the current cash balance for the periodic gauge
type CashBalanceReader interface {
	CurrentBalance(ctx context.Context) (decimal.Decimal, error)
}

// LedgerMetrics records posting activity. All methods are safe on a nil receiver.
type LedgerMetrics struct {
	logger      *zap.Logger
	postings    *Counter
	rejections  *Counter
	amount      *Histogram
	cashBalance *FloatGauge

	stopCh      chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once
}

// NewLedgerMetrics creates the ledger instruments on meter
func NewLedgerMetrics(meter metric.Meter, logger *zap.Logger) (*LedgerMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &LedgerMetrics{logger: logger, stopCh: make(chan struct{})}
	var err error
	if m.postings, err = NewCounter(meter, "ledger_postings_total",
		"Stock and cash postings by direction and operation", "{postings}"); err != nil {
		return nil, err
	}
	if m.rejections, err = NewCounter(meter, "ledger_business_rejections_total",
		"Requests rejected by a ledger business rule", "{rejections}"); err != nil {
		return nil, err
	}
	if m.amount, err = NewHistogram(meter, HistogramOpts{
		Name:        "ledger_posting_amount",
		Description: "Recorded total of posted transactions",
		Unit:        "{currency}",
		Boundaries:  AmountBuckets,
	}); err != nil {
		return nil, err
	}
	if m.cashBalance, err = NewFloatGauge(meter, "ledger_cash_balance",
		"Current singleton cash balance", "{currency}"); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordPosting counts a posting and observes its amount
func (m *LedgerMetrics) RecordPosting(ctx context.Context, direction, operation string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.postings.Inc(ctx, AttrDirection.String(direction), AttrOperation.String(operation))
	m.amount.Record(ctx, amount.Abs().InexactFloat64(), AttrDirection.String(direction), AttrOperation.String(operation))
}

// RecordRejection counts a business-rule rejection by error code
func (m *LedgerMetrics) RecordRejection(ctx context.Context, code string) {
	if m == nil {
		return
	}
	m.rejections.Inc(ctx, AttrErrorCode.String(code))
}

// RecordCashBalance records the current balance on the gauge
func (m *LedgerMetrics) RecordCashBalance(ctx context.Context, amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.cashBalance.Record(ctx, amount.InexactFloat64())
}

// StartCashBalanceCollection samples the cash balance every interval until Stop
// or ctx is done. Only the first call starts a collector.
func (m *LedgerMetrics) StartCashBalanceCollection(ctx context.Context, reader CashBalanceReader, interval time.Duration) {
	if m == nil || reader == nil {
		return
	}
	m.collectOnce.Do(func() {
		if interval <= 0 {
			interval = time.Minute
		}
		go m.collect(ctx, reader, interval)
	})
}

func (m *LedgerMetrics) collect(ctx context.Context, reader CashBalanceReader, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.sample(ctx, reader)
	for {
		select {
		case <-m.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sample(ctx, reader)
		}
	}
}

func (m *LedgerMetrics) sample(ctx context.Context, reader CashBalanceReader) {
	amount, err := reader.CurrentBalance(ctx)
	if err != nil {
		m.logger.Debug("Cash balance sample skipped", zap.Error(err))
		return
	}
	m.RecordCashBalance(ctx, amount)
}

// Stop ends periodic collection. Safe to call more than once.
func (m *LedgerMetrics) Stop() {
	if m == nil {
		return
	}
	m.stopOnce.Do(func() { close(m.stopCh) })
}
