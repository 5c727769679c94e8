package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/infrastructure/telemetry"
)

// ReturnService records cumulative returns against posted transactions
type ReturnService struct {
	instrumentation
	scope TransactionScope
}

// NewReturnService creates a new ReturnService
func NewReturnService(scope TransactionScope) *ReturnService {
	return &ReturnService{scope: scope}
}

// CreateReturn sets the returned quantity of each listed line. Only the change
// against the previous value moves stock and cash, and the refund lowers the
// recorded total. Any invalid entry aborts the whole request.
func (s *ReturnService) CreateReturn(ctx context.Context, direction ledger.Direction, id uuid.UUID, req CreateReturnRequest) (*ReturnResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "return",
		telemetry.SpanAttrDirection, direction.String(),
		telemetry.SpanAttrTransactionID, id.String(),
		telemetry.SpanAttrLineCount, len(req.Details),
	)
	defer span.End()

	if len(req.Details) == 0 {
		return nil, s.fail(ctx, span, ledger.ErrEmptyDetails)
	}

	var (
		trx    *ledger.TradeTransaction
		refund = decimal.Zero
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		trx, err = repos.Transactions().FindByIDForUpdate(ctx, direction, id)
		if err != nil {
			return err
		}

		outcomes := make([]ledger.ReturnOutcome, 0, len(req.Details))
		for _, in := range req.Details {
			outcome, err := trx.ApplyReturn(in.DetailID, ledger.NewQuantity(in.ReturnYard, in.ReturnRoll))
			if err != nil {
				return err
			}
			outcomes = append(outcomes, outcome)
			refund = refund.Add(outcome.Refund)
		}

		j := newJournal(repos, ledger.OperationReturn, trx)
		for _, o := range outcomes {
			if err := repos.Transactions().SaveDetail(ctx, o.Detail); err != nil {
				return fmt.Errorf("save detail: %w", err)
			}
			if !o.Detail.HasItem() {
				continue
			}
			effect := ledger.StockEffect{DetailID: o.Detail.ID, ItemID: *o.Detail.ItemID, Delta: o.StockDelta}
			if err := j.applyStock(ctx, []ledger.StockEffect{effect}, ""); err != nil {
				return err
			}
		}

		trx.DeductRefund(refund)
		if err := repos.Transactions().SaveHeader(ctx, trx); err != nil {
			return fmt.Errorf("save transaction: %w", err)
		}
		if err := j.applyCash(ctx, direction.CashDelta(refund).Neg()); err != nil {
			return err
		}
		return j.flush(ctx)
	})
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	s.posted(ctx, span, trx, ledger.OperationReturn)
	return &ReturnResult{
		ID:               trx.ID,
		Total:            trx.Total,
		RefundDelta:      refund,
		DetailsProcessed: len(req.Details),
	}, nil
}
