package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/telemetry"
)

// PostingService creates, revises and deletes trade transactions for either
// direction. Every call is one atomic unit covering the header, details,
// schedule, stock, cash balance and journal.
type PostingService struct {
	instrumentation
	scope TransactionScope
	now   func() time.Time
}

// NewPostingService creates a new PostingService
func NewPostingService(scope TransactionScope) *PostingService {
	return &PostingService{scope: scope, now: time.Now}
}

// Create posts a new transaction
func (s *PostingService) Create(ctx context.Context, direction ledger.Direction, req CreateTransactionRequest, createdBy *uuid.UUID) (*PostingResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "create",
		telemetry.SpanAttrDirection, direction.String(),
		telemetry.SpanAttrLineCount, len(req.Details),
	)
	defer span.End()

	header, dates, err := req.toHeader()
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	if err := ledger.ValidateTenor(header.PaymentStatus, req.Tenor, dates); err != nil {
		return nil, s.fail(ctx, span, err)
	}
	trx, totals, err := ledger.NewTradeTransaction(direction, header, req.lines(), createdBy)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	if header.PaymentStatus.IsInstallment() && req.Tenor > 0 {
		trx.Installments = ledger.NewSchedule(trx.ID, req.Tenor, dates, s.now())
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := checkCounterparty(ctx, repos, direction, trx.CounterpartyID); err != nil {
			return err
		}
		if err := repos.Transactions().Create(ctx, trx); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		if len(trx.Installments) > 0 {
			if err := repos.Installments().Create(ctx, trx.Installments); err != nil {
				return fmt.Errorf("create installments: %w", err)
			}
		}

		j := newJournal(repos, ledger.OperationPost, trx)
		if err := j.applyStock(ctx, trx.StockEffects(), ""); err != nil {
			return err
		}
		if err := j.applyCash(ctx, trx.CashEffect()); err != nil {
			return err
		}
		return j.flush(ctx)
	})
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	s.posted(ctx, span, trx, ledger.OperationPost)
	return &PostingResult{
		ID:             trx.ID,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		Total:          totals.Total,
	}, nil
}

// Update replaces header and details of a transaction and reconciles its schedule.
// Stock is rolled back by the old net effect and re-applied with the new one;
// cash moves by the difference of the cash effect before and after.
// The returned total is the recorded total, net of carried returns.
func (s *PostingService) Update(ctx context.Context, direction ledger.Direction, id uuid.UUID, req UpdateTransactionRequest) (*PostingResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "update",
		telemetry.SpanAttrDirection, direction.String(),
		telemetry.SpanAttrTransactionID, id.String(),
		telemetry.SpanAttrLineCount, len(req.Details),
	)
	defer span.End()

	header, dates, err := req.toHeader()
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}
	lines := req.lines()
	if len(lines) == 0 {
		return nil, s.fail(ctx, span, ledger.ErrEmptyDetails)
	}

	var (
		trx    *ledger.TradeTransaction
		totals ledger.Totals
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		trx, err = repos.Transactions().FindByIDForUpdate(ctx, direction, id)
		if err != nil {
			return err
		}
		if err := checkCounterparty(ctx, repos, direction, header.CounterpartyID); err != nil {
			return err
		}
		cashBefore := trx.CashEffect()
		stockBefore := trx.StockEffects()

		plan, err := ledger.PlanSchedule(trx.ID, trx.Installments, header.PaymentStatus, req.Tenor, dates, s.now())
		if err != nil {
			return err
		}
		details, err := ledger.ReviseDetails(trx.ID, trx.Details, lines)
		if err != nil {
			return err
		}

		if err := applySchedulePlan(ctx, repos, plan); err != nil {
			return err
		}
		trx.Installments = plan.Result()

		j := newJournal(repos, ledger.OperationRepost, trx)
		if err := j.reverseStock(ctx, stockBefore, phaseRollback); err != nil {
			return err
		}
		if err := repos.Transactions().DeleteDetails(ctx, trx.ID); err != nil {
			return fmt.Errorf("delete details: %w", err)
		}
		if totals, err = trx.Revise(header, details); err != nil {
			return err
		}
		if err := repos.Transactions().CreateDetails(ctx, trx.Details); err != nil {
			return fmt.Errorf("create details: %w", err)
		}
		if err := repos.Transactions().SaveHeader(ctx, trx); err != nil {
			return fmt.Errorf("save transaction: %w", err)
		}
		if err := j.applyStock(ctx, trx.StockEffects(), phaseApply); err != nil {
			return err
		}
		if err := j.applyCash(ctx, trx.CashEffect().Sub(cashBefore)); err != nil {
			return err
		}
		return j.flush(ctx)
	})
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	s.posted(ctx, span, trx, ledger.OperationRepost)
	return &PostingResult{
		ID:             trx.ID,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		Total:          trx.Total,
	}, nil
}

// Delete reverses the stock and cash effects of a transaction and removes it.
// Refused while any installment is paid.
func (s *PostingService) Delete(ctx context.Context, direction ledger.Direction, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "delete",
		telemetry.SpanAttrDirection, direction.String(),
		telemetry.SpanAttrTransactionID, id.String(),
	)
	defer span.End()

	var trx *ledger.TradeTransaction
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		trx, err = repos.Transactions().FindByIDForUpdate(ctx, direction, id)
		if err != nil {
			return err
		}
		if trx.HasPaidInstallments() {
			return ledger.ErrInstallmentPaid
		}

		j := newJournal(repos, ledger.OperationReverse, trx)
		if err := j.reverseStock(ctx, trx.StockEffects(), ""); err != nil {
			return err
		}
		if err := j.applyCash(ctx, trx.CashEffect().Neg()); err != nil {
			return err
		}
		if err := repos.Installments().DeleteByTransaction(ctx, trx.ID); err != nil {
			return fmt.Errorf("delete installments: %w", err)
		}
		if err := repos.Transactions().DeleteDetails(ctx, trx.ID); err != nil {
			return fmt.Errorf("delete details: %w", err)
		}
		if err := repos.Transactions().Delete(ctx, trx.ID); err != nil {
			return err
		}
		return j.flush(ctx)
	})
	if err != nil {
		return s.fail(ctx, span, err)
	}

	s.posted(ctx, span, trx, ledger.OperationReverse)
	return nil
}

// applySchedulePlan writes a reconciled schedule
func applySchedulePlan(ctx context.Context, repos TransactionalRepositories, plan ledger.SchedulePlan) error {
	if len(plan.Removed) > 0 {
		ids := make([]uuid.UUID, len(plan.Removed))
		for i, inst := range plan.Removed {
			ids[i] = inst.ID
		}
		if err := repos.Installments().Delete(ctx, ids); err != nil {
			return fmt.Errorf("delete installments: %w", err)
		}
	}
	for i := range plan.Rescheduled {
		if err := repos.Installments().Save(ctx, &plan.Rescheduled[i]); err != nil {
			return fmt.Errorf("reschedule installment: %w", err)
		}
	}
	if len(plan.Added) > 0 {
		if err := repos.Installments().Create(ctx, plan.Added); err != nil {
			return fmt.Errorf("create installments: %w", err)
		}
	}
	return nil
}

// checkCounterparty resolves an optional counterparty against the party kind
// the direction trades with. A customer cannot sell to the shop.
func checkCounterparty(ctx context.Context, repos TransactionalRepositories, direction ledger.Direction, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := repos.Parties().FindByID(ctx, direction.CounterpartyKind(), *id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ledger.ErrCounterpartyNotFound
		}
		return fmt.Errorf("find counterparty: %w", err)
	}
	return nil
}
