package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/telemetry"
)

var errNoPayments = shared.ErrInvalidInput.WithMessage("payments or tenor_dates are required")

// InstallmentService records payments against installment schedules
type InstallmentService struct {
	instrumentation
	scope TransactionScope
	repo  ledger.TradeTransactionRepository
	now   func() time.Time
}

// NewInstallmentService creates a new InstallmentService
func NewInstallmentService(scope TransactionScope, repo ledger.TradeTransactionRepository) *InstallmentService {
	return &InstallmentService{scope: scope, repo: repo, now: time.Now}
}

// List returns the schedule of a transaction in due-date order
func (s *InstallmentService) List(ctx context.Context, direction ledger.Direction, id uuid.UUID) ([]InstallmentResponse, error) {
	trx, err := s.repo.FindByID(ctx, direction, id)
	if err != nil {
		return nil, err
	}
	return ToInstallmentResponses(trx.Installments), nil
}

// Pay replaces the paid amount of each listed entry and moves cash by the
// direction-signed sum of the changes. With tenor dates the schedule is
// rebuilt while nothing is paid, or re-dated positionally when the count
// matches. A count change after a payment is refused.
func (s *InstallmentService) Pay(ctx context.Context, direction ledger.Direction, id uuid.UUID, req PayInstallmentsRequest) ([]InstallmentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "pay_installments",
		telemetry.SpanAttrDirection, direction.String(),
		telemetry.SpanAttrTransactionID, id.String(),
	)
	defer span.End()

	if len(req.Payments) == 0 && req.TenorDates == nil {
		return nil, s.fail(ctx, span, errNoPayments)
	}
	dates, err := shared.ParseDates(req.TenorDates)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	var trx *ledger.TradeTransaction
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		trx, err = repos.Transactions().FindByIDForUpdate(ctx, direction, id)
		if err != nil {
			return err
		}
		if !trx.PaymentStatus.IsInstallment() {
			return ledger.ErrNotInstallment
		}

		paid := decimal.Zero
		changed := make(map[uuid.UUID]bool, len(req.Payments))
		for _, p := range req.Payments {
			inst := findInstallment(trx.Installments, p.ID)
			if inst == nil {
				return ledger.ErrInstallmentNotFound
			}
			delta, err := inst.RecordPayment(p.AmountPaid)
			if err != nil {
				return err
			}
			paid = paid.Add(delta)
			changed[inst.ID] = true
		}

		if req.TenorDates != nil {
			rebuilt, err := s.redate(ctx, repos, trx, dates, changed)
			if err != nil {
				return err
			}
			if rebuilt {
				changed = nil
			}
		}
		for i := range trx.Installments {
			if changed[trx.Installments[i].ID] {
				if err := repos.Installments().Save(ctx, &trx.Installments[i]); err != nil {
					return fmt.Errorf("save installment: %w", err)
				}
			}
		}

		j := newJournal(repos, ledger.OperationPayment, trx)
		if err := j.applyCash(ctx, direction.CashDelta(paid)); err != nil {
			return err
		}
		return j.flush(ctx)
	})
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	ledger.SortInstallments(trx.Installments)
	s.posted(ctx, span, trx, ledger.OperationPayment)
	return ToInstallmentResponses(trx.Installments), nil
}

// redate applies tenor dates to the schedule. It reports whether the schedule
// was rebuilt from scratch, in which case every entry was already written.
// Re-dated entries are added to changed.
func (s *InstallmentService) redate(ctx context.Context, repos TransactionalRepositories, trx *ledger.TradeTransaction, dates []time.Time, changed map[uuid.UUID]bool) (bool, error) {
	if !trx.HasPaidInstallments() {
		if err := repos.Installments().DeleteByTransaction(ctx, trx.ID); err != nil {
			return false, fmt.Errorf("delete installments: %w", err)
		}
		trx.Installments = ledger.NewSchedule(trx.ID, len(dates), dates, s.now())
		if len(trx.Installments) > 0 {
			if err := repos.Installments().Create(ctx, trx.Installments); err != nil {
				return false, fmt.Errorf("create installments: %w", err)
			}
		}
		return true, nil
	}

	if len(dates) != len(trx.Installments) {
		return false, ledger.ErrScheduleLocked
	}
	ledger.SortInstallments(trx.Installments)
	for i := range trx.Installments {
		if dates[i].IsZero() || trx.Installments[i].DueDate.Equal(dates[i]) {
			continue
		}
		trx.Installments[i].Reschedule(dates[i])
		changed[trx.Installments[i].ID] = true
	}
	return false, nil
}

func findInstallment(list []ledger.Installment, id uuid.UUID) *ledger.Installment {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}
