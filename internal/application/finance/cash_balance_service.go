package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tekstil/ledger/internal/domain/finance"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/logger"
	"github.com/tekstil/ledger/internal/infrastructure/telemetry"
)

// CashBalanceService reads and sets the singleton cash balance
type CashBalanceService struct {
	balanceRepo finance.CashBalanceRepository
	scope       TransactionScope
}

// NewCashBalanceService creates a new CashBalanceService
func NewCashBalanceService(balanceRepo finance.CashBalanceRepository, scope TransactionScope) *CashBalanceService {
	return &CashBalanceService{
		balanceRepo: balanceRepo,
		scope:       scope,
	}
}

// Get returns the balance. A balance that was never set reads as zero.
func (s *CashBalanceService) Get(ctx context.Context) (*CashBalanceResponse, error) {
	balance, err := s.balanceRepo.Get(ctx)
	if errors.Is(err, shared.ErrNotFound) {
		return &CashBalanceResponse{Amount: decimal.Zero}, nil
	}
	if err != nil {
		return nil, err
	}
	updatedAt := balance.UpdatedAt
	return &CashBalanceResponse{Amount: balance.Amount, UpdatedAt: &updatedAt}, nil
}

// CurrentBalance feeds the cash-balance gauge
func (s *CashBalanceService) CurrentBalance(ctx context.Context) (decimal.Decimal, error) {
	resp, err := s.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return resp.Amount, nil
}

// Set replaces the balance, creating the row when missing. The change is
// journaled as a correction.
func (s *CashBalanceService) Set(ctx context.Context, req SetCashBalanceRequest) (*CashBalanceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "set_cash_balance",
		telemetry.SpanAttrAmount, req.Amount.String(),
	)
	defer span.End()

	var balance *finance.CashBalance
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		balance, err = repos.CashBalance().LockOrCreate(ctx)
		if err != nil {
			return fmt.Errorf("lock cash balance: %w", err)
		}

		delta := balance.Set(req.Amount)
		if delta.IsZero() {
			return nil
		}
		if err := repos.CashBalance().Save(ctx, balance); err != nil {
			return fmt.Errorf("save cash balance: %w", err)
		}

		movement := ledger.NewCashMovement(ledger.OperationCorrection, "", nil, delta).
			WithMeta(metaBalanceAfter, balance.Amount.String())
		if note := strings.TrimSpace(req.Note); note != "" {
			movement = movement.WithMeta("note", note)
		}
		if err := repos.Movements().Append(ctx, movement); err != nil {
			return fmt.Errorf("append movement: %w", err)
		}

		logger.L(ctx).Info("Cash balance set",
			logger.Amount("amount", balance.Amount),
			logger.Amount("delta", delta),
		)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	updatedAt := balance.UpdatedAt
	return &CashBalanceResponse{Amount: balance.Amount, UpdatedAt: &updatedAt}, nil
}

var _ telemetry.CashBalanceReader = (*CashBalanceService)(nil)
