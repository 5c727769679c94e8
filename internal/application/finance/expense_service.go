package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tekstil/ledger/internal/domain/finance"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/logger"
	"github.com/tekstil/ledger/internal/infrastructure/telemetry"
)

const metaBalanceAfter = "balance_after"

// ExpenseService records operational expenses against the cash balance
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	scope       TransactionScope
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository, scope TransactionScope) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		scope:       scope,
	}
}

// Create records an expense and debits the cash balance. The balance must
// exist and cover the amount.
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "create_expense",
		telemetry.SpanAttrAmount, req.Amount.String(),
	)
	defer span.End()

	date, err := shared.ParseDate(req.ExpenseDate)
	if err != nil {
		return nil, err
	}
	expense, err := finance.NewExpense(req.Category, req.Amount, date, req.Note, req.CreatedBy)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		balance, err := debitable(ctx, repos, expense.Amount)
		if err != nil {
			return err
		}
		if err := repos.Expenses().Create(ctx, expense); err != nil {
			return fmt.Errorf("create expense: %w", err)
		}
		return moveCash(ctx, repos, balance, expense.ID, expense.Amount.Neg())
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("Expense recorded",
		zap.String("expense_id", expense.ID.String()),
		zap.String("category", expense.Category),
		logger.Amount("amount", expense.Amount),
	)
	response := ToExpenseResponse(expense)
	return &response, nil
}

// GetByID retrieves an expense by ID
func (s *ExpenseService) GetByID(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// List retrieves a page of expenses with the total amount of every match
func (s *ExpenseService) List(ctx context.Context, filter ExpenseListFilter) (*ExpenseListResponse, error) {
	domainFilter, err := filter.toDomain()
	if err != nil {
		return nil, err
	}

	expenses, total, err := s.expenseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	sum, err := s.expenseRepo.SumAmount(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	return &ExpenseListResponse{
		Paginated:   shared.NewPaginated(ToExpenseResponses(expenses), total, domainFilter.Page, domainFilter.PageSize),
		TotalAmount: sum,
	}, nil
}

// Update changes an expense and moves cash by the difference. An increase
// must be covered by the balance.
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "update_expense",
		telemetry.SpanAttrExpenseID, id.String(),
	)
	defer span.End()

	var expense *finance.Expense
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		expense, err = repos.Expenses().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		category, amount, date, note := expense.Category, expense.Amount, expense.ExpenseDate, expense.Note
		if req.Category != nil {
			category = *req.Category
		}
		if req.Amount != nil {
			amount = *req.Amount
		}
		if req.ExpenseDate != nil {
			if date, err = shared.ParseDate(*req.ExpenseDate); err != nil {
				return err
			}
		}
		if req.Note != nil {
			note = *req.Note
		}

		delta := amount.Sub(expense.Amount)
		if err := expense.Update(category, amount, date, note); err != nil {
			return err
		}

		if delta.IsPositive() {
			balance, err := debitable(ctx, repos, delta)
			if err != nil {
				return err
			}
			if err := moveCash(ctx, repos, balance, expense.ID, delta.Neg()); err != nil {
				return err
			}
		} else if delta.IsNegative() {
			balance, err := repos.CashBalance().LockOrCreate(ctx)
			if err != nil {
				return fmt.Errorf("lock cash balance: %w", err)
			}
			if err := moveCash(ctx, repos, balance, expense.ID, delta.Neg()); err != nil {
				return err
			}
		}

		return repos.Expenses().Save(ctx, expense)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Delete removes an expense and credits its amount back
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "delete_expense",
		telemetry.SpanAttrExpenseID, id.String(),
	)
	defer span.End()

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		expense, err := repos.Expenses().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		balance, err := repos.CashBalance().LockOrCreate(ctx)
		if err != nil {
			return fmt.Errorf("lock cash balance: %w", err)
		}
		if err := moveCash(ctx, repos, balance, expense.ID, expense.Amount); err != nil {
			return err
		}
		return repos.Expenses().Delete(ctx, id)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	logger.L(ctx).Info("Expense deleted", zap.String("expense_id", id.String()))
	return nil
}

// debitable locks the balance and checks it can pay amount
func debitable(ctx context.Context, repos TransactionalRepositories, amount decimal.Decimal) (*finance.CashBalance, error) {
	balance, err := repos.CashBalance().FindForUpdate(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, finance.ErrCashBalanceMissing
		}
		return nil, fmt.Errorf("lock cash balance: %w", err)
	}
	if !balance.Covers(amount) {
		logger.L(ctx).Warn("Expense exceeds cash balance",
			logger.Amount("balance", balance.Amount),
			logger.Amount("amount", amount),
		)
		return nil, shared.ErrInsufficientBalance
	}
	return balance, nil
}

// moveCash applies delta to the locked balance and journals it against the expense
func moveCash(ctx context.Context, repos TransactionalRepositories, balance *finance.CashBalance, expenseID uuid.UUID, delta decimal.Decimal) error {
	balance.Apply(delta)
	if err := repos.CashBalance().Save(ctx, balance); err != nil {
		return fmt.Errorf("save cash balance: %w", err)
	}

	movement := ledger.NewCashMovement(ledger.OperationExpense, "", nil, delta).
		WithMeta(metaBalanceAfter, balance.Amount.String())
	movement.ExpenseID = &expenseID
	if err := repos.Movements().Append(ctx, movement); err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}
