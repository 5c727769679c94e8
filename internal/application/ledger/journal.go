package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tekstil/ledger/internal/domain/ledger"
)

// Movement metadata keys
const (
	metaPhase        = "phase"
	metaBalanceAfter = "balance_after"
	phaseRollback    = "rollback"
	phaseApply       = "apply"
)

// journal applies the stock and cash side of one posting and collects a
// movement for every change it makes. Movements are written by flush, inside
// the same unit.
type journal struct {
	repos     TransactionalRepositories
	op        ledger.Operation
	direction ledger.Direction
	trxID     uuid.UUID
	entries   []ledger.Movement
	cash      decimal.Decimal
}

func newJournal(repos TransactionalRepositories, op ledger.Operation, trx *ledger.TradeTransaction) *journal {
	return &journal{
		repos:     repos,
		op:        op,
		direction: trx.Direction,
		trxID:     trx.ID,
		cash:      decimal.Zero,
	}
}

// applyStock moves stock by each effect. Effects on items that no longer exist
// are skipped; the detail row still records the line.
func (j *journal) applyStock(ctx context.Context, effects []ledger.StockEffect, phase string) error {
	for _, e := range effects {
		if e.Delta.IsZero() {
			continue
		}
		ok, err := j.repos.Items().AdjustStock(ctx, e.ItemID, e.Delta.Yard, e.Delta.Roll)
		if err != nil {
			return fmt.Errorf("adjust stock of item %s: %w", e.ItemID, err)
		}
		if !ok {
			continue
		}
		detailID := e.DetailID
		m := ledger.NewStockMovement(j.op, j.direction, &j.trxID, &detailID, e.ItemID, e.Delta)
		if phase != "" {
			m = m.WithMeta(metaPhase, phase)
		}
		j.entries = append(j.entries, m)
	}
	return nil
}

// reverseStock undoes effects, as when a transaction is revised or deleted
func (j *journal) reverseStock(ctx context.Context, effects []ledger.StockEffect, phase string) error {
	reversed := make([]ledger.StockEffect, len(effects))
	for i, e := range effects {
		reversed[i] = ledger.StockEffect{DetailID: e.DetailID, ItemID: e.ItemID, Delta: e.Delta.Neg()}
	}
	return j.applyStock(ctx, reversed, phase)
}

// applyCash moves the singleton balance by delta, creating the row when missing
func (j *journal) applyCash(ctx context.Context, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	balance, err := j.repos.CashBalance().LockOrCreate(ctx)
	if err != nil {
		return fmt.Errorf("lock cash balance: %w", err)
	}
	balance.Apply(delta)
	if err := j.repos.CashBalance().Save(ctx, balance); err != nil {
		return fmt.Errorf("save cash balance: %w", err)
	}
	j.cash = j.cash.Add(delta)
	j.entries = append(j.entries,
		ledger.NewCashMovement(j.op, j.direction, &j.trxID, delta).
			WithMeta(metaBalanceAfter, balance.Amount.String()))
	return nil
}

// flush appends the collected movements
func (j *journal) flush(ctx context.Context) error {
	if len(j.entries) == 0 {
		return nil
	}
	if err := j.repos.Movements().Append(ctx, j.entries...); err != nil {
		return fmt.Errorf("append movements: %w", err)
	}
	return nil
}
