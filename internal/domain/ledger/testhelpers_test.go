package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func qty(yard, roll int64) Quantity {
	return NewQuantity(d(yard), d(roll))
}

func ptr[T any](v T) *T {
	return &v
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func newItemID() *uuid.UUID {
	id := uuid.New()
	return &id
}
