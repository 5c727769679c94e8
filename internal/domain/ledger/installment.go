package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tekstil/ledger/internal/domain/shared"
)

// Installment is one entry of an installment schedule. AmountPaid zero means unpaid.
type Installment struct {
	shared.BaseEntity
	TransactionID uuid.UUID
	DueDate       time.Time
	AmountPaid    decimal.Decimal
}

// NewInstallment creates an unpaid schedule entry
func NewInstallment(transactionID uuid.UUID, dueDate time.Time) Installment {
	return Installment{
		BaseEntity:    shared.NewBaseEntity(),
		TransactionID: transactionID,
		DueDate:       dueDate,
		AmountPaid:    decimal.Zero,
	}
}

// IsPaid reports whether a payment was recorded
func (i Installment) IsPaid() bool {
	return i.AmountPaid.IsPositive()
}

// RecordPayment replaces the paid amount and returns the change
func (i *Installment) RecordPayment(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, ErrInvalidPayment
	}
	delta := amount.Sub(i.AmountPaid)
	i.AmountPaid = amount
	i.Touch()
	return delta, nil
}

// Reschedule moves the due date
func (i *Installment) Reschedule(due time.Time) {
	i.DueDate = due
	i.Touch()
}

// SortInstallments orders a schedule by due date, oldest first
func SortInstallments(list []Installment) {
	sort.SliceStable(list, func(a, b int) bool {
		if list[a].DueDate.Equal(list[b].DueDate) {
			return list[a].CreatedAt.Before(list[b].CreatedAt)
		}
		return list[a].DueDate.Before(list[b].DueDate)
	})
}

// ValidateTenor checks tenor and due dates of a create request
func ValidateTenor(status PaymentStatus, tenor int, dates []time.Time) error {
	if tenor < 0 {
		return ErrInvalidTenor
	}
	if status.IsInstallment() && len(dates) > 0 && len(dates) != tenor {
		return ErrTenorDatesMismatch
	}
	return nil
}

// NewSchedule creates the schedule of a new installment transaction.
// Due dates come positionally from dates, or now when none were given.
func NewSchedule(transactionID uuid.UUID, tenor int, dates []time.Time, now time.Time) []Installment {
	list := make([]Installment, 0, tenor)
	for i := 0; i < tenor; i++ {
		list = append(list, NewInstallment(transactionID, dueDateAt(dates, i, now)))
	}
	return list
}

func dueDateAt(dates []time.Time, i int, now time.Time) time.Time {
	if i < len(dates) && !dates[i].IsZero() {
		return dates[i]
	}
	return now
}
