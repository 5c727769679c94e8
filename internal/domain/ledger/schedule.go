package ledger

import (
	"time"

	"github.com/google/uuid"
)

// SchedulePlan is the set of changes that reconciles a stored schedule with a revision
type SchedulePlan struct {
	Kept        []Installment // entries that stay, with their identity
	Rescheduled []Installment // kept entries whose due date changed
	Added       []Installment
	Removed     []Installment
}

// Result is the schedule after the plan is applied, in due-date order
func (p SchedulePlan) Result() []Installment {
	out := make([]Installment, 0, len(p.Kept)+len(p.Added))
	out = append(out, p.Kept...)
	out = append(out, p.Added...)
	SortInstallments(out)
	return out
}

// PlanSchedule reconciles the stored schedule of a transaction with a revised tenor.
//
// Entries are processed in due-date order. A tenor below the number of paid entries is
// refused. Growing appends unpaid entries dated from dates[existing+i] or now. Shrinking
// removes unpaid entries first and reaches paid ones only as spill-over. When
// len(dates) equals the new tenor the surviving entries are re-dated positionally.
// A non-installment status removes every entry.
func PlanSchedule(transactionID uuid.UUID, existing []Installment, status PaymentStatus, tenor int, dates []time.Time, now time.Time) (SchedulePlan, error) {
	if tenor < 0 {
		return SchedulePlan{}, ErrInvalidTenor
	}
	sorted := make([]Installment, len(existing))
	copy(sorted, existing)
	SortInstallments(sorted)

	if !status.IsInstallment() {
		return SchedulePlan{Removed: sorted}, nil
	}

	paid := 0
	for _, inst := range sorted {
		if inst.IsPaid() {
			paid++
		}
	}
	if tenor < paid {
		return SchedulePlan{}, ErrTenorBelowPaid
	}

	var plan SchedulePlan
	switch {
	case tenor > len(sorted):
		plan.Kept = sorted
		for i := len(sorted); i < tenor; i++ {
			plan.Added = append(plan.Added, NewInstallment(transactionID, dueDateAt(dates, i, now)))
		}
	case tenor < len(sorted):
		plan.Kept, plan.Removed = shrink(sorted, len(sorted)-tenor)
	default:
		plan.Kept = sorted
	}

	if len(dates) == tenor {
		for i := range plan.Kept {
			if dates[i].IsZero() || plan.Kept[i].DueDate.Equal(dates[i]) {
				continue
			}
			plan.Kept[i].Reschedule(dates[i])
			plan.Rescheduled = append(plan.Rescheduled, plan.Kept[i])
		}
	}
	return plan, nil
}

// shrink drops n entries from a due-date ordered schedule, unpaid ones first
func shrink(sorted []Installment, n int) (kept, removed []Installment) {
	drop := make(map[int]bool, n)
	for i := range sorted {
		if len(drop) == n {
			break
		}
		if !sorted[i].IsPaid() {
			drop[i] = true
		}
	}
	for i := range sorted {
		if len(drop) == n {
			break
		}
		if !drop[i] {
			drop[i] = true
		}
	}
	for i, inst := range sorted {
		if drop[i] {
			removed = append(removed, inst)
		} else {
			kept = append(kept, inst)
		}
	}
	return kept, removed
}
