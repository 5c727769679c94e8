package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevisionLine is a detail line of an update request. Return quantities are
// optional per unit; an absent unit inherits the value of the matched prior line.
type RevisionLine struct {
	DetailID   *uuid.UUID
	ItemID     *uuid.UUID
	Quantity   Quantity
	UnitPrice  decimal.Decimal
	ReturnYard *decimal.Decimal
	ReturnRoll *decimal.Decimal
}

// MatchPriorDetails pairs each incoming line with at most one prior line.
// Lines carrying a detail id match on id; the remaining lines without an id match
// the first unclaimed prior line with the same item. Matching is one-to-one.
func MatchPriorDetails(prior []TransactionDetail, lines []RevisionLine) []*TransactionDetail {
	matched := make([]*TransactionDetail, len(lines))
	claimed := make([]bool, len(prior))

	byID := make(map[uuid.UUID]int, len(prior))
	for i := range prior {
		byID[prior[i].ID] = i
	}
	for i, line := range lines {
		if line.DetailID == nil {
			continue
		}
		if j, ok := byID[*line.DetailID]; ok && !claimed[j] {
			claimed[j] = true
			matched[i] = &prior[j]
		}
	}

	for i, line := range lines {
		if line.DetailID != nil || line.ItemID == nil {
			continue
		}
		for j := range prior {
			if claimed[j] || !prior[j].HasItem() || *prior[j].ItemID != *line.ItemID {
				continue
			}
			claimed[j] = true
			matched[i] = &prior[j]
			break
		}
	}
	return matched
}

// MergeReturn decides the returned quantity a recreated line carries:
// the explicit incoming value per unit, else the matched prior value, else zero.
func MergeReturn(yard, roll *decimal.Decimal, prior *TransactionDetail) Quantity {
	q := Quantity{Yard: decimal.Zero, Roll: decimal.Zero}
	if prior != nil {
		q = prior.Returned
	}
	if yard != nil {
		q.Yard = *yard
	}
	if roll != nil {
		q.Roll = *roll
	}
	return q
}

// ReviseDetails builds the replacement detail set of a transaction.
// A matched line keeps the identity of the prior line it replaces.
func ReviseDetails(transactionID uuid.UUID, prior []TransactionDetail, lines []RevisionLine) ([]TransactionDetail, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyDetails
	}
	matches := MatchPriorDetails(prior, lines)

	details := make([]TransactionDetail, 0, len(lines))
	for i, line := range lines {
		if line.Quantity.IsNegative() || line.UnitPrice.IsNegative() {
			return nil, ErrInvalidQuantity
		}
		returned := MergeReturn(line.ReturnYard, line.ReturnRoll, matches[i])
		if returned.IsNegative() {
			return nil, ErrInvalidQuantity
		}
		if returned.Exceeds(line.Quantity) {
			return nil, ErrReturnExceedsQuantity
		}
		id := uuid.New()
		if matches[i] != nil {
			id = matches[i].ID
		}
		details = append(details, TransactionDetail{
			ID:            id,
			TransactionID: transactionID,
			LineNo:        i + 1,
			ItemID:        line.ItemID,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			Returned:      returned,
		})
	}

	if err := checkReturnedFloor(prior, details); err != nil {
		return nil, err
	}
	return details, nil
}

// checkReturnedFloor refuses a revision whose total quantity for an item falls
// below what had already been returned for that item.
func checkReturnedFloor(prior, revised []TransactionDetail) error {
	returned := make(map[uuid.UUID]Quantity)
	for _, d := range prior {
		if !d.HasItem() || d.Returned.IsZero() {
			continue
		}
		returned[*d.ItemID] = returned[*d.ItemID].Add(d.Returned)
	}
	if len(returned) == 0 {
		return nil
	}

	posted := make(map[uuid.UUID]Quantity)
	for _, d := range revised {
		if d.HasItem() {
			posted[*d.ItemID] = posted[*d.ItemID].Add(d.Quantity)
		}
	}
	for itemID, r := range returned {
		if r.Exceeds(posted[itemID]) {
			return ErrQuantityBelowReturned
		}
	}
	return nil
}
