package ledger

import "github.com/tekstil/ledger/internal/domain/shared"

// Validation errors, rejected before anything is written
var (
	ErrInvalidDirection   = shared.ErrInvalidInput.WithMessage("Direction must be outbound or inbound")
	ErrEmptyDetails       = shared.NewDomainError("EMPTY_DETAILS", "At least one detail line is required")
	ErrInvalidQuantity    = shared.ErrInvalidInput.WithMessage("Quantities and prices must be zero or greater")
	ErrMissingDate        = shared.ErrInvalidInput.WithMessage("transaction_date is required")
	ErrInvalidTenor       = shared.ErrInvalidInput.WithMessage("Tenor must be zero or greater")
	ErrTenorDatesMismatch = shared.NewDomainError("TENOR_DATES_MISMATCH", "Number of tenor dates must equal the tenor")
	ErrInvalidPayment     = shared.ErrInvalidInput.WithMessage("Installment payment must be zero or greater")
)

// Business-rule errors, raised inside the atomic unit and rolled back with it
var (
	ErrTenorBelowPaid         = shared.NewDomainError("TENOR_BELOW_PAID", "New tenor cannot be lower than the number of paid installments")
	ErrInstallmentPaid        = shared.NewDomainError("INSTALLMENT_PAID", "Transaction has paid installments and cannot be deleted")
	ErrReturnExceedsQuantity  = shared.NewDomainError("RETURN_EXCEEDS_QUANTITY", "Returned quantity cannot exceed the posted quantity")
	ErrQuantityBelowReturned  = shared.NewDomainError("QUANTITY_BELOW_RETURNED", "Quantity cannot be reduced below what was already returned")
	ErrDetailNotInTransaction = shared.NewDomainError("DETAIL_NOT_IN_TRANSACTION", "Detail does not belong to this transaction")
	ErrScheduleLocked         = shared.NewDomainError("SCHEDULE_LOCKED", "Installment count cannot change once a payment was recorded")
	ErrNotInstallment         = shared.NewDomainError("NOT_INSTALLMENT", "Transaction is not paid in installments")
)

// Not-found errors
var (
	ErrTransactionNotFound  = shared.ErrNotFound.WithMessage("Transaction not found")
	ErrInstallmentNotFound  = shared.ErrNotFound.WithMessage("Installment not found in this transaction")
	ErrCounterpartyNotFound = shared.ErrNotFound.WithMessage("Counterparty not found for this direction")
)
