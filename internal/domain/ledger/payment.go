package ledger

import "strings"

// PaymentStatus tells whether a transaction settles at once or through installments
type PaymentStatus string

const (
	PaymentImmediate   PaymentStatus = "immediate"
	PaymentInstallment PaymentStatus = "installment"
)

// ParsePaymentStatus maps a request value to a status.
// The legacy client sends "1" for installment; anything unrecognised settles immediately.
func ParsePaymentStatus(raw string) PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "installment", "1", "berjangka":
		return PaymentInstallment
	default:
		return PaymentImmediate
	}
}

// IsInstallment reports whether the status is installment
func (s PaymentStatus) IsInstallment() bool {
	return s == PaymentInstallment
}
