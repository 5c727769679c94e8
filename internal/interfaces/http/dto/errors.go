package dto

import "net/http"

// Error codes returned in the error envelope. Domain errors keep their own
// code; these name the classes the HTTP layer produces itself.

// General error codes
const (
	// ErrCodeInternal is used for unexpected failures. Details stay in the logs.
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeReceiptUnavailable is used when an optional backend is not configured
	ErrCodeReceiptUnavailable = "RECEIPT_UNAVAILABLE"
)

// Input error codes
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeEmptyDetails       = "EMPTY_DETAILS"
	ErrCodeTenorDatesMismatch = "TENOR_DATES_MISMATCH"
	ErrCodeRequestTooLarge    = "REQUEST_TOO_LARGE"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "INVALID_TOKEN"
)

// Resource error codes
const (
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeAlreadyExists    = "ALREADY_EXISTS"
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
)

// Business rule error codes
const (
	ErrCodeTenorBelowPaid         = "TENOR_BELOW_PAID"
	ErrCodeInstallmentPaid        = "INSTALLMENT_PAID"
	ErrCodeReturnExceedsQuantity  = "RETURN_EXCEEDS_QUANTITY"
	ErrCodeQuantityBelowReturned  = "QUANTITY_BELOW_RETURNED"
	ErrCodeDetailNotInTransaction = "DETAIL_NOT_IN_TRANSACTION"
	ErrCodeScheduleLocked         = "SCHEDULE_LOCKED"
	ErrCodeNotInstallment         = "NOT_INSTALLMENT"
	ErrCodeInsufficientBalance    = "INSUFFICIENT_BALANCE"
	ErrCodePartyInUse             = "PARTY_IN_USE"
	ErrCodeItemInUse              = "ITEM_IN_USE"
	ErrCodeInvalidState           = "INVALID_STATE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeReceiptUnavailable: http.StatusServiceUnavailable,

	// Input errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeInvalidInput:       http.StatusBadRequest,
	ErrCodeEmptyDetails:       http.StatusBadRequest,
	ErrCodeTenorDatesMismatch: http.StatusBadRequest,
	ErrCodeRequestTooLarge:    http.StatusRequestEntityTooLarge,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeDuplicateRequest: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeTenorBelowPaid:         http.StatusUnprocessableEntity,
	ErrCodeInstallmentPaid:        http.StatusUnprocessableEntity,
	ErrCodeReturnExceedsQuantity:  http.StatusUnprocessableEntity,
	ErrCodeQuantityBelowReturned:  http.StatusUnprocessableEntity,
	ErrCodeDetailNotInTransaction: http.StatusUnprocessableEntity,
	ErrCodeScheduleLocked:         http.StatusUnprocessableEntity,
	ErrCodeNotInstallment:         http.StatusUnprocessableEntity,
	ErrCodeInsufficientBalance:    http.StatusUnprocessableEntity,
	ErrCodePartyInUse:             http.StatusUnprocessableEntity,
	ErrCodeItemInUse:              http.StatusUnprocessableEntity,
	ErrCodeInvalidState:           http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
