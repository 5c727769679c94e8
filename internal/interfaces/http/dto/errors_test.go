package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekstil/ledger/internal/domain/catalog"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/partner"
	"github.com/tekstil/ledger/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeEmptyDetails, http.StatusBadRequest},
		{ErrCodeTenorDatesMismatch, http.StatusBadRequest},
		{ErrCodeTenorBelowPaid, http.StatusUnprocessableEntity},
		{ErrCodeInstallmentPaid, http.StatusUnprocessableEntity},
		{ErrCodeReturnExceedsQuantity, http.StatusUnprocessableEntity},
		{ErrCodeInsufficientBalance, http.StatusUnprocessableEntity},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeDuplicateRequest, http.StatusConflict},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeReceiptUnavailable, http.StatusServiceUnavailable},
		{ErrCodeInternal, http.StatusInternalServerError},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestDomainErrorsHaveAStatus(t *testing.T) {
	errs := []*shared.DomainError{
		shared.ErrNotFound,
		shared.ErrAlreadyExists,
		shared.ErrInvalidInput,
		shared.ErrInsufficientBalance,
		shared.ErrDuplicateRequest,
		ledger.ErrEmptyDetails,
		ledger.ErrTenorDatesMismatch,
		ledger.ErrTenorBelowPaid,
		ledger.ErrInstallmentPaid,
		ledger.ErrReturnExceedsQuantity,
		ledger.ErrQuantityBelowReturned,
		ledger.ErrDetailNotInTransaction,
		ledger.ErrScheduleLocked,
		ledger.ErrNotInstallment,
		ledger.ErrTransactionNotFound,
		catalog.ErrItemInUse,
		catalog.ErrItemCodeTaken,
		partner.ErrPartyInUse,
	}
	for _, err := range errs {
		_, ok := ErrorCodeHTTPStatus[err.Code]
		assert.True(t, ok, "code %s has no HTTP status", err.Code)
	}
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse(shared.NewPaginated([]string{"a", "b"}, 12, 2, 10))

	assert.True(t, resp.Success)
	assert.Equal(t, []string{"a", "b"}, resp.Data)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(12), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}

func TestNewValidationErrorResponse_JSON(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "transaction_date", Message: "This field is required"},
	})

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["success"])
	errInfo := decoded["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errInfo["code"])
	assert.Equal(t, "req-1", errInfo["request_id"])
	assert.Len(t, errInfo["details"], 1)
	assert.NotContains(t, decoded, "data")
}
