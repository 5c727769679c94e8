package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/shared"
)

// DetailInput is a detail line of a create request
type DetailInput struct {
	ItemID       *uuid.UUID      `json:"item_id"`
	QuantityYard decimal.Decimal `json:"quantity_yard"`
	QuantityRoll decimal.Decimal `json:"quantity_roll"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// HeaderInput holds the header fields shared by create and update requests
type HeaderInput struct {
	TransactionDate string          `json:"transaction_date" binding:"required"`
	CounterpartyID  *uuid.UUID      `json:"counterparty_id"`
	PaymentStatus   string          `json:"payment_status"`
	DiscountType    string          `json:"discount_type" binding:"omitempty,oneof=flat percent persen"`
	DiscountValue   decimal.Decimal `json:"discount_value"`
	TaxType         string          `json:"tax_type" binding:"omitempty,oneof=flat percent persen"`
	TaxValue        decimal.Decimal `json:"tax_value"`
	Note            string          `json:"note" binding:"max=2000"`
	Tenor           int             `json:"tenor" binding:"min=0,max=360"`
	TenorDates      []string        `json:"tenor_dates"`
}

// CreateTransactionRequest posts a new sale or purchase
type CreateTransactionRequest struct {
	HeaderInput
	Details []DetailInput `json:"details" binding:"dive"`
}

// RevisionInput is a detail line of an update request.
// Return quantities left out inherit the value of the matched prior line.
type RevisionInput struct {
	DetailID     *uuid.UUID       `json:"detail_id"`
	ItemID       *uuid.UUID       `json:"item_id"`
	QuantityYard decimal.Decimal  `json:"quantity_yard"`
	QuantityRoll decimal.Decimal  `json:"quantity_roll"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	ReturnYard   *decimal.Decimal `json:"return_yard"`
	ReturnRoll   *decimal.Decimal `json:"return_roll"`
}

// UpdateTransactionRequest replaces a transaction
type UpdateTransactionRequest struct {
	HeaderInput
	Details []RevisionInput `json:"details" binding:"dive"`
}

// ReturnInput sets the cumulative returned quantity of one line
type ReturnInput struct {
	DetailID   uuid.UUID       `json:"detail_id" binding:"required"`
	ReturnYard decimal.Decimal `json:"return_yard"`
	ReturnRoll decimal.Decimal `json:"return_roll"`
}

// CreateReturnRequest records returns against a transaction
type CreateReturnRequest struct {
	Details []ReturnInput `json:"details" binding:"dive"`
}

// PaymentInput sets the paid amount of one schedule entry
type PaymentInput struct {
	ID         uuid.UUID       `json:"id" binding:"required"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
}

// PayInstallmentsRequest records payments and optionally re-dates the schedule
type PayInstallmentsRequest struct {
	Payments   []PaymentInput `json:"payments" binding:"dive"`
	TenorDates []string       `json:"tenor_dates"`
}

// TransactionListFilter represents filter options for transaction lists
type TransactionListFilter struct {
	Search         string     `form:"search"`
	CounterpartyID *uuid.UUID `form:"counterparty_id"`
	DateFrom       string     `form:"date_from"`
	DateTo         string     `form:"date_to"`
	Page           int        `form:"page" binding:"omitempty,min=1"`
	PageSize       int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy        string     `form:"order_by"`
	OrderDir       string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PostingResult is returned by create and update
type PostingResult struct {
	ID             uuid.UUID       `json:"id"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
}

// ReturnResult is returned by createReturn
type ReturnResult struct {
	ID               uuid.UUID       `json:"id"`
	Total            decimal.Decimal `json:"total"`
	RefundDelta      decimal.Decimal `json:"refund_delta"`
	DetailsProcessed int             `json:"details_processed"`
}

// InstallmentResponse is one schedule entry
type InstallmentResponse struct {
	ID            uuid.UUID       `json:"id"`
	TransactionID uuid.UUID       `json:"transaction_id"`
	DueDate       string          `json:"due_date"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Paid          bool            `json:"paid"`
}

// DetailResponse is one transaction line
type DetailResponse struct {
	ID           uuid.UUID       `json:"id"`
	LineNo       int             `json:"line_no"`
	ItemID       *uuid.UUID      `json:"item_id,omitempty"`
	ItemName     string          `json:"item_name,omitempty"`
	QuantityYard decimal.Decimal `json:"quantity_yard"`
	QuantityRoll decimal.Decimal `json:"quantity_roll"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReturnYard   decimal.Decimal `json:"return_yard"`
	ReturnRoll   decimal.Decimal `json:"return_roll"`
	LineAmount   decimal.Decimal `json:"line_amount"`
}

// TransactionResponse is a transaction with lines and schedule
type TransactionResponse struct {
	ID               uuid.UUID             `json:"id"`
	Direction        string                `json:"direction"`
	TransactionDate  string                `json:"transaction_date"`
	CounterpartyID   *uuid.UUID            `json:"counterparty_id,omitempty"`
	CounterpartyName string                `json:"counterparty_name,omitempty"`
	PaymentStatus    string                `json:"payment_status"`
	DiscountType     string                `json:"discount_type"`
	DiscountValue    decimal.Decimal       `json:"discount_value"`
	TaxType          string                `json:"tax_type"`
	TaxValue         decimal.Decimal       `json:"tax_value"`
	Total            decimal.Decimal       `json:"total"`
	Note             string                `json:"note"`
	CreatedBy        *uuid.UUID            `json:"created_by,omitempty"`
	Details          []DetailResponse      `json:"details"`
	Installments     []InstallmentResponse `json:"installments"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// TransactionListItemResponse is a transaction row in a list
type TransactionListItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	TransactionDate  string          `json:"transaction_date"`
	CounterpartyID   *uuid.UUID      `json:"counterparty_id,omitempty"`
	CounterpartyName string          `json:"counterparty_name,omitempty"`
	PaymentStatus    string          `json:"payment_status"`
	Total            decimal.Decimal `json:"total"`
	Note             string          `json:"note"`
	LineCount        int             `json:"line_count"`
	CreatedAt        time.Time       `json:"created_at"`
}

// MovementResponse is one journal entry
type MovementResponse struct {
	ID            uuid.UUID       `json:"id"`
	Kind          string          `json:"kind"`
	Operation     string          `json:"operation"`
	TransactionID *uuid.UUID      `json:"transaction_id,omitempty"`
	DetailID      *uuid.UUID      `json:"detail_id,omitempty"`
	ItemID        *uuid.UUID      `json:"item_id,omitempty"`
	QuantityYard  decimal.Decimal `json:"quantity_yard"`
	QuantityRoll  decimal.Decimal `json:"quantity_roll"`
	Amount        decimal.Decimal `json:"amount"`
	Meta          map[string]any  `json:"meta,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ItemHistoryResponse is one line of an item's trade history
type ItemHistoryResponse struct {
	TransactionID   uuid.UUID       `json:"transaction_id"`
	DetailID        uuid.UUID       `json:"detail_id"`
	TransactionDate string          `json:"transaction_date"`
	QuantityYard    decimal.Decimal `json:"quantity_yard"`
	QuantityRoll    decimal.Decimal `json:"quantity_roll"`
	ReturnYard      decimal.Decimal `json:"return_yard"`
	ReturnRoll      decimal.Decimal `json:"return_roll"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineAmount      decimal.Decimal `json:"line_amount"`
}

// toHeader converts header input into the domain header plus parsed tenor dates
func (in HeaderInput) toHeader() (ledger.Header, []time.Time, error) {
	date, err := shared.ParseDate(in.TransactionDate)
	if err != nil {
		return ledger.Header{}, nil, err
	}
	dates, err := shared.ParseDates(in.TenorDates)
	if err != nil {
		return ledger.Header{}, nil, err
	}
	header := ledger.Header{
		CounterpartyID:  in.CounterpartyID,
		TransactionDate: date,
		PaymentStatus:   ledger.ParsePaymentStatus(in.PaymentStatus),
		Discount:        ledger.NewAdjustment(in.DiscountType, in.DiscountValue),
		Tax:             ledger.NewAdjustment(in.TaxType, in.TaxValue),
		Note:            in.Note,
	}
	return header, dates, nil
}

func (r CreateTransactionRequest) lines() []ledger.DetailLine {
	lines := make([]ledger.DetailLine, len(r.Details))
	for i, d := range r.Details {
		lines[i] = ledger.DetailLine{
			ItemID:    d.ItemID,
			Quantity:  ledger.NewQuantity(d.QuantityYard, d.QuantityRoll),
			UnitPrice: d.UnitPrice,
		}
	}
	return lines
}

func (r UpdateTransactionRequest) lines() []ledger.RevisionLine {
	lines := make([]ledger.RevisionLine, len(r.Details))
	for i, d := range r.Details {
		lines[i] = ledger.RevisionLine{
			DetailID:   d.DetailID,
			ItemID:     d.ItemID,
			Quantity:   ledger.NewQuantity(d.QuantityYard, d.QuantityRoll),
			UnitPrice:  d.UnitPrice,
			ReturnYard: d.ReturnYard,
			ReturnRoll: d.ReturnRoll,
		}
	}
	return lines
}

// toDomain converts the list filter
func (f TransactionListFilter) toDomain() (ledger.TransactionFilter, error) {
	out := ledger.TransactionFilter{
		Filter: shared.Filter{
			Page:     f.Page,
			PageSize: f.PageSize,
			Search:   f.Search,
			OrderBy:  f.OrderBy,
			OrderDir: f.OrderDir,
		},
		CounterpartyID: f.CounterpartyID,
	}
	from, err := shared.ParseDate(f.DateFrom)
	if err != nil {
		return out, err
	}
	to, err := shared.ParseDate(f.DateTo)
	if err != nil {
		return out, err
	}
	if !from.IsZero() {
		out.DateFrom = &from
	}
	if !to.IsZero() {
		out.DateTo = &to
	}
	return out, nil
}

// ToInstallmentResponses converts a schedule
func ToInstallmentResponses(list []ledger.Installment) []InstallmentResponse {
	out := make([]InstallmentResponse, len(list))
	for i, inst := range list {
		out[i] = InstallmentResponse{
			ID:            inst.ID,
			TransactionID: inst.TransactionID,
			DueDate:       shared.FormatDate(inst.DueDate),
			AmountPaid:    inst.AmountPaid,
			Paid:          inst.IsPaid(),
		}
	}
	return out
}

// ToTransactionResponse converts a transaction; names may be nil
func ToTransactionResponse(trx *ledger.TradeTransaction, itemNames map[uuid.UUID]string, counterpartyName string) TransactionResponse {
	details := make([]DetailResponse, len(trx.Details))
	for i, d := range trx.Details {
		details[i] = DetailResponse{
			ID:           d.ID,
			LineNo:       d.LineNo,
			ItemID:       d.ItemID,
			QuantityYard: d.Quantity.Yard,
			QuantityRoll: d.Quantity.Roll,
			UnitPrice:    d.UnitPrice,
			ReturnYard:   d.Returned.Yard,
			ReturnRoll:   d.Returned.Roll,
			LineAmount:   d.LineAmount(),
		}
		if d.HasItem() {
			details[i].ItemName = itemNames[*d.ItemID]
		}
	}
	return TransactionResponse{
		ID:               trx.ID,
		Direction:        trx.Direction.String(),
		TransactionDate:  shared.FormatDate(trx.TransactionDate),
		CounterpartyID:   trx.CounterpartyID,
		CounterpartyName: counterpartyName,
		PaymentStatus:    string(trx.PaymentStatus),
		DiscountType:     string(trx.Discount.Type),
		DiscountValue:    trx.Discount.Value,
		TaxType:          string(trx.Tax.Type),
		TaxValue:         trx.Tax.Value,
		Total:            trx.Total,
		Note:             trx.Note,
		CreatedBy:        trx.CreatedBy,
		Details:          details,
		Installments:     ToInstallmentResponses(trx.Installments),
		CreatedAt:        trx.CreatedAt,
		UpdatedAt:        trx.UpdatedAt,
	}
}

// ToMovementResponses converts journal entries
func ToMovementResponses(list []ledger.Movement) []MovementResponse {
	out := make([]MovementResponse, len(list))
	for i, m := range list {
		out[i] = MovementResponse{
			ID:            m.ID,
			Kind:          string(m.Kind),
			Operation:     string(m.Operation),
			TransactionID: m.TransactionID,
			DetailID:      m.DetailID,
			ItemID:        m.ItemID,
			QuantityYard:  m.Quantity.Yard,
			QuantityRoll:  m.Quantity.Roll,
			Amount:        m.Amount,
			Meta:          m.Meta,
			CreatedAt:     m.CreatedAt,
		}
	}
	return out
}
