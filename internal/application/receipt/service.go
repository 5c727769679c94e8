// Package receipt builds printable receipts for posted transactions.
package receipt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appledger "github.com/tekstil/ledger/internal/application/ledger"
	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/logger"
	"github.com/tekstil/ledger/internal/infrastructure/printing"
	"github.com/tekstil/ledger/internal/infrastructure/telemetry"
)

const contentTypePDF = "application/pdf"

// ErrPDFUnavailable is returned when no PDF renderer is configured
var ErrPDFUnavailable = shared.NewDomainError("RECEIPT_UNAVAILABLE", "PDF receipts are not enabled")

// TransactionReader loads a transaction with display names resolved
type TransactionReader interface {
	Get(ctx context.Context, direction ledger.Direction, id uuid.UUID) (*appledger.TransactionResponse, error)
}

// TemplateRenderer fills a named HTML template
type TemplateRenderer interface {
	Render(name string, data any) ([]byte, error)
}

// Archive stores rendered receipts and hands out download links
type Archive interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// Document is a rendered PDF receipt
type Document struct {
	Data     []byte
	FileName string
	// URL is set when the receipt was archived
	URL       string
	ExpiresAt time.Time
}

// Service renders receipts as HTML or PDF
type Service struct {
	transactions TransactionReader
	templates    TemplateRenderer
	pdf          printing.PDFRenderer
	archive      Archive
	storeName    string
	now          func() time.Time
}

// Option configures the Service
type Option func(*Service)

// WithPDFRenderer enables PDF output
func WithPDFRenderer(r printing.PDFRenderer) Option {
	return func(s *Service) {
		s.pdf = r
	}
}

// WithArchive uploads every rendered PDF
func WithArchive(a Archive) Option {
	return func(s *Service) {
		s.archive = a
	}
}

// WithStoreName sets the header printed on receipts
func WithStoreName(name string) Option {
	return func(s *Service) {
		s.storeName = name
	}
}

// WithClock overrides the print timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a receipt Service
func NewService(transactions TransactionReader, templates TemplateRenderer, opts ...Option) *Service {
	s := &Service{
		transactions: transactions,
		templates:    templates,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Data builds the receipt view of a transaction
func (s *Service) Data(ctx context.Context, direction ledger.Direction, id uuid.UUID) (*printing.ReceiptData, error) {
	trx, err := s.transactions.Get(ctx, direction, id)
	if err != nil {
		return nil, err
	}
	return s.build(direction, trx), nil
}

// HTML renders the receipt for the given paper size
func (s *Service) HTML(ctx context.Context, direction ledger.Direction, id uuid.UUID, paper printing.PaperSize) ([]byte, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "receipt", "html",
		telemetry.SpanAttrTransactionID, id.String(),
		telemetry.SpanAttrDirection, direction.String(),
	)
	defer span.End()

	html, err := s.renderHTML(ctx, direction, id, paper)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return html, nil
}

// PDF renders the receipt to PDF and archives it when an archive is set.
// A failed upload is logged and the PDF is still returned.
func (s *Service) PDF(ctx context.Context, direction ledger.Direction, id uuid.UUID, paper printing.PaperSize) (*Document, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "receipt", "pdf",
		telemetry.SpanAttrTransactionID, id.String(),
		telemetry.SpanAttrDirection, direction.String(),
	)
	defer span.End()

	if s.pdf == nil {
		return nil, ErrPDFUnavailable
	}

	html, err := s.renderHTML(ctx, direction, id, paper)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result, err := s.pdf.Render(ctx, &printing.RenderRequest{
		HTML:      string(html),
		PaperSize: paper,
		Title:     receiptNumber(id),
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	doc := &Document{
		Data:     result.PDFData,
		FileName: fmt.Sprintf("receipt-%s-%s.pdf", direction, receiptNumber(id)),
	}
	if s.archive != nil {
		s.store(ctx, direction, id, paper, doc)
	}
	return doc, nil
}

func (s *Service) renderHTML(ctx context.Context, direction ledger.Direction, id uuid.UUID, paper printing.PaperSize) ([]byte, error) {
	if _, ok := printing.ParsePaperSize(string(paper)); !ok {
		return nil, shared.ErrInvalidInput.WithMessage("paper must be thermal or a5")
	}
	data, err := s.Data(ctx, direction, id)
	if err != nil {
		return nil, err
	}
	html, err := s.templates.Render(printing.TemplateFor(paper), data)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return html, nil
}

func (s *Service) store(ctx context.Context, direction ledger.Direction, id uuid.UUID, paper printing.PaperSize, doc *Document) {
	key := ArchiveKey(direction, id, paper, s.now())
	log := logger.L(ctx).With(zap.String("transaction_id", id.String()), zap.String("key", key))

	if err := s.archive.Upload(ctx, key, doc.Data, contentTypePDF); err != nil {
		log.Warn("Receipt archive upload failed", zap.Error(err))
		return
	}
	url, expiresAt, err := s.archive.GenerateDownloadURL(ctx, key, 0)
	if err != nil {
		log.Warn("Receipt download URL failed", zap.Error(err))
		return
	}
	doc.URL = url
	doc.ExpiresAt = expiresAt
	log.Info("Receipt archived", zap.Int("bytes", len(doc.Data)))
}

// ArchiveKey is the object key of an archived receipt. Each print gets its
// own key so reprints after an edit never overwrite an earlier copy.
func ArchiveKey(direction ledger.Direction, id uuid.UUID, paper printing.PaperSize, at time.Time) string {
	at = at.UTC()
	return fmt.Sprintf("receipts/%s/%s/%s/%s-%s.pdf",
		direction, at.Format("2006/01"), id, at.Format("20060102T150405"), paper)
}

func (s *Service) build(direction ledger.Direction, trx *appledger.TransactionResponse) *printing.ReceiptData {
	data := &printing.ReceiptData{
		StoreName:         s.storeName,
		Title:             titleOf(direction),
		Number:            receiptNumber(trx.ID),
		Date:              trx.TransactionDate,
		CounterpartyLabel: counterpartyLabel(direction),
		Counterparty:      trx.CounterpartyName,
		PaymentLabel:      paymentLabel(ledger.PaymentStatus(trx.PaymentStatus)),
		Total:             trx.Total,
		Note:              trx.Note,
		PrintedAt:         s.now(),
	}

	subtotal, returned := decimal.Zero, decimal.Zero
	data.Lines = make([]printing.ReceiptLine, len(trx.Details))
	for i, d := range trx.Details {
		name := d.ItemName
		if name == "" {
			name = "-"
		}
		hasReturn := !d.ReturnYard.IsZero() || !d.ReturnRoll.IsZero()
		data.Lines[i] = printing.ReceiptLine{
			No:         i + 1,
			ItemName:   name,
			Yard:       d.QuantityYard,
			Roll:       d.QuantityRoll,
			UnitPrice:  d.UnitPrice,
			Amount:     d.LineAmount,
			ReturnYard: d.ReturnYard,
			ReturnRoll: d.ReturnRoll,
			HasReturn:  hasReturn,
		}
		subtotal = subtotal.Add(d.LineAmount)
		returned = returned.Add(d.ReturnYard.Mul(d.UnitPrice))
	}

	totals := ledger.ComputeTotals(subtotal,
		ledger.NewAdjustment(trx.DiscountType, trx.DiscountValue),
		ledger.NewAdjustment(trx.TaxType, trx.TaxValue),
	)
	data.Subtotal = totals.Subtotal
	data.DiscountAmount = totals.DiscountAmount
	data.TaxAmount = totals.TaxAmount
	data.ReturnedAmount = returned

	data.PaidAmount = decimal.Zero
	data.Installments = make([]printing.ReceiptInstallment, len(trx.Installments))
	for i, inst := range trx.Installments {
		data.Installments[i] = printing.ReceiptInstallment{
			No:         i + 1,
			DueDate:    inst.DueDate,
			AmountPaid: inst.AmountPaid,
			Paid:       inst.Paid,
		}
		data.PaidAmount = data.PaidAmount.Add(inst.AmountPaid)
	}
	return data
}

func receiptNumber(id uuid.UUID) string {
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:10])
}

func titleOf(direction ledger.Direction) string {
	if direction == ledger.DirectionInbound {
		return "Nota Pembelian"
	}
	return "Nota Penjualan"
}

func counterpartyLabel(direction ledger.Direction) string {
	if direction == ledger.DirectionInbound {
		return "Pemasok"
	}
	return "Pelanggan"
}

func paymentLabel(status ledger.PaymentStatus) string {
	if status.IsInstallment() {
		return "Cicilan"
	}
	return "Tunai"
}
