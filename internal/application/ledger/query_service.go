package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/shared"
)

// NameLookup resolves display names of items or parties
type NameLookup interface {
	FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// QueryService serves read-only views of transactions
type QueryService struct {
	transactions ledger.TradeTransactionRepository
	movements    ledger.MovementRepository
	items        NameLookup
	parties      NameLookup
}

// NewQueryService creates a new QueryService
func NewQueryService(
	transactions ledger.TradeTransactionRepository,
	movements ledger.MovementRepository,
	items NameLookup,
	parties NameLookup,
) *QueryService {
	return &QueryService{
		transactions: transactions,
		movements:    movements,
		items:        items,
		parties:      parties,
	}
}

// List returns a page of transactions with counterparty names
func (s *QueryService) List(ctx context.Context, direction ledger.Direction, filter TransactionListFilter) (shared.Paginated[TransactionListItemResponse], error) {
	domainFilter, err := filter.toDomain()
	if err != nil {
		return shared.Paginated[TransactionListItemResponse]{}, err
	}
	domainFilter.Filter = domainFilter.Filter.Normalize()

	list, total, err := s.transactions.FindAll(ctx, direction, domainFilter)
	if err != nil {
		return shared.Paginated[TransactionListItemResponse]{}, err
	}

	partyIDs := make([]uuid.UUID, 0, len(list))
	for _, trx := range list {
		if trx.CounterpartyID != nil {
			partyIDs = append(partyIDs, *trx.CounterpartyID)
		}
	}
	names, err := s.names(ctx, s.parties, partyIDs)
	if err != nil {
		return shared.Paginated[TransactionListItemResponse]{}, err
	}

	items := make([]TransactionListItemResponse, len(list))
	for i, trx := range list {
		items[i] = TransactionListItemResponse{
			ID:              trx.ID,
			TransactionDate: shared.FormatDate(trx.TransactionDate),
			CounterpartyID:  trx.CounterpartyID,
			PaymentStatus:   string(trx.PaymentStatus),
			Total:           trx.Total,
			Note:            trx.Note,
			LineCount:       len(trx.Details),
			CreatedAt:       trx.CreatedAt,
		}
		if trx.CounterpartyID != nil {
			items[i].CounterpartyName = names[*trx.CounterpartyID]
		}
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// Get returns one transaction with item and counterparty names
func (s *QueryService) Get(ctx context.Context, direction ledger.Direction, id uuid.UUID) (*TransactionResponse, error) {
	trx, err := s.transactions.FindByID(ctx, direction, id)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, 0, len(trx.Details))
	for _, d := range trx.Details {
		if d.HasItem() {
			itemIDs = append(itemIDs, *d.ItemID)
		}
	}
	itemNames, err := s.names(ctx, s.items, itemIDs)
	if err != nil {
		return nil, err
	}

	var counterparty string
	if trx.CounterpartyID != nil {
		partyNames, err := s.names(ctx, s.parties, []uuid.UUID{*trx.CounterpartyID})
		if err != nil {
			return nil, err
		}
		counterparty = partyNames[*trx.CounterpartyID]
	}

	resp := ToTransactionResponse(trx, itemNames, counterparty)
	return &resp, nil
}

// Movements lists the journal entries written for a transaction, oldest first.
// Entries outlive the transaction, so a deleted transaction still has a trail.
func (s *QueryService) Movements(ctx context.Context, id uuid.UUID) ([]MovementResponse, error) {
	list, err := s.movements.FindByTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToMovementResponses(list), nil
}

// ItemHistory lists the lines of one direction that reference an item
func (s *QueryService) ItemHistory(ctx context.Context, direction ledger.Direction, itemID uuid.UUID) ([]ItemHistoryResponse, error) {
	entries, err := s.transactions.ItemHistory(ctx, direction, itemID)
	if err != nil {
		return nil, err
	}
	out := make([]ItemHistoryResponse, len(entries))
	for i, e := range entries {
		out[i] = ItemHistoryResponse{
			TransactionID:   e.TransactionID,
			DetailID:        e.DetailID,
			TransactionDate: shared.FormatDate(e.TransactionDate),
			QuantityYard:    e.Quantity.Yard,
			QuantityRoll:    e.Quantity.Roll,
			ReturnYard:      e.Returned.Yard,
			ReturnRoll:      e.Returned.Roll,
			UnitPrice:       e.UnitPrice,
			LineAmount:      e.LineAmount,
		}
	}
	return out, nil
}

func (s *QueryService) names(ctx context.Context, lookup NameLookup, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if lookup == nil || len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}
	return lookup.FindNames(ctx, ids)
}
