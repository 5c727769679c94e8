package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tekstil/ledger/internal/domain/ledger"
	"github.com/tekstil/ledger/internal/domain/partner"
	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/logger"
)

// PartyUsage tells whether any transaction of a direction references a party
type PartyUsage interface {
	ExistsForCounterparty(ctx context.Context, direction ledger.Direction, partyID uuid.UUID) (bool, error)
}

// PartyService handles customer and supplier operations. The kind is fixed
// by the caller, so one service serves both route groups.
type PartyService struct {
	partyRepo partner.PartyRepository
	usage     PartyUsage
}

// NewPartyService creates a new PartyService
func NewPartyService(partyRepo partner.PartyRepository, usage PartyUsage) *PartyService {
	return &PartyService{
		partyRepo: partyRepo,
		usage:     usage,
	}
}

// Create creates a new party of the given kind
func (s *PartyService) Create(ctx context.Context, kind partner.Kind, req CreatePartyRequest) (*PartyResponse, error) {
	party, err := partner.NewParty(kind, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.partyRepo.Create(ctx, party); err != nil {
		return nil, err
	}

	response := ToPartyResponse(party)
	return &response, nil
}

// GetByID retrieves a party by ID
func (s *PartyService) GetByID(ctx context.Context, kind partner.Kind, id uuid.UUID) (*PartyResponse, error) {
	party, err := s.partyRepo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	response := ToPartyResponse(party)
	return &response, nil
}

// List retrieves a page of parties, searching name and phone
func (s *PartyService) List(ctx context.Context, kind partner.Kind, filter PartyListFilter) (shared.Paginated[PartyResponse], error) {
	domainFilter := filter.toDomain()
	parties, total, err := s.partyRepo.FindAll(ctx, kind, domainFilter)
	if err != nil {
		return shared.Paginated[PartyResponse]{}, err
	}
	return shared.NewPaginated(ToPartyResponses(parties), total, domainFilter.Page, domainFilter.PageSize), nil
}

// Update changes name and phone
func (s *PartyService) Update(ctx context.Context, kind partner.Kind, id uuid.UUID, req UpdatePartyRequest) (*PartyResponse, error) {
	party, err := s.partyRepo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	name, phone := party.Name, party.Phone
	if req.Name != nil {
		name = *req.Name
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if err := party.Update(name, phone); err != nil {
		return nil, err
	}
	if err := s.partyRepo.Save(ctx, party); err != nil {
		return nil, err
	}

	response := ToPartyResponse(party)
	return &response, nil
}

// Delete removes a party no transaction references
func (s *PartyService) Delete(ctx context.Context, kind partner.Kind, id uuid.UUID) error {
	if _, err := s.partyRepo.FindByID(ctx, kind, id); err != nil {
		return err
	}

	used, err := s.referenced(ctx, id)
	if err != nil {
		return err
	}
	if used {
		logger.L(ctx).Info("Party delete refused",
			zap.String("party_id", id.String()),
			zap.String("kind", string(kind)),
		)
		return partner.ErrPartyInUse
	}
	return s.partyRepo.Delete(ctx, id)
}

// referenced reports whether a transaction of either direction points at the party
func (s *PartyService) referenced(ctx context.Context, id uuid.UUID) (bool, error) {
	for _, direction := range []ledger.Direction{ledger.DirectionOutbound, ledger.DirectionInbound} {
		used, err := s.usage.ExistsForCounterparty(ctx, direction, id)
		if err != nil || used {
			return used, err
		}
	}
	return false, nil
}
