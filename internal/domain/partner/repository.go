package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/tekstil/ledger/internal/domain/shared"
)

// PartyRepository defines the interface for customer and supplier persistence
type PartyRepository interface {
	// FindByID finds a party of the given kind
	FindByID(ctx context.Context, kind Kind, id uuid.UUID) (*Party, error)

	// FindAll lists parties of a kind, searching name and phone
	FindAll(ctx context.Context, kind Kind, filter shared.Filter) ([]Party, int64, error)

	// FindNames returns display names keyed by party ID
	FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)

	Create(ctx context.Context, party *Party) error
	Save(ctx context.Context, party *Party) error
	Delete(ctx context.Context, id uuid.UUID) error
}
