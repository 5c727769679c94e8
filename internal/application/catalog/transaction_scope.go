package catalog

import (
	"context"

	"github.com/tekstil/ledger/internal/domain/catalog"
	"github.com/tekstil/ledger/internal/domain/ledger"
)

// TransactionScope runs a stock correction as one atomic unit
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to the stores a stock correction touches
type TransactionalRepositories interface {
	Items() catalog.ItemRepository
	Movements() ledger.MovementRepository
}
