package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tekstil/ledger/internal/domain/shared"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// translateError maps driver and GORM errors onto domain errors.
// notFound is returned for gorm.ErrRecordNotFound; other errors pass through wrapped.
func translateError(err error, notFound *shared.DomainError) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if notFound != nil {
			return notFound
		}
		return shared.ErrNotFound
	}
	if isUniqueViolation(err) {
		return shared.ErrAlreadyExists
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// likePattern wraps a search term for a case-insensitive LIKE match
func likePattern(search string) string {
	return "%" + search + "%"
}
