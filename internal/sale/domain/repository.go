package domain

import (
	"context"

	"gorm.io/gorm"
)

// Filter narrows a ledger query. Zero values disable the corresponding
// constraint, except AllowedAgenCodes which always applies.
type Filter struct {
	Year             int
	Month            int
	Day              int
	AgenCode         string
	AllowedAgenCodes []string
	ExcludeComments  []string
}

type Repository interface {
	// Find returns ledger records matching the filter, ordered by sale date.
	Find(ctx context.Context, db *gorm.DB, f Filter) ([]Sale, error)

	// Insert persists a new record. A unique-key violation on id or id_stamp
	// is reported as ErrDuplicateSale.
	Insert(ctx context.Context, db *gorm.DB, sale *Sale) error
}
