// Package repository defines the receipt points store interface and errors.
package repository

import "context"

// Store maps generated receipt identifiers to computed point totals.
// Records are written once at insert time and never mutated or deleted.
type Store interface {
	// Insert stores points under a freshly generated identifier and
	// returns that identifier.
	Insert(ctx context.Context, points int64) (string, error)

	// Points returns the stored total for id.
	// Returns ErrNotFound if the identifier is unknown.
	Points(ctx context.Context, id string) (int64, error)

	// Count returns the number of receipts stored.
	Count(ctx context.Context) int
}
