package session

import (
	"context"

	domproduct "example.com/catalog-dashboard/internal/domain/product"
)

// Store is the per-session state backing sticky dashboard filters and
// presentation preferences. Implementations scope every key to the
// given session identity.
type Store interface {
	// Filters returns the stored filter state, or nil when the
	// session has none.
	Filters(ctx context.Context, sid string) (*domproduct.FilterState, error)
	SetFilters(ctx context.Context, sid string, state domproduct.FilterState) error
	ClearFilters(ctx context.Context, sid string) error

	// Theme returns the session theme, empty when unset.
	Theme(ctx context.Context, sid string) (string, error)
	SetTheme(ctx context.Context, sid, theme string) error

	ViewMode(ctx context.Context, sid string) (string, error)
	SetViewMode(ctx context.Context, sid, mode string) error

	// Flush drops every key held for the session.
	Flush(ctx context.Context, sid string) error
}
