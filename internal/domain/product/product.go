package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. OwnerID is nil for ownerless rows; a
// product is publicly readable when IsPublic is set or the requester
// owns it.
type Product struct {
	ID          int64
	OwnerID     *int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
	IsPublic    bool
	CategoryIDs []int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Scope restricts a listing before any filter predicate is applied:
// the dashboard lists only the owner's products, the public catalog
// only visible ones.
type Scope struct {
	OwnerID    *int64
	PublicOnly bool
}

// Stats summarize a filtered listing. They are computed over the
// exact product set handed back to the caller, never a separate
// query.
type Stats struct {
	TotalCount int64
	TotalStock int64
	TotalValue decimal.Decimal
}

func ComputeStats(products []*Product) Stats {
	stats := Stats{TotalValue: decimal.Zero}
	for _, p := range products {
		stats.TotalCount++
		stats.TotalStock += p.Stock
		stats.TotalValue = stats.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(p.Stock)))
	}
	return stats
}
