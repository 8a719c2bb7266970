package product

import "context"

type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, p *Product) (*Product, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	// List returns products matching the scope and all predicates,
	// newest first.
	List(ctx context.Context, scope Scope, preds []Predicate) ([]*Product, error)
	// ReplaceCategories rewrites a product's category links.
	ReplaceCategories(ctx context.Context, productID int64, categoryIDs []int64) error
}
