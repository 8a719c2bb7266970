package product

import (
	"context"

	dom "example.com/catalog-dashboard/internal/domain/product"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	OwnerID     int64
	Name        string
	Description string
	Price       string
	Stock       int64
	IsPublic    bool
	CategoryIDs []int64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*dom.Product, error) {
	// Price is mandatory on creation.
	price, err := dom.ParsePrice(in.Price)
	if err != nil {
		return nil, err
	}

	owner := in.OwnerID
	p := &dom.Product{
		OwnerID:     &owner,
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		Stock:       in.Stock,
		IsPublic:    in.IsPublic,
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(in.CategoryIDs) > 0 {
		if err := s.repo.ReplaceCategories(ctx, created.ID, in.CategoryIDs); err != nil {
			return nil, err
		}
		created.CategoryIDs = in.CategoryIDs
	}
	return created, nil
}

type UpdateInput struct {
	OwnerID     int64
	ID          int64
	Name        string
	Description string
	Price       string
	Stock       int64
	IsPublic    bool
	// CategoryIDs nil leaves the category links untouched; an empty
	// slice clears them.
	CategoryIDs *[]int64
}

func (s *Service) Update(ctx context.Context, in UpdateInput) (*dom.Product, error) {
	existed, err := s.ownedByID(ctx, in.ID, in.OwnerID)
	if err != nil {
		return nil, err
	}

	// The edit form treats price as optional; a blank field means
	// 0.00, not an error.
	price, err := dom.ParsePriceDefault(in.Price)
	if err != nil {
		return nil, err
	}

	existed.Name = in.Name
	existed.Description = in.Description
	existed.Price = price
	existed.Stock = in.Stock
	existed.IsPublic = in.IsPublic

	updated, err := s.repo.Update(ctx, existed)
	if err != nil {
		return nil, err
	}
	if in.CategoryIDs != nil {
		if err := s.repo.ReplaceCategories(ctx, updated.ID, *in.CategoryIDs); err != nil {
			return nil, err
		}
		updated.CategoryIDs = *in.CategoryIDs
	}
	return updated, nil
}

// Delete removes an owned product and returns it so callers can name
// it in the confirmation message.
func (s *Service) Delete(ctx context.Context, ownerID, id int64) (*dom.Product, error) {
	existed, err := s.ownedByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return existed, nil
}

// Detail returns a product when it is public or owned by the
// requester; otherwise the requester is refused.
func (s *Service) Detail(ctx context.Context, requester *int64, id int64) (*dom.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsPublic {
		return p, nil
	}
	if requester != nil && p.OwnerID != nil && *p.OwnerID == *requester {
		return p, nil
	}
	return nil, dom.ErrProductForbidden
}

type ListResult struct {
	Products []*dom.Product
	Stats    dom.Stats
}

// Dashboard lists the owner's products under the given predicates and
// summarizes the exact same set.
func (s *Service) Dashboard(ctx context.Context, ownerID int64, preds []dom.Predicate) (*ListResult, error) {
	products, err := s.repo.List(ctx, dom.Scope{OwnerID: &ownerID}, preds)
	if err != nil {
		return nil, err
	}
	return &ListResult{Products: products, Stats: dom.ComputeStats(products)}, nil
}

// Catalog lists publicly visible products under the given predicates.
func (s *Service) Catalog(ctx context.Context, preds []dom.Predicate) (*ListResult, error) {
	products, err := s.repo.List(ctx, dom.Scope{PublicOnly: true}, preds)
	if err != nil {
		return nil, err
	}
	return &ListResult{Products: products, Stats: dom.ComputeStats(products)}, nil
}

// ownedByID loads a product and hides its existence from non-owners.
func (s *Service) ownedByID(ctx context.Context, id, ownerID int64) (*dom.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID == nil || *p.OwnerID != ownerID {
		return nil, dom.ErrProductNotFound
	}
	return p, nil
}
