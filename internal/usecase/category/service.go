package category

import (
	"context"
	"regexp"
	"strings"

	dom "example.com/catalog-dashboard/internal/domain/category"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, c *dom.Category) (*dom.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, dom.ErrCategoryInvalidName
	}
	if !slugPattern.MatchString(c.Slug) {
		return nil, dom.ErrCategoryInvalidSlug
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, c *dom.Category) (*dom.Category, error) {
	existed, err := s.repo.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	if c.Name != "" {
		existed.Name = c.Name
	}
	if c.Slug != "" {
		if !slugPattern.MatchString(c.Slug) {
			return nil, dom.ErrCategoryInvalidSlug
		}
		existed.Slug = c.Slug
	}
	if c.Description != "" {
		existed.Description = c.Description
	}
	if c.Color != "" {
		existed.Color = c.Color
	}

	return s.repo.Update(ctx, existed)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*dom.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*dom.Category, error) {
	return s.repo.List(ctx)
}
