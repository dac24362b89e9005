package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"jewelbox/internal/domain"
	"jewelbox/internal/repos"
	"jewelbox/internal/validate"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.Prods.All(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.Prods.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, notFound("Product not found")
	}
	return p, err
}

// ByCategory matches the category name case-insensitively.
func (s *CatalogService) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	all, err := s.Prods.All(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Product{}
	for _, p := range all {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Search returns products whose name, description or category contains q,
// ignoring case. q is taken literally; path decoding is the caller's job.
func (s *CatalogService) Search(ctx context.Context, q string) ([]domain.Product, error) {
	q, ok := validate.Term(q)
	if !ok {
		return nil, invalid("Search query is required")
	}
	all, err := s.Prods.All(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	out := []domain.Product{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	return s.Cats.List(ctx)
}
