package repos

import (
	"context"

	"jewelbox/internal/domain"
)

// CategoryRepo reads the free-text category labels carried by products.
type CategoryRepo struct{ db *DB }

func NewCategoryRepo(db *DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]domain.CategoryCount, error) {
	out := []domain.CategoryCount{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT LOWER(category) AS category, COUNT(*) AS count
		FROM products
		WHERE category <> ''
		GROUP BY LOWER(category)
		ORDER BY LOWER(category)`)
	return out, err
}
