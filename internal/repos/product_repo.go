package repos

import (
	"context"

	"jewelbox/internal/domain"
)

type ProductRepo struct{ db *DB }

func NewProductRepo(db *DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, description, price, image, category, stock, COALESCE(created_at, '') AS created_at`

// All returns the whole catalog, newest first.
func (r *ProductRepo) All(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+productCols+`
		FROM products
		ORDER BY created_at DESC, id DESC`)
	return out, err
}

// Get returns sql.ErrNoRows when the product does not exist.
func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}
