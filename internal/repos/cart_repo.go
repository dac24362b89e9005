package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"jewelbox/internal/domain"
)

type CartRepo struct{ db *DB }

func NewCartRepo(db *DB) *CartRepo { return &CartRepo{db: db} }

// Add inserts the (user, product) row or increments its quantity in one statement,
// then returns the resulting row.
func (r *CartRepo) Add(ctx context.Context, userID, productID int64, qty int) (domain.CartEntry, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.CartEntry{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, r.db.dialect.cartAdd, userID, productID, qty); err != nil {
		return domain.CartEntry{}, err
	}
	e, err := entry(ctx, tx, userID, productID)
	if err != nil {
		return domain.CartEntry{}, err
	}
	return e, tx.Commit()
}

// Set replaces whatever row exists for the pair with one holding exactly qty.
func (r *CartRepo) Set(ctx context.Context, userID, productID int64, qty int) (domain.CartEntry, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.CartEntry{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart WHERE user_id = ? AND product_id = ?`, userID, productID); err != nil {
		return domain.CartEntry{}, err
	}
	if _, err := tx.ExecContext(ctx, r.db.dialect.cartAdd, userID, productID, qty); err != nil {
		return domain.CartEntry{}, err
	}
	e, err := entry(ctx, tx, userID, productID)
	if err != nil {
		return domain.CartEntry{}, err
	}
	return e, tx.Commit()
}

func entry(ctx context.Context, tx *sqlx.Tx, userID, productID int64) (domain.CartEntry, error) {
	var e domain.CartEntry
	err := tx.GetContext(ctx, &e, `
		SELECT id, user_id, product_id, quantity
		FROM cart WHERE user_id = ? AND product_id = ?`, userID, productID)
	return e, err
}

// Lines returns the user's cart rows joined with product name, price and image.
func (r *CartRepo) Lines(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	out := []domain.CartLine{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT c.id, c.quantity, p.id AS product_id, p.name, p.price, p.image, p.stock
		FROM cart c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = ?
		ORDER BY c.id`, userID)
	return out, err
}

// Remove deletes the pair's row and reports how many rows went away.
func (r *CartRepo) Remove(ctx context.Context, userID, productID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart WHERE user_id = ? AND product_id = ?`, userID, productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *CartRepo) Clear(ctx context.Context, userID int64) (int64, error) {
	return clearCart(ctx, r.db, userID)
}

func clearCart(ctx context.Context, ex sqlx.ExecerContext, userID int64) (int64, error) {
	res, err := ex.ExecContext(ctx, `DELETE FROM cart WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
