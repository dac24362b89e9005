package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrInsufficientStock is returned by Decrement when the guarded update matches no row.
var ErrInsufficientStock = errors.New("insufficient stock")

type InventoryRepo struct{ db *DB }

func NewInventoryRepo(db *DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Stock returns the current stock level of a product.
// If the product does not exist it returns sql.ErrNoRows.
func (r *InventoryRepo) Stock(ctx context.Context, productID int64) (int, error) {
	var qty int
	if err := r.db.GetContext(ctx, &qty, `SELECT stock FROM products WHERE id = ?`, productID); err != nil {
		return 0, err
	}
	return qty, nil
}

// Decrement subtracts "by" units inside tx if enough stock exists.
func (r *InventoryRepo) Decrement(ctx context.Context, tx *sqlx.Tx, productID int64, by int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - ?
		WHERE id = ? AND stock >= ?
	`, by, productID, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w for product %d", ErrInsufficientStock, productID)
	}
	return nil
}
