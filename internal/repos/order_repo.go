package repos

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"jewelbox/internal/domain"
)

type OrderRepo struct {
	db  *DB
	inv *InventoryRepo
}

func NewOrderRepo(db *DB) *OrderRepo { return &OrderRepo{db: db, inv: NewInventoryRepo(db)} }

type orderRow struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Status      string          `db:"status"`
	Details     string          `db:"order_details"`
	CreatedAt   string          `db:"created_at"`
}

func (o orderRow) order() (domain.Order, error) {
	out := domain.Order{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
	}
	if err := json.Unmarshal([]byte(o.Details), &out.OrderDetails); err != nil {
		return domain.Order{}, fmt.Errorf("order %d details: %w", o.ID, err)
	}
	return out, nil
}

const orderCols = `id, user_id, total_amount, status, order_details, COALESCE(created_at, '') AS created_at`

// Place persists the order, takes its quantities out of stock and empties the
// user's cart. All three happen in one transaction.
func (r *OrderRepo) Place(ctx context.Context, userID int64, total decimal.Decimal, status string, details domain.OrderDetails) (domain.Order, error) {
	blob, err := json.Marshal(details)
	if err != nil {
		return domain.Order{}, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders(user_id, total_amount, status, order_details)
		VALUES(?, ?, ?, ?)
	`, userID, total.StringFixed(2), status, string(blob))
	if err != nil {
		return domain.Order{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Order{}, err
	}

	for _, it := range details.Items {
		if err := r.inv.Decrement(ctx, tx, it.ProductID, it.Quantity); err != nil {
			return domain.Order{}, err
		}
	}
	if _, err := clearCart(ctx, tx, userID); err != nil {
		return domain.Order{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Order{}, err
	}

	return domain.Order{
		ID:           id,
		UserID:       userID,
		TotalAmount:  total,
		Status:       status,
		OrderDetails: details,
	}, nil
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT `+orderCols+`
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`, userID); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.order()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// GetForUser returns sql.ErrNoRows when the order is absent or owned by someone else.
func (r *OrderRepo) GetForUser(ctx context.Context, userID, orderID int64) (domain.Order, error) {
	var row orderRow
	if err := r.db.GetContext(ctx, &row, `
		SELECT `+orderCols+`
		FROM orders
		WHERE id = ? AND user_id = ?`, orderID, userID); err != nil {
		return domain.Order{}, err
	}
	return row.order()
}
