package domain

import "github.com/shopspring/decimal"

// CartEntry is one (user, product) row. There is never more than one per pair.
type CartEntry struct {
	ID        int64 `db:"id" json:"id"`
	UserID    int64 `db:"user_id" json:"user_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Quantity  int   `db:"quantity" json:"quantity"`
}

// CartLine is a cart row joined with the product it points at.
type CartLine struct {
	ID        int64           `db:"id" json:"id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Name      string          `db:"name" json:"name"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Image     string          `db:"image" json:"image"`
	Stock     int             `db:"stock" json:"-"`
	Quantity  int             `db:"quantity" json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	Items     []CartLine      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}
