package domain

import "github.com/shopspring/decimal"

func init() {
	// Prices and totals go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type User struct {
	ID        int64  `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	Name      string `db:"name" json:"name"`
	Hash      string `db:"password" json:"-"`
	CreatedAt string `db:"created_at" json:"created_at,omitempty"`
}

// Identity is what a verified token carries.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type Product struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Image       string          `db:"image" json:"image"`
	Category    string          `db:"category" json:"category"`
	Stock       int             `db:"stock" json:"stock"`
	CreatedAt   string          `db:"created_at" json:"created_at"`
}

type CategoryCount struct {
	Category string `db:"category" json:"category"`
	Count    int    `db:"count" json:"count"`
}
