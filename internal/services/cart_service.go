package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"jewelbox/internal/domain"
	"jewelbox/internal/repos"
	"jewelbox/internal/validate"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// checkLine applies the rules shared by Add and Update: a positive quantity,
// an existing product, and no more than the product's total stock.
func (s *CartService) checkLine(ctx context.Context, productID int64, qty int) error {
	if productID <= 0 {
		return invalid("Product ID is required")
	}
	if !validate.Qty(qty) {
		return invalid("Quantity must be a positive integer")
	}
	p, err := s.Prods.Get(ctx, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("Product not found")
	}
	if err != nil {
		return err
	}
	if qty > p.Stock {
		return invalid("Only %d items available in stock", p.Stock)
	}
	return nil
}

// Add merges qty into the user's row for the product, creating it if needed.
func (s *CartService) Add(ctx context.Context, userID, productID int64, qty int) (domain.CartEntry, error) {
	if err := s.checkLine(ctx, productID, qty); err != nil {
		return domain.CartEntry{}, err
	}
	return s.Carts.Add(ctx, userID, productID, qty)
}

// Update sets the row to exactly qty.
func (s *CartService) Update(ctx context.Context, userID, productID int64, qty int) (domain.CartEntry, error) {
	if err := s.checkLine(ctx, productID, qty); err != nil {
		return domain.CartEntry{}, err
	}
	return s.Carts.Set(ctx, userID, productID, qty)
}

func (s *CartService) Get(ctx context.Context, userID int64) (domain.Cart, error) {
	lines, err := s.Carts.Lines(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	return domain.Cart{Items: lines, Total: cartTotal(lines), ItemCount: len(lines)}, nil
}

func cartTotal(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}

func (s *CartService) Remove(ctx context.Context, userID, productID int64) error {
	if productID <= 0 {
		return invalid("Product ID is required")
	}
	n, err := s.Carts.Remove(ctx, userID, productID)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("Item not found in cart")
	}
	return nil
}

// Clear empties the cart and returns how many rows were removed.
func (s *CartService) Clear(ctx context.Context, userID int64) (int64, error) {
	return s.Carts.Clear(ctx, userID)
}
