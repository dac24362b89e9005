package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"jewelbox/internal/domain"
	"jewelbox/internal/events"
	applog "jewelbox/internal/log"
	"jewelbox/internal/payment"
	"jewelbox/internal/repos"
)

const (
	DefaultPaymentMethod = "mock"
	deliveryDays         = 7
)

type OrderService struct {
	Carts    *repos.CartRepo
	Orders   *repos.OrderRepo
	Payments payment.Processor
	Events   events.Publisher
	Now      func() time.Time
}

func NewOrderService(carts *repos.CartRepo, orders *repos.OrderRepo, pay payment.Processor, pub events.Publisher) *OrderService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &OrderService{Carts: carts, Orders: orders, Payments: pay, Events: pub, Now: time.Now}
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func checkAddress(a *domain.ShippingAddress) error {
	if a == nil || strings.TrimSpace(a.Street) == "" || strings.TrimSpace(a.City) == "" {
		return invalid("Complete shipping address is required")
	}
	return nil
}

// Checkout turns the user's cart into a completed order. The cart is left
// untouched unless the payment went through and the order was stored.
func (s *OrderService) Checkout(ctx context.Context, userID int64, addr *domain.ShippingAddress, method string) (domain.Receipt, error) {
	if err := checkAddress(addr); err != nil {
		return domain.Receipt{}, err
	}
	method = strings.TrimSpace(method)
	if method == "" {
		method = DefaultPaymentMethod
	}

	lines, err := s.Carts.Lines(ctx, userID)
	if err != nil {
		return domain.Receipt{}, err
	}
	if len(lines) == 0 {
		return domain.Receipt{}, invalid("Cart is empty")
	}
	for _, l := range lines {
		if l.Quantity > l.Stock {
			return domain.Receipt{}, invalid("Only %d of %s available in stock", l.Stock, l.Name)
		}
	}

	total := cartTotal(lines)
	res, err := s.Payments.Process(ctx, total, method)
	if err != nil {
		return domain.Receipt{}, err
	}
	if !res.Success {
		return domain.Receipt{}, &Error{Kind: KindPayment, Message: "Payment processing failed", Detail: res.Error}
	}

	now := s.now().UTC()
	details := domain.OrderDetails{
		Items:           snapshot(lines),
		ShippingAddress: *addr,
		PaymentMethod:   method,
		PaymentID:       res.PaymentID,
		OrderDate:       now.Format(time.RFC3339),
	}
	order, err := s.Orders.Place(ctx, userID, total, domain.OrderStatusCompleted, details)
	if errors.Is(err, repos.ErrInsufficientStock) {
		applog.Error(nil, "order.stock_race", err, map[string]any{"user_id": userID, "payment_id": res.PaymentID})
		return domain.Receipt{}, newError(KindConflict, "Stock changed during checkout, please review your cart")
	}
	if err != nil {
		return domain.Receipt{}, err
	}

	if err := s.Events.PublishOrder(ctx, events.NewOrderEvent(order)); err != nil {
		applog.Error(nil, "order.event_failed", err, map[string]any{"order_id": order.ID})
	}

	return domain.Receipt{
		OrderID:           order.ID,
		TotalAmount:       order.TotalAmount,
		Status:            order.Status,
		PaymentID:         res.PaymentID,
		EstimatedDelivery: now.AddDate(0, 0, deliveryDays).Format(time.DateOnly),
	}, nil
}

func snapshot(lines []domain.CartLine) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.LineItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal().Round(2),
		})
	}
	return items
}

func (s *OrderService) List(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

func (s *OrderService) Get(ctx context.Context, userID, orderID int64) (domain.Order, error) {
	if orderID <= 0 {
		return domain.Order{}, invalid("Valid order ID is required")
	}
	o, err := s.Orders.GetForUser(ctx, userID, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, notFound("Order not found")
	}
	return o, err
}
