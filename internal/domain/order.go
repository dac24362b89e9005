package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`

	// Extra holds any other fields the client sent, kept verbatim.
	Extra map[string]any `json:"-"`
}

func (a *ShippingAddress) UnmarshalJSON(b []byte) error {
	type plain ShippingAddress
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var all map[string]any
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	for _, k := range []string{"street", "city", "state", "zip", "country"} {
		delete(all, k)
	}
	p.Extra = nil
	if len(all) > 0 {
		p.Extra = all
	}
	*a = ShippingAddress(p)
	return nil
}

func (a ShippingAddress) MarshalJSON() ([]byte, error) {
	type plain ShippingAddress
	known, err := json.Marshal(plain(a))
	if err != nil || len(a.Extra) == 0 {
		return known, err
	}
	out := make(map[string]any, len(a.Extra)+5)
	for k, v := range a.Extra {
		out[k] = v
	}
	var fields map[string]any
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		out[k] = v
	}
	return json.Marshal(out)
}

// LineItem is the fixed shape of one line inside an order snapshot.
type LineItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderDetails is the point-in-time snapshot stored with an order.
type OrderDetails struct {
	Items           []LineItem      `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentID       string          `json:"payment_id"`
	OrderDate       string          `json:"order_date"`
}

type Order struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	OrderDetails OrderDetails    `json:"order_details"`
	CreatedAt    string          `json:"created_at"`
}

// Receipt is returned by a successful checkout.
type Receipt struct {
	OrderID           int64           `json:"order_id"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Status            string          `json:"status"`
	PaymentID         string          `json:"payment_id"`
	EstimatedDelivery string          `json:"estimated_delivery"`
}
