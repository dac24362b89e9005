package handlers_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"

	"jewelbox/internal/domain"
	"jewelbox/internal/events"
)

var address = map[string]any{
	"street": "1 Main St", "city": "College Park", "state": "MD", "zip": "20742", "country": "US",
}

func TestCheckoutPlacesOrder(t *testing.T) {
	scfg := sarama.NewConfig()
	scfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, scfg)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev events.OrderEvent
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		if ev.Type != events.OrderCompleted || ev.TotalAmount.StringFixed(2) != "599.98" {
			return fmt.Errorf("unexpected event %+v", ev)
		}
		return nil
	})
	pub := events.NewKafkaWithProducer(producer, "orders")
	t.Cleanup(func() { _ = pub.Close() })

	e := newEnv(t, pub, nil)
	s := e.signup(t, "hank@example.com")
	pearl := e.productID(t, "Pearl Necklace")

	if code, _ := e.call(t, "POST", "/api/cart/add", map[string]any{"product_id": pearl, "quantity": 2}, s.Token); code != 201 {
		t.Fatalf("add: %d", code)
	}

	code, r := e.call(t, "POST", "/api/orders/checkout", map[string]any{"shipping_address": address}, s.Token)
	if code != 201 || r.Message != "Order placed successfully" {
		t.Fatalf("checkout: %d %q %s", code, r.Message, r.Error)
	}
	receipt := decode[domain.Receipt](t, r)
	if receipt.TotalAmount.StringFixed(2) != "599.98" || receipt.Status != domain.OrderStatusCompleted ||
		receipt.PaymentID == "" || len(receipt.EstimatedDelivery) != len("2006-01-02") {
		t.Fatalf("receipt: %+v", receipt)
	}

	_, r = e.call(t, "GET", "/api/cart", nil, s.Token)
	if c := decode[domain.Cart](t, r); c.ItemCount != 0 {
		t.Fatalf("cart not cleared: %+v", c)
	}

	code, r = e.call(t, "GET", "/api/orders", nil, s.Token)
	list := decode[[]domain.Order](t, r)
	if code != 200 || len(list) != 1 {
		t.Fatalf("orders: %d %s", code, r.Data)
	}
	o := list[0]
	if o.OrderDetails.PaymentMethod != "mock" || len(o.OrderDetails.Items) != 1 ||
		o.OrderDetails.Items[0].Subtotal.StringFixed(2) != "599.98" || o.OrderDetails.ShippingAddress.City != "College Park" {
		t.Fatalf("order snapshot: %+v", o)
	}

	code, r = e.call(t, "GET", fmt.Sprintf("/api/orders/%d", receipt.OrderID), nil, s.Token)
	if code != 200 || decode[domain.Order](t, r).ID != receipt.OrderID {
		t.Fatalf("get order: %d %s", code, r.Data)
	}

	other := e.signup(t, "ivy@example.com")
	code, r = e.call(t, "GET", fmt.Sprintf("/api/orders/%d", receipt.OrderID), nil, other.Token)
	if code != 404 || r.Message != "Order not found" {
		t.Fatalf("foreign order: %d %q", code, r.Message)
	}
	code, r = e.call(t, "GET", "/api/orders/abc", nil, s.Token)
	if code != 400 || r.Message != "Valid order ID is required" {
		t.Fatalf("bad order id: %d %q", code, r.Message)
	}

	code, r = e.call(t, "GET", fmt.Sprintf("/api/products/%d", pearl), nil, "")
	if p := decode[domain.Product](t, r); p.Stock != 8 {
		t.Fatalf("stock after checkout: %d", p.Stock)
	}
}

func TestCheckoutKeepsAddressExtras(t *testing.T) {
	e := newEnv(t, nil, nil)
	s := e.signup(t, "joan@example.com")
	ring := e.productID(t, "Diamond Engagement Ring")
	if code, _ := e.call(t, "POST", "/api/cart/add", map[string]any{"product_id": ring, "quantity": 1}, s.Token); code != 201 {
		t.Fatalf("add: %d", code)
	}

	withPhone := map[string]any{"phone": "555-0100"}
	for k, v := range address {
		withPhone[k] = v
	}
	code, r := e.call(t, "POST", "/api/orders/checkout", map[string]any{"shipping_address": withPhone}, s.Token)
	if code != 201 {
		t.Fatalf("checkout: %d %q %s", code, r.Message, r.Error)
	}

	_, r = e.call(t, "GET", "/api/orders", nil, s.Token)
	var raw []struct {
		OrderDetails struct {
			ShippingAddress map[string]any `json:"shipping_address"`
		} `json:"order_details"`
	}
	if err := json.Unmarshal(r.Data, &raw); err != nil || len(raw) != 1 {
		t.Fatalf("orders: %v %s", err, r.Data)
	}
	if got := raw[0].OrderDetails.ShippingAddress; got["phone"] != "555-0100" || got["city"] != "College Park" {
		t.Fatalf("address: %v", got)
	}
}

func TestCheckoutDeclined(t *testing.T) {
	e := newEnv(t, nil, nil)
	e.pay.Succeed = false
	s := e.signup(t, "jack@example.com")
	ring := e.productID(t, "Diamond Engagement Ring")
	e.call(t, "POST", "/api/cart/add", map[string]any{"product_id": ring}, s.Token)

	code, r := e.call(t, "POST", "/api/orders/checkout", map[string]any{"shipping_address": address, "payment_method": "card"}, s.Token)
	if code != 400 || r.Message != "Payment processing failed" || r.Error != "Payment declined by stub processor" {
		t.Fatalf("declined: %d %q %q", code, r.Message, r.Error)
	}

	_, r = e.call(t, "GET", "/api/orders", nil, s.Token)
	if string(r.Data) != "[]" {
		t.Fatalf("declined checkout created orders: %s", r.Data)
	}
	_, r = e.call(t, "GET", "/api/cart", nil, s.Token)
	if c := decode[domain.Cart](t, r); c.ItemCount != 1 {
		t.Fatalf("declined checkout touched the cart: %+v", c)
	}
}

func TestCheckoutRejections(t *testing.T) {
	e := newEnv(t, nil, nil)
	s := e.signup(t, "kim@example.com")

	cases := []struct {
		body any
		msg  string
	}{
		{map[string]any{}, "Complete shipping address is required"},
		{map[string]any{"shipping_address": map[string]any{"street": "1 Main St"}}, "Complete shipping address is required"},
		{map[string]any{"shipping_address": address}, "Cart is empty"},
	}
	for _, tc := range cases {
		code, r := e.call(t, "POST", "/api/orders/checkout", tc.body, s.Token)
		if code != 400 || r.Message != tc.msg {
			t.Fatalf("%v: %d %q", tc.body, code, r.Message)
		}
	}
	if e.pay.Calls != 0 {
		t.Fatalf("payment called %d times for rejected checkouts", e.pay.Calls)
	}
}
