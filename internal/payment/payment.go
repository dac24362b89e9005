// Package payment holds the checkout's external payment boundary and a mock
// gateway that stands in for a real one.
package payment

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Result is what a gateway reports back. A declined payment is a Result with
// Success == false, not an error; errors mean the call itself did not complete.
type Result struct {
	Success     bool            `json:"success"`
	PaymentID   string          `json:"payment_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Error       string          `json:"error,omitempty"`
	ProcessedAt time.Time       `json:"processed_at"`
}

type Processor interface {
	Process(ctx context.Context, amount decimal.Decimal, method string) (Result, error)
}

const (
	DefaultSuccessRate = 0.95
	DefaultLatency     = time.Second
)

// Mock approves payments at random with probability SuccessRate after a fixed Latency.
type Mock struct {
	SuccessRate float64
	Latency     time.Duration
	Roll        func() float64
}

func NewMock(successRate float64, latency time.Duration) *Mock {
	return &Mock{SuccessRate: successRate, Latency: latency, Roll: rand.Float64}
}

func (m *Mock) Process(ctx context.Context, amount decimal.Decimal, method string) (Result, error) {
	if m.Latency > 0 {
		t := time.NewTimer(m.Latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-t.C:
		}
	}

	res := Result{Amount: amount, Method: method, ProcessedAt: time.Now().UTC()}
	if !amount.IsPositive() {
		res.Error = "Invalid amount"
		return res, nil
	}
	roll := m.Roll
	if roll == nil {
		roll = rand.Float64
	}
	if roll() >= m.SuccessRate {
		res.Error = "Payment declined by mock processor"
		return res, nil
	}
	res.Success = true
	res.PaymentID = "mock_payment_" + uuid.NewString()
	return res, nil
}

// Stub always approves or always declines, with no delay.
type Stub struct {
	Succeed bool
	Calls   int
}

func (s *Stub) Process(_ context.Context, amount decimal.Decimal, method string) (Result, error) {
	s.Calls++
	res := Result{Amount: amount, Method: method, ProcessedAt: time.Now().UTC()}
	if !s.Succeed {
		res.Error = "Payment declined by stub processor"
		return res, nil
	}
	res.Success = true
	res.PaymentID = "stub_payment_" + uuid.NewString()
	return res, nil
}
