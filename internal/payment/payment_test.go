package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockDeclinesNonPositiveAmount(t *testing.T) {
	m := &Mock{SuccessRate: 1, Roll: func() float64 { return 0 }}

	for _, amt := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		res, err := m.Process(context.Background(), amt, "mock")
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Invalid amount", res.Error)
		assert.Empty(t, res.PaymentID)
	}
}

func TestMockRollDecides(t *testing.T) {
	amt := decimal.RequireFromString("10.00")

	ok := &Mock{SuccessRate: 0.95, Roll: func() float64 { return 0.10 }}
	res, err := ok.Process(context.Background(), amt, "card")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, strings.HasPrefix(res.PaymentID, "mock_payment_"))
	assert.Equal(t, "card", res.Method)

	declined := &Mock{SuccessRate: 0.95, Roll: func() float64 { return 0.97 }}
	res, err = declined.Process(context.Background(), amt, "card")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Payment declined by mock processor", res.Error)
}

func TestMockLatencyHonoursContext(t *testing.T) {
	m := &Mock{SuccessRate: 1, Latency: time.Hour}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.Process(ctx, decimal.NewFromInt(1), "mock")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStub(t *testing.T) {
	s := &Stub{Succeed: false}
	res, err := s.Process(context.Background(), decimal.NewFromInt(1), "mock")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 1, s.Calls)
}
