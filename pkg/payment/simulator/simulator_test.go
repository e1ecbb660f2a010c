package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/interno-studio/interno-backend/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize_ReportsStagesInOrder(t *testing.T) {
	g := New(Config{
		StageDelays: []time.Duration{5 * time.Millisecond, 10 * time.Millisecond, 15 * time.Millisecond},
		SettleAfter: 20 * time.Millisecond,
	})

	var stages []int
	result, err := g.Authorize(context.Background(), payment.Request{
		Reference: "sess-1",
		Amount:    1350,
	}, func(stage int) {
		stages = append(stages, stage)
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, stages)
	assert.True(t, result.Authorized)
	assert.NotEmpty(t, result.TransactionID)
}

func TestAuthorize_SettlesAfterConfiguredDelay(t *testing.T) {
	g := New(Config{
		StageDelays: []time.Duration{10 * time.Millisecond},
		SettleAfter: 40 * time.Millisecond,
	})

	start := time.Now()
	_, err := g.Authorize(context.Background(), payment.Request{Reference: "sess-1"}, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestAuthorize_ContextCancellation(t *testing.T) {
	g := New(Config{
		StageDelays: []time.Duration{time.Second},
		SettleAfter: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := g.Authorize(ctx, payment.Request{Reference: "sess-1"}, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAuthorize_UniqueTransactionIDs(t *testing.T) {
	g := New(Config{SettleAfter: time.Millisecond})

	first, err := g.Authorize(context.Background(), payment.Request{}, nil)
	require.NoError(t, err)
	second, err := g.Authorize(context.Background(), payment.Request{}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.TransactionID, second.TransactionID)
}
