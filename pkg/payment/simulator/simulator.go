package simulator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/interno-studio/interno-backend/pkg/logger"
	"github.com/interno-studio/interno-backend/pkg/payment"
)

// Config controls the simulated processor timings. StageDelays are measured
// from the start of the authorization, not from the previous stage.
type Config struct {
	StageDelays []time.Duration
	SettleAfter time.Duration
}

// Gateway is a simulated payment processor. It reports progress through the
// configured stages and then authorizes every charge.
type Gateway struct {
	cfg Config
}

func New(cfg Config) *Gateway {
	return &Gateway{cfg: cfg}
}

func (g *Gateway) Authorize(ctx context.Context, req payment.Request, onStage payment.StageFunc) (*payment.Result, error) {
	logger.Debug("Simulated authorization started", map[string]interface{}{
		"reference": req.Reference,
		"amount":    req.Amount,
	})

	start := time.Now()
	for i, delay := range g.cfg.StageDelays {
		if err := sleepUntil(ctx, start.Add(delay)); err != nil {
			return nil, err
		}
		if onStage != nil {
			onStage(i + 1)
		}
	}

	if err := sleepUntil(ctx, start.Add(g.cfg.SettleAfter)); err != nil {
		return nil, err
	}

	result := &payment.Result{
		Authorized:    true,
		TransactionID: uuid.NewString(),
	}

	logger.Debug("Simulated authorization settled", map[string]interface{}{
		"reference":      req.Reference,
		"transaction_id": result.TransactionID,
	})
	return result, nil
}

func sleepUntil(ctx context.Context, deadline time.Time) error {
	wait := time.Until(deadline)
	if wait <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
