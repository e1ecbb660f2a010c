package payment

import (
	"context"
	"errors"
)

var (
	ErrDeclined = errors.New("payment declined")
)

// Card carries the card details submitted at checkout. They are passed
// through to the gateway and never persisted.
type Card struct {
	Number string
	Holder string
	Expiry string
	CVC    string
}

// Request describes a single authorization attempt.
type Request struct {
	Reference string
	Amount    int64
	Card      Card
}

// Result is the outcome of an authorization attempt. Declined is set when
// the gateway refused the charge; transport failures come back as errors.
type Result struct {
	Authorized    bool
	TransactionID string
	DeclineReason string
}

// StageFunc is invoked as the authorization progresses so callers can
// surface intermediate processing stages.
type StageFunc func(stage int)

// Gateway authorizes payments. Implementations must honor context
// cancellation while waiting on the processor.
type Gateway interface {
	Authorize(ctx context.Context, req Request, onStage StageFunc) (*Result, error)
}
