package model

import "time"

type CheckoutStep string

const (
	StepShipping   CheckoutStep = "shipping"
	StepPayment    CheckoutStep = "payment"
	StepProcessing CheckoutStep = "processing"
	StepSuccess    CheckoutStep = "success"
	StepFailed     CheckoutStep = "failed"
)

// checkoutTransitions is the full transition table. The flow is linear;
// entering processing is a one-way commitment point, with the single
// exception of a gateway decline returning control to payment.
var checkoutTransitions = map[CheckoutStep][]CheckoutStep{
	StepShipping:   {StepPayment},
	StepPayment:    {StepProcessing},
	StepProcessing: {StepSuccess, StepFailed},
	StepFailed:     {StepPayment},
	StepSuccess:    {},
}

// CanTransition reports whether the checkout flow may move from one step
// to another.
func CanTransition(from, to CheckoutStep) bool {
	for _, next := range checkoutTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s CheckoutStep) IsTerminal() bool {
	return s == StepSuccess
}

func (s CheckoutStep) String() string {
	return string(s)
}

// ShippingDetails are the ephemeral shipping form fields. They live only as
// long as the checkout session and are reset whenever checkout opens.
type ShippingDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}

// CardDetails are ephemeral payment form fields. They are handed to the
// payment gateway and never stored.
type CardDetails struct {
	Number string `json:"number"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

// CheckoutSession is the in-memory state of one session's checkout flow.
// Totals are snapshotted when checkout opens; the cart is logically frozen
// until the flow completes or is abandoned.
type CheckoutSession struct {
	SessionID       string          `json:"session_id"`
	Step            CheckoutStep    `json:"step"`
	Subtotal        int64           `json:"subtotal"`
	Shipping        int64           `json:"shipping"`
	Total           int64           `json:"total"`
	ShippingInfo    ShippingDetails `json:"shipping_info"`
	ProcessingStage int             `json:"processing_stage"`
	TransactionID   string          `json:"transaction_id,omitempty"`
	FailureReason   string          `json:"failure_reason,omitempty"`
	OpenedAt        time.Time       `json:"opened_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
