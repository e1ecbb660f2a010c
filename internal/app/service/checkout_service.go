package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/internal/app/repository"
	"github.com/interno-studio/interno-backend/pkg/logger"
	"github.com/interno-studio/interno-backend/pkg/payment"
)

var (
	ErrCheckoutNotOpen           = errors.New("no checkout in progress")
	ErrCheckoutInvalidTransition = errors.New("invalid checkout step transition")
	ErrCheckoutInProgress        = errors.New("payment is being processed")
	ErrShippingIncomplete        = errors.New("shipping details incomplete")
	ErrPaymentDeclined           = errors.New("payment declined")
)

type CheckoutService interface {
	Open(sessionID string) (*model.CheckoutSession, error)
	Get(sessionID string) (*model.CheckoutSession, error)
	SubmitShipping(sessionID string, details model.ShippingDetails) (*model.CheckoutSession, error)
	SubmitPayment(sessionID string, card model.CardDetails) (*model.CheckoutSession, error)
	RetryPayment(sessionID string) (*model.CheckoutSession, error)
	Finish(sessionID string, userID *uint) (*model.Order, error)
	Close(sessionID string) error
}

type checkoutService struct {
	checkoutRepo  repository.CheckoutRepository
	cartSvc       CartService
	orderSvc      OrderService
	notifications NotificationService
	gateway       payment.Gateway
	publisher     NotificationPublisher

	// Serializes step transitions across HTTP handlers and the gateway
	// callback goroutine.
	mu sync.Mutex
}

func NewCheckoutService(
	checkoutRepo repository.CheckoutRepository,
	cartSvc CartService,
	orderSvc OrderService,
	notifications NotificationService,
	gateway payment.Gateway,
	publisher NotificationPublisher,
) CheckoutService {
	return &checkoutService{
		checkoutRepo:  checkoutRepo,
		cartSvc:       cartSvc,
		orderSvc:      orderSvc,
		notifications: notifications,
		gateway:       gateway,
		publisher:     publisher,
	}
}

// Open starts a checkout for the session's current cart. Totals are
// snapshotted here; later cart edits do not change what gets charged.
// Reopening resets an existing checkout back to the shipping step unless a
// payment is mid-flight.
func (s *checkoutService) Open(sessionID string) (*model.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.checkoutRepo.Find(sessionID); ok && existing.Step == model.StepProcessing {
		return nil, ErrCheckoutInProgress
	}

	cart, err := s.cartSvc.GetCart(sessionID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		logger.Warn("Cannot open checkout: cart is empty", map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, ErrCartEmpty
	}

	now := time.Now()
	session := &model.CheckoutSession{
		SessionID: sessionID,
		Step:      model.StepShipping,
		Subtotal:  cart.Totals.Subtotal,
		Shipping:  cart.Totals.Shipping,
		Total:     cart.Totals.Total,
		OpenedAt:  now,
		UpdatedAt: now,
	}
	s.checkoutRepo.Save(session)

	logger.Info("Checkout opened", map[string]interface{}{
		"session_id": sessionID,
		"total":      session.Total,
	})
	return session, nil
}

func (s *checkoutService) Get(sessionID string) (*model.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.checkoutRepo.Find(sessionID)
	if !ok {
		return nil, ErrCheckoutNotOpen
	}
	return session, nil
}

// SubmitShipping records the delivery address and advances to payment.
// Every field is required.
func (s *checkoutService) SubmitShipping(sessionID string, details model.ShippingDetails) (*model.CheckoutSession, error) {
	if incompleteShipping(details) {
		return nil, ErrShippingIncomplete
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.checkoutRepo.Find(sessionID)
	if !ok {
		return nil, ErrCheckoutNotOpen
	}
	if !model.CanTransition(session.Step, model.StepPayment) {
		logger.Warn("Rejected checkout transition", map[string]interface{}{
			"session_id": sessionID,
			"from":       string(session.Step),
			"to":         string(model.StepPayment),
		})
		return nil, ErrCheckoutInvalidTransition
	}

	session.ShippingInfo = details
	session.Step = model.StepPayment
	session.UpdatedAt = time.Now()
	s.checkoutRepo.Save(session)
	return session, nil
}

// SubmitPayment hands the card to the gateway and moves to processing.
// The authorization runs in the background; poll Get or watch the event
// feed for the outcome.
func (s *checkoutService) SubmitPayment(sessionID string, card model.CardDetails) (*model.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.checkoutRepo.Find(sessionID)
	if !ok {
		return nil, ErrCheckoutNotOpen
	}
	if !model.CanTransition(session.Step, model.StepProcessing) {
		return nil, ErrCheckoutInvalidTransition
	}

	session.Step = model.StepProcessing
	session.ProcessingStage = 0
	session.FailureReason = ""
	session.UpdatedAt = time.Now()
	s.checkoutRepo.Save(session)

	req := payment.Request{
		Reference: sessionID,
		Amount:    session.Total,
		Card: payment.Card{
			Number: card.Number,
			Holder: card.Holder,
			Expiry: card.Expiry,
			CVC:    card.CVC,
		},
	}
	go s.authorize(sessionID, req)

	logger.Info("Payment submitted", map[string]interface{}{
		"session_id": sessionID,
		"amount":     session.Total,
	})
	return session, nil
}

func (s *checkoutService) authorize(sessionID string, req payment.Request) {
	result, err := s.gateway.Authorize(context.Background(), req, func(stage int) {
		s.advanceStage(sessionID, stage)
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.checkoutRepo.Find(sessionID)
	if !ok || session.Step != model.StepProcessing {
		// Checkout vanished while the gateway was working
		return
	}

	switch {
	case err != nil:
		logger.Error("Payment authorization failed", err, map[string]interface{}{
			"session_id": sessionID,
		})
		session.Step = model.StepFailed
		session.FailureReason = "We couldn't reach the payment provider. Please try again."
	case !result.Authorized:
		logger.Warn("Payment declined", map[string]interface{}{
			"session_id": sessionID,
			"reason":     result.DeclineReason,
		})
		session.Step = model.StepFailed
		session.FailureReason = result.DeclineReason
		if session.FailureReason == "" {
			session.FailureReason = "Your payment was declined."
		}
	default:
		session.Step = model.StepSuccess
		session.TransactionID = result.TransactionID
	}
	session.UpdatedAt = time.Now()
	s.checkoutRepo.Save(session)
	s.publishStep(session)
}

func (s *checkoutService) advanceStage(sessionID string, stage int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.checkoutRepo.Find(sessionID)
	if !ok || session.Step != model.StepProcessing {
		return
	}
	session.ProcessingStage = stage
	session.UpdatedAt = time.Now()
	s.checkoutRepo.Save(session)
	s.publishStep(session)
}

// RetryPayment returns a failed checkout to the payment step so the
// customer can try another card.
func (s *checkoutService) RetryPayment(sessionID string) (*model.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.checkoutRepo.Find(sessionID)
	if !ok {
		return nil, ErrCheckoutNotOpen
	}
	if session.Step != model.StepFailed {
		return nil, ErrCheckoutInvalidTransition
	}

	session.Step = model.StepPayment
	session.FailureReason = ""
	session.ProcessingStage = 0
	session.UpdatedAt = time.Now()
	s.checkoutRepo.Save(session)
	return session, nil
}

// Finish settles a successful checkout: the order is recorded, the cart is
// emptied and the checkout session is destroyed.
func (s *checkoutService) Finish(sessionID string, userID *uint) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.checkoutRepo.Find(sessionID)
	if !ok {
		return nil, ErrCheckoutNotOpen
	}
	if session.Step != model.StepSuccess {
		return nil, ErrCheckoutInvalidTransition
	}

	cart, err := s.cartSvc.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	totals := model.CartTotals{
		Subtotal: session.Subtotal,
		Shipping: session.Shipping,
		Total:    session.Total,
	}
	order, err := s.orderSvc.Record(sessionID, userID, cart.Items, totals)
	if err != nil {
		return nil, err
	}

	if err := s.cartSvc.Clear(sessionID); err != nil {
		logger.Error("Failed to clear cart after checkout", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	s.checkoutRepo.Delete(sessionID)

	s.notifications.Push(sessionID, model.NotificationSuccess, "Order placed successfully!")

	logger.Info("Checkout finished", map[string]interface{}{
		"session_id": sessionID,
		"reference":  order.Reference,
	})
	return order, nil
}

// Close abandons the checkout. The cart is left as-is. A checkout whose
// payment is still processing cannot be closed.
func (s *checkoutService) Close(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.checkoutRepo.Find(sessionID)
	if !ok {
		return ErrCheckoutNotOpen
	}
	if session.Step == model.StepProcessing {
		return ErrCheckoutInProgress
	}

	s.checkoutRepo.Delete(sessionID)
	logger.Info("Checkout closed", map[string]interface{}{
		"session_id": sessionID,
		"step":       string(session.Step),
	})
	return nil
}

func (s *checkoutService) publishStep(session *model.CheckoutSession) {
	if s.publisher == nil {
		return
	}
	event := map[string]interface{}{
		"event":    "checkout_step",
		"checkout": session,
	}
	if err := s.publisher.BroadcastToSession(session.SessionID, event); err != nil {
		logger.Warn("Failed to publish checkout step", map[string]interface{}{
			"session_id": session.SessionID,
		})
	}
}

func incompleteShipping(details model.ShippingDetails) bool {
	fields := []string{
		details.FirstName,
		details.LastName,
		details.Address,
		details.City,
		details.Zip,
		details.Country,
	}
	for _, field := range fields {
		if strings.TrimSpace(field) == "" {
			return true
		}
	}
	return false
}
