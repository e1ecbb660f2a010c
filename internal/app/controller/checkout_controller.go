package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/internal/app/service"
	apperrors "github.com/interno-studio/interno-backend/internal/errors"
	"github.com/interno-studio/interno-backend/internal/middleware"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

type ShippingRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	Zip       string `json:"zip" binding:"required"`
	Country   string `json:"country" binding:"required"`
}

type PaymentRequest struct {
	CardNumber string `json:"card_number" binding:"required"`
	CardHolder string `json:"card_holder" binding:"required"`
	Expiry     string `json:"expiry" binding:"required"`
	CVC        string `json:"cvc" binding:"required"`
}

// Open starts a checkout for the session's cart
// POST /api/v1/checkout
func (ctrl *CheckoutController) Open(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	session, err := ctrl.checkoutService.Open(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")
		case errors.Is(err, service.ErrCheckoutInProgress):
			apperrors.Conflict(c, apperrors.CheckoutInProgress, "A payment is already being processed")
		default:
			log.Error("Failed to open checkout", err, map[string]interface{}{
				"session_id": sessionID,
			})
			apperrors.InternalError(c, "Failed to start checkout")
		}
		return
	}

	c.JSON(http.StatusCreated, session)
}

// Get returns the current checkout state
// GET /api/v1/checkout
func (ctrl *CheckoutController) Get(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	session, err := ctrl.checkoutService.Get(sessionID)
	if err != nil {
		apperrors.NotFound(c, apperrors.CheckoutNotOpen, "No checkout in progress")
		return
	}

	c.JSON(http.StatusOK, session)
}

// SubmitShipping stores the delivery address and moves to payment
// PUT /api/v1/checkout/shipping
func (ctrl *CheckoutController) SubmitShipping(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, map[string]string{
			"shipping": "All shipping fields are required",
		})
		return
	}

	details := model.ShippingDetails{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		City:      req.City,
		Zip:       req.Zip,
		Country:   req.Country,
	}

	session, err := ctrl.checkoutService.SubmitShipping(sessionID, details)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShippingIncomplete):
			apperrors.RespondWithValidationError(c, map[string]string{
				"shipping": "All shipping fields are required",
			})
		case errors.Is(err, service.ErrCheckoutNotOpen):
			apperrors.NotFound(c, apperrors.CheckoutNotOpen, "No checkout in progress")
		case errors.Is(err, service.ErrCheckoutInvalidTransition):
			apperrors.Conflict(c, apperrors.CheckoutInvalidTransition, "Shipping can only be submitted at the shipping step")
		default:
			log.Error("Failed to submit shipping", err, map[string]interface{}{
				"session_id": sessionID,
			})
			apperrors.InternalError(c, "Failed to submit shipping details")
		}
		return
	}

	c.JSON(http.StatusOK, session)
}

// SubmitPayment hands the card to the gateway and starts processing
// POST /api/v1/checkout/payment
func (ctrl *CheckoutController) SubmitPayment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "All card fields are required")
		return
	}

	card := model.CardDetails{
		Number: req.CardNumber,
		Holder: req.CardHolder,
		Expiry: req.Expiry,
		CVC:    req.CVC,
	}

	session, err := ctrl.checkoutService.SubmitPayment(sessionID, card)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCheckoutNotOpen):
			apperrors.NotFound(c, apperrors.CheckoutNotOpen, "No checkout in progress")
		case errors.Is(err, service.ErrCheckoutInvalidTransition):
			apperrors.Conflict(c, apperrors.CheckoutInvalidTransition, "Payment can only be submitted at the payment step")
		default:
			log.Error("Failed to submit payment", err, map[string]interface{}{
				"session_id": sessionID,
			})
			apperrors.InternalError(c, "Failed to submit payment")
		}
		return
	}

	c.JSON(http.StatusAccepted, session)
}

// RetryPayment returns a failed checkout to the payment step
// POST /api/v1/checkout/retry
func (ctrl *CheckoutController) RetryPayment(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	session, err := ctrl.checkoutService.RetryPayment(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCheckoutNotOpen):
			apperrors.NotFound(c, apperrors.CheckoutNotOpen, "No checkout in progress")
		default:
			apperrors.Conflict(c, apperrors.CheckoutInvalidTransition, "Only a failed payment can be retried")
		}
		return
	}

	c.JSON(http.StatusOK, session)
}

// Finish settles a successful checkout and returns the recorded order
// POST /api/v1/checkout/finish
func (ctrl *CheckoutController) Finish(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var userID *uint
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	order, err := ctrl.checkoutService.Finish(sessionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCheckoutNotOpen):
			apperrors.NotFound(c, apperrors.CheckoutNotOpen, "No checkout in progress")
		case errors.Is(err, service.ErrCheckoutInvalidTransition):
			apperrors.Conflict(c, apperrors.CheckoutInvalidTransition, "Checkout has not completed yet")
		default:
			log.Error("Failed to finish checkout", err, map[string]interface{}{
				"session_id": sessionID,
			})
			apperrors.InternalError(c, "Failed to finish checkout")
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// Close abandons the checkout, keeping the cart
// DELETE /api/v1/checkout
func (ctrl *CheckoutController) Close(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	if err := ctrl.checkoutService.Close(sessionID); err != nil {
		switch {
		case errors.Is(err, service.ErrCheckoutNotOpen):
			apperrors.NotFound(c, apperrors.CheckoutNotOpen, "No checkout in progress")
		case errors.Is(err, service.ErrCheckoutInProgress):
			apperrors.Conflict(c, apperrors.CheckoutInProgress, "Cannot close while a payment is being processed")
		default:
			apperrors.InternalError(c, "Failed to close checkout")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Checkout closed"})
}
