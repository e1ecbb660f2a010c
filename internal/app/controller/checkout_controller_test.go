package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/internal/app/repository"
	"github.com/interno-studio/interno-backend/internal/app/service"
	"github.com/interno-studio/interno-backend/internal/db"
	"github.com/interno-studio/interno-backend/internal/middleware"
	"github.com/interno-studio/interno-backend/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type instantGateway struct{}

func (g *instantGateway) Authorize(ctx context.Context, req payment.Request, onStage payment.StageFunc) (*payment.Result, error) {
	for i := 1; i <= 3; i++ {
		if onStage != nil {
			onStage(i)
		}
	}
	return &payment.Result{Authorized: true, TransactionID: "txn-ctrl"}, nil
}

func setupCheckoutControllerTest(t *testing.T) (*gin.Engine, service.CheckoutService) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	product := model.Product{SKU: "lb_2", Title: "Velvet Accent Chair", Kind: model.KindFurniture, Price: 1200}
	require.NoError(t, testDB.Create(&product).Error)

	notifications := service.NewNotificationService(0, nil)
	t.Cleanup(notifications.Shutdown)

	cartService := service.NewCartService(
		repository.NewCartRepository(testDB),
		repository.NewProductRepository(testDB),
		notifications,
	)
	orderService := service.NewOrderService(repository.NewOrderRepository(testDB))
	checkoutService := service.NewCheckoutService(
		repository.NewCheckoutRepository(),
		cartService, orderService, notifications,
		&instantGateway{}, nil,
	)

	cartCtrl := NewCartController(cartService)
	checkoutCtrl := NewCheckoutController(checkoutService)

	r := gin.New()
	r.Use(middleware.SessionMiddleware())
	r.POST("/cart/items", cartCtrl.AddItem)
	r.POST("/checkout", checkoutCtrl.Open)
	r.GET("/checkout", checkoutCtrl.Get)
	r.PUT("/checkout/shipping", checkoutCtrl.SubmitShipping)
	r.POST("/checkout/payment", checkoutCtrl.SubmitPayment)
	r.POST("/checkout/retry", checkoutCtrl.RetryPayment)
	r.POST("/checkout/finish", checkoutCtrl.Finish)
	r.DELETE("/checkout", checkoutCtrl.Close)
	return r, checkoutService
}

func shippingBody() gin.H {
	return gin.H{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"address":    "55 East Birchwood Ave.",
		"city":       "Brooklyn",
		"zip":        "11201",
		"country":    "USA",
	}
}

func TestCheckoutController_OpenEmptyCart(t *testing.T) {
	r, _ := setupCheckoutControllerTest(t)

	w := doJSON(t, r, http.MethodPost, "/checkout", "sess-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CART_EMPTY")
}

func TestCheckoutController_FullFlow(t *testing.T) {
	r, checkoutService := setupCheckoutControllerTest(t)

	doJSON(t, r, http.MethodPost, "/cart/items", "sess-1", gin.H{"sku": "lb_2"})

	w := doJSON(t, r, http.MethodPost, "/checkout", "sess-1", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var session model.CheckoutSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, model.StepShipping, session.Step)

	w = doJSON(t, r, http.MethodPut, "/checkout/shipping", "sess-1", shippingBody())
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, model.StepPayment, session.Step)

	w = doJSON(t, r, http.MethodPost, "/checkout/payment", "sess-1", gin.H{
		"card_number": "4242424242424242",
		"card_holder": "Ada Lovelace",
		"expiry":      "12/30",
		"cvc":         "123",
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	require.Eventually(t, func() bool {
		s, err := checkoutService.Get("sess-1")
		return err == nil && s.Step == model.StepSuccess
	}, 2*time.Second, 10*time.Millisecond)

	w = doJSON(t, r, http.MethodPost, "/checkout/finish", "sess-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var order model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.NotEmpty(t, order.Reference)
	assert.Equal(t, int64(1350), order.Total)

	// Checkout session destroyed after finish
	w = doJSON(t, r, http.MethodGet, "/checkout", "sess-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutController_ShippingValidation(t *testing.T) {
	r, _ := setupCheckoutControllerTest(t)

	doJSON(t, r, http.MethodPost, "/cart/items", "sess-1", gin.H{"sku": "lb_2"})
	doJSON(t, r, http.MethodPost, "/checkout", "sess-1", nil)

	body := shippingBody()
	delete(body, "city")
	w := doJSON(t, r, http.MethodPut, "/checkout/shipping", "sess-1", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_INPUT")
}

func TestCheckoutController_PaymentWrongStep(t *testing.T) {
	r, _ := setupCheckoutControllerTest(t)

	doJSON(t, r, http.MethodPost, "/cart/items", "sess-1", gin.H{"sku": "lb_2"})
	doJSON(t, r, http.MethodPost, "/checkout", "sess-1", nil)

	w := doJSON(t, r, http.MethodPost, "/checkout/payment", "sess-1", gin.H{
		"card_number": "4242424242424242",
		"card_holder": "Ada Lovelace",
		"expiry":      "12/30",
		"cvc":         "123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CHECKOUT_INVALID_TRANSITION")
}

func TestCheckoutController_Close(t *testing.T) {
	r, _ := setupCheckoutControllerTest(t)

	doJSON(t, r, http.MethodPost, "/cart/items", "sess-1", gin.H{"sku": "lb_2"})
	doJSON(t, r, http.MethodPost, "/checkout", "sess-1", nil)

	w := doJSON(t, r, http.MethodDelete, "/checkout", "sess-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/checkout", "sess-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
