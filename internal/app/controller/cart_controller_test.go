package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/internal/app/repository"
	"github.com/interno-studio/interno-backend/internal/app/service"
	"github.com/interno-studio/interno-backend/internal/db"
	"github.com/interno-studio/interno-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartControllerTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	products := []model.Product{
		{SKU: "lb_1", Title: "Artemide Table Lamp", Kind: model.KindFurniture, Price: 450},
	}
	for i := range products {
		require.NoError(t, testDB.Create(&products[i]).Error)
	}

	notifications := service.NewNotificationService(0, nil)
	t.Cleanup(notifications.Shutdown)

	cartService := service.NewCartService(
		repository.NewCartRepository(testDB),
		repository.NewProductRepository(testDB),
		notifications,
	)
	ctrl := NewCartController(cartService)

	r := gin.New()
	r.Use(middleware.SessionMiddleware())
	r.GET("/cart", ctrl.GetCart)
	r.POST("/cart/items", ctrl.AddItem)
	r.PATCH("/cart/items/:sku", ctrl.UpdateQuantity)
	r.DELETE("/cart/items/:sku", ctrl.RemoveItem)
	r.DELETE("/cart", ctrl.Clear)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, sessionID string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCartController_AddAndGet(t *testing.T) {
	r := setupCartControllerTest(t)

	w := doJSON(t, r, http.MethodPost, "/cart/items", "sess-1", gin.H{"sku": "lb_1"})
	assert.Equal(t, http.StatusOK, w.Code)

	var cart service.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, int64(450), cart.Totals.Subtotal)
	assert.Equal(t, int64(600), cart.Totals.Total)

	w = doJSON(t, r, http.MethodGet, "/cart", "sess-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Len(t, cart.Items, 1)
}

func TestCartController_AddUnknownSKU(t *testing.T) {
	r := setupCartControllerTest(t)

	w := doJSON(t, r, http.MethodPost, "/cart/items", "sess-1", gin.H{"sku": "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_NOT_FOUND")
}

func TestCartController_UpdateQuantityFloor(t *testing.T) {
	r := setupCartControllerTest(t)

	doJSON(t, r, http.MethodPost, "/cart/items", "sess-1", gin.H{"sku": "lb_1"})
	w := doJSON(t, r, http.MethodPatch, "/cart/items/lb_1", "sess-1", gin.H{"delta": -1000})
	assert.Equal(t, http.StatusOK, w.Code)

	var cart service.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartController_RemoveAndClear(t *testing.T) {
	r := setupCartControllerTest(t)

	doJSON(t, r, http.MethodPost, "/cart/items", "sess-1", gin.H{"sku": "lb_1"})

	w := doJSON(t, r, http.MethodDelete, "/cart/items/lb_1", "sess-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var cart service.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Len(t, cart.Items, 0)

	w = doJSON(t, r, http.MethodDelete, "/cart", "sess-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCartController_SessionIssuedWhenMissing(t *testing.T) {
	r := setupCartControllerTest(t)

	w := doJSON(t, r, http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.SessionHeader))
}
