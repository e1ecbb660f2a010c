package service

import (
	"testing"

	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/internal/app/repository"
	"github.com/interno-studio/interno-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, NotificationService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	notifications := NewNotificationService(0, nil)
	t.Cleanup(notifications.Shutdown)

	cartService := NewCartService(cartRepo, productRepo, notifications)

	// Seed test catalog
	products := []model.Product{
		{SKU: "lamp-1", Title: "Table Lamp", Kind: model.KindFurniture, Price: 100},
		{SKU: "chair-1", Title: "Accent Chair", Kind: model.KindFurniture, Price: 1200},
		{SKU: "sofa-1", Title: "Big Sofa", Kind: model.KindFurniture, Price: 5000},
		{SKU: "sofa-2", Title: "Bigger Sofa", Kind: model.KindFurniture, Price: 5001},
	}
	for i := range products {
		require.NoError(t, testDB.Create(&products[i]).Error)
	}

	return cartService, notifications, testDB
}

func TestCartService_GetCart_Empty(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	cart, err := cartService.GetCart("sess-1")
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 0)
	assert.Equal(t, int64(0), cart.Totals.Subtotal)
}

func TestCartService_AddItem_NewLine(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	cart, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "lamp-1", cart.Items[0].SKU)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartService_AddItem_SameSKUIncrementsQuantity(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)
	cart, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)

	// Still a single line, quantity bumped
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("sess-1", "no-such-sku")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddItem_PushesNotification(t *testing.T) {
	cartService, notifications, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)

	active := notifications.Active("sess-1")
	require.Len(t, active, 1)
	assert.Equal(t, model.NotificationSuccess, active[0].Type)
	assert.Equal(t, "Table Lamp added to cart!", active[0].Message)
}

func TestCartService_UpdateQuantity_NeverDropsBelowOne(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)

	cart, err := cartService.UpdateQuantity("sess-1", "lamp-1", -1000)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartService_UpdateQuantity_Increment(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)

	cart, err := cartService.UpdateQuantity("sess-1", "lamp-1", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartService_UpdateQuantity_UnknownSKUIsNoOp(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)

	cart, err := cartService.UpdateQuantity("sess-1", "no-such-sku", 5)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartService_RemoveItem(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)

	cart, err := cartService.RemoveItem("sess-1", "lamp-1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0)
}

func TestCartService_RemoveItem_UnknownSKUIsNoOp(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)

	cart, err := cartService.RemoveItem("sess-1", "no-such-sku")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCartService_RemoveThenAdd_StartsAtOne(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)
	_, err = cartService.UpdateQuantity("sess-1", "lamp-1", 4)
	require.NoError(t, err)
	_, err = cartService.RemoveItem("sess-1", "lamp-1")
	require.NoError(t, err)

	cart, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartService_Totals(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)
	cart, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)

	assert.Equal(t, int64(200), cart.Totals.Subtotal)
	assert.Equal(t, int64(model.FlatShippingFee), cart.Totals.Shipping)
	assert.Equal(t, int64(350), cart.Totals.Total)
}

func TestCartService_Totals_FreeShippingBoundary(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	// Subtotal exactly at the threshold still pays shipping
	cart, err := cartService.AddItem("sess-1", "sofa-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), cart.Totals.Subtotal)
	assert.Equal(t, int64(model.FlatShippingFee), cart.Totals.Shipping)

	// One unit over the threshold ships free
	cart, err = cartService.AddItem("sess-2", "sofa-2")
	require.NoError(t, err)
	assert.Equal(t, int64(5001), cart.Totals.Subtotal)
	assert.Equal(t, int64(0), cart.Totals.Shipping)
	assert.Equal(t, int64(5001), cart.Totals.Total)
}

func TestCartService_GetCart_Idempotent(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("sess-1", "chair-1")
	require.NoError(t, err)

	first, err := cartService.GetCart("sess-1")
	require.NoError(t, err)
	second, err := cartService.GetCart("sess-1")
	require.NoError(t, err)
	assert.Equal(t, first.Totals, second.Totals)
	assert.Equal(t, len(first.Items), len(second.Items))
}

func TestCartService_Clear(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)
	_, err = cartService.AddItem("sess-1", "chair-1")
	require.NoError(t, err)

	require.NoError(t, cartService.Clear("sess-1"))

	cart, err := cartService.GetCart("sess-1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0)
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("sess-1", "lamp-1")
	require.NoError(t, err)

	cart, err := cartService.GetCart("sess-2")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0)
}
