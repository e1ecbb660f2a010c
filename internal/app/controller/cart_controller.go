package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/interno-studio/interno-backend/internal/app/service"
	apperrors "github.com/interno-studio/interno-backend/internal/errors"
	"github.com/interno-studio/interno-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	SKU string `json:"sku" binding:"required"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// GetCart returns the session's cart with totals
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	cart, err := ctrl.cartService.GetCart(sessionID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, cart)
}

// AddItem adds one unit of a product to the cart
// POST /api/v1/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	cart, err := ctrl.cartService.AddItem(sessionID, req.SKU)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"session_id": sessionID,
			"sku":        req.SKU,
		})
		apperrors.InternalError(c, "Failed to add item to cart")
		return
	}

	c.JSON(http.StatusOK, cart)
}

// UpdateQuantity adjusts a cart line's quantity by a signed delta
// PATCH /api/v1/cart/items/:sku
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)
	sku := c.Param("sku")

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	cart, err := ctrl.cartService.UpdateQuantity(sessionID, sku, req.Delta)
	if err != nil {
		log.Error("Failed to update cart quantity", err, map[string]interface{}{
			"session_id": sessionID,
			"sku":        sku,
		})
		apperrors.InternalError(c, "Failed to update cart")
		return
	}

	c.JSON(http.StatusOK, cart)
}

// RemoveItem removes a cart line
// DELETE /api/v1/cart/items/:sku
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)
	sku := c.Param("sku")

	cart, err := ctrl.cartService.RemoveItem(sessionID, sku)
	if err != nil {
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"session_id": sessionID,
			"sku":        sku,
		})
		apperrors.InternalError(c, "Failed to remove item")
		return
	}

	c.JSON(http.StatusOK, cart)
}

// Clear empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) Clear(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	if err := ctrl.cartService.Clear(sessionID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
