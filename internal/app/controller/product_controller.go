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

type ProductController struct {
	productService service.ProductService
	cartService    service.CartService
}

func NewProductController(productService service.ProductService, cartService service.CartService) *ProductController {
	return &ProductController{
		productService: productService,
		cartService:    cartService,
	}
}

type ConfigureRequest struct {
	SizeID     string `json:"size_id" binding:"required"`
	MaterialID string `json:"material_id" binding:"required"`
	ColorID    string `json:"color_id" binding:"required"`
	AddToCart  bool   `json:"add_to_cart"`
}

// List returns the catalog, optionally filtered by kind
// GET /api/v1/products?kind=furniture
func (ctrl *ProductController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var (
		products []model.Product
		err      error
	)
	if kind := c.Query("kind"); kind != "" {
		products, err = ctrl.productService.ListByKind(model.ProductKind(kind))
	} else {
		products, err = ctrl.productService.List()
	}
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// Get returns a single product
// GET /api/v1/products/:sku
func (ctrl *ProductController) Get(c *gin.Context) {
	sku := c.Param("sku")

	product, err := ctrl.productService.GetBySKU(sku)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// Options returns the customizer option matrix
// GET /api/v1/customizer/options
func (ctrl *ProductController) Options(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.productService.Options())
}

// Configure builds a one-off product from customizer selections and
// optionally drops it straight into the cart
// POST /api/v1/customizer/configure
func (ctrl *ProductController) Configure(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req ConfigureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Size, material and color are required")
		return
	}

	product, err := ctrl.productService.Configure(req.SizeID, req.MaterialID, req.ColorID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOption) {
			apperrors.BadRequest(c, apperrors.ProductInvalidSelection, "Unknown customizer option")
			return
		}
		log.Error("Failed to configure product", err, nil)
		apperrors.InternalError(c, "Failed to configure product")
		return
	}

	if req.AddToCart {
		cart, err := ctrl.cartService.AddProduct(sessionID, product)
		if err != nil {
			log.Error("Failed to add configured product to cart", err, map[string]interface{}{
				"sku": product.SKU,
			})
			apperrors.InternalError(c, "Failed to add configured product to cart")
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"product": product,
			"cart":    cart,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}
