package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/interno-studio/interno-backend/internal/app/service"
	apperrors "github.com/interno-studio/interno-backend/internal/errors"
	"github.com/interno-studio/interno-backend/internal/middleware"
	"gorm.io/gorm"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

// Get returns an order by its reference
// GET /api/v1/orders/:reference
func (ctrl *OrderController) Get(c *gin.Context) {
	reference := c.Param("reference")

	order, err := ctrl.orderService.GetByReference(reference)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Order not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// List returns all orders (admin)
// GET /api/v1/admin/orders
func (ctrl *OrderController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.List()
	if err != nil {
		log.Error("Failed to list orders", err, nil)
		apperrors.InternalError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// Export streams the order book as an XLSX workbook (admin)
// GET /api/v1/admin/orders/export
func (ctrl *OrderController) Export(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.List()
	if err != nil {
		log.Error("Failed to list orders for export", err, nil)
		apperrors.InternalError(c, "Failed to export orders")
		return
	}

	f, err := ctrl.orderService.BuildWorkbook(orders)
	if err != nil {
		log.Error("Failed to build workbook", err, nil)
		apperrors.InternalError(c, "Failed to export orders")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to stream workbook", err, nil)
	}
}
