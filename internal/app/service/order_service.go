package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/interno-studio/interno-backend/internal/app/model"
	"github.com/interno-studio/interno-backend/internal/app/repository"
	"github.com/interno-studio/interno-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type OrderService interface {
	Record(sessionID string, userID *uint, items []model.CartItem, totals model.CartTotals) (*model.Order, error)
	GetByReference(reference string) (*model.Order, error)
	List() ([]model.Order, error)
	BuildWorkbook(orders []model.Order) (*excelize.File, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// Record writes the completed purchase to the order book. The reference is
// the customer-facing order number.
func (s *orderService) Record(sessionID string, userID *uint, items []model.CartItem, totals model.CartTotals) (*model.Order, error) {
	orderItems := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, model.OrderItem{
			SKU:      item.SKU,
			Title:    item.Title,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	order := &model.Order{
		Reference: newOrderReference(),
		SessionID: sessionID,
		UserID:    userID,
		Subtotal:  totals.Subtotal,
		Shipping:  totals.Shipping,
		Total:     totals.Total,
		Items:     orderItems,
	}

	if err := s.orderRepo.Create(order); err != nil {
		logger.Error("Failed to record order", err, map[string]interface{}{
			"session_id": sessionID,
			"reference":  order.Reference,
		})
		return nil, err
	}

	logger.Info("Order recorded", map[string]interface{}{
		"reference": order.Reference,
		"total":     order.Total,
	})
	return order, nil
}

func (s *orderService) GetByReference(reference string) (*model.Order, error) {
	return s.orderRepo.FindByReference(reference)
}

func (s *orderService) List() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

// BuildWorkbook renders orders into an XLSX sheet for back-office export.
func (s *orderService) BuildWorkbook(orders []model.Order) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Orders"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Reference", "Session", "SKU", "Title", "Price", "Quantity", "Subtotal", "Shipping", "Total", "Placed At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	row := 2
	for _, order := range orders {
		for _, item := range order.Items {
			values := []interface{}{
				order.Reference,
				order.SessionID,
				item.SKU,
				item.Title,
				item.Price,
				item.Quantity,
				order.Subtotal,
				order.Shipping,
				order.Total,
				order.CreatedAt.Format("2006-01-02 15:04:05"),
			}
			for i, value := range values {
				cell, err := excelize.CoordinatesToCellName(i+1, row)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return nil, err
				}
			}
			row++
		}
	}
	return f, nil
}

func newOrderReference() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("ORD-%s", id[:10])
}
