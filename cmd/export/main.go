package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/interno-studio/interno-backend/config"
	"github.com/interno-studio/interno-backend/internal/app/repository"
	"github.com/interno-studio/interno-backend/internal/app/service"
	"github.com/interno-studio/interno-backend/internal/db"
	"github.com/interno-studio/interno-backend/pkg/logger"
)

// Exports the order book to an XLSX workbook for back-office use.
//
//	go run ./cmd/export -out orders.xlsx
func main() {
	out := flag.String("out", "", "output file (default orders-<timestamp>.xlsx)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:  "info",
		Format: "console",
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer db.Close()

	orderService := service.NewOrderService(repository.NewOrderRepository(db.GetDB()))

	orders, err := orderService.List()
	if err != nil {
		logger.Fatal("Failed to load orders", err)
	}

	f, err := orderService.BuildWorkbook(orders)
	if err != nil {
		logger.Fatal("Failed to build workbook", err)
	}
	defer f.Close()

	filename := *out
	if filename == "" {
		filename = fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102-150405"))
	}

	if err := f.SaveAs(filename); err != nil {
		logger.Fatal("Failed to write workbook", err)
	}

	logger.Info("Order export written", map[string]interface{}{
		"file":   filename,
		"orders": len(orders),
	})
}
