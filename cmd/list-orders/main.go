package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/blayzex/storefront-api/internal/config"
	"github.com/blayzex/storefront-api/internal/repository/postgres"
)

func main() {
	limit := 20
	if len(os.Args) > 1 {
		if n, err := strconv.Atoi(os.Args[1]); err == nil && n > 0 {
			limit = n
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	orders, err := repos.Order.List(context.Background(), limit, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list orders: %v\n", err)
		os.Exit(1)
	}

	if len(orders) == 0 {
		fmt.Println("No orders found.")
		return
	}

	fmt.Printf("Most recent %d orders:\n\n", len(orders))
	for _, order := range orders {
		fmt.Printf("%s  %-9s  ₹%.2f  %s  %s\n",
			order.CreatedAt.Format("2006-01-02 15:04"),
			order.Status,
			order.Total,
			order.Customer.Name,
			order.ID,
		)
		for _, item := range order.Items {
			fmt.Printf("    %dx %s (%s) %s\n", item.Quantity, item.Name, item.Size, item.Price)
		}
		fmt.Println()
	}
}
