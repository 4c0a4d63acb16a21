package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/config"
	"github.com/abhinavshyju/ShopifyApp/internal/repository/postgres"
	"github.com/abhinavshyju/ShopifyApp/internal/service"
	"github.com/abhinavshyju/ShopifyApp/internal/shopify"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/track-order/main.go <shop> <order_ref>")
		fmt.Println("Example: go run cmd/track-order/main.go my-store.myshopify.com \"#1042\"")
		fmt.Println("Example: go run cmd/track-order/main.go my-store.myshopify.com gid://shopify/Order/123")
		fmt.Println("Example: go run cmd/track-order/main.go my-store.myshopify.com customer@example.com")
		os.Exit(1)
	}

	shop := os.Args[1]
	ref := os.Args[2]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	tokens := service.NewTokenService(repos.Session, cfg.Shopify, logger)
	client := shopify.NewClient(cfg.Shopify.APIVersion, logger)
	orders := service.NewOrderService(tokens, client, logger)

	in := service.TrackOrderInput{Shop: shop}
	switch {
	case strings.HasPrefix(ref, "gid://"):
		in.OrderID = ref
	case strings.Contains(ref, "@"):
		in.Email = ref
	default:
		in.OrderNumber = ref
	}

	fmt.Printf("🔍 Tracking order for %s: %s\n\n", shop, ref)

	tracking, err := orders.Track(context.Background(), in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to track order: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(tracking, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to encode tracking record: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
