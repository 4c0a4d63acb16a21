package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/config"
	"github.com/abhinavshyju/ShopifyApp/internal/repository/postgres"
	"github.com/abhinavshyju/ShopifyApp/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/refresh-token/main.go <shop>")
		fmt.Println("Example: go run cmd/refresh-token/main.go my-store.myshopify.com")
		os.Exit(1)
	}

	shop := os.Args[1]

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

	fmt.Printf("🔄 Refreshing access token for %s\n", shop)

	info, err := tokens.Refresh(context.Background(), shop)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to refresh token: %v\n", err)
		os.Exit(1)
	}

	masked := info.AccessToken
	if len(masked) > 8 {
		masked = masked[:8] + "..."
	}
	fmt.Printf("✅ Token valid: %s\n", masked)
	if info.ExpiresAt != nil {
		fmt.Printf("   Expires: %s\n", info.ExpiresAt.UTC().Format(time.RFC3339))
	} else {
		fmt.Println("   Expires: never (no expiry recorded)")
	}
}
