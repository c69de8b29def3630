package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-marketplace-gate/internal/application/identity"
	"github.com/go-marketplace-gate/internal/config"
	"github.com/go-marketplace-gate/internal/infrastructure/dispatch"
	"github.com/go-marketplace-gate/internal/infrastructure/dynamo"
	"github.com/go-marketplace-gate/internal/infrastructure/google"
	jwtinfra "github.com/go-marketplace-gate/internal/infrastructure/jwt"
	"github.com/go-marketplace-gate/internal/infrastructure/memory"
	"github.com/go-marketplace-gate/internal/infrastructure/smtp"
	"github.com/go-marketplace-gate/internal/infrastructure/sns"
	transporthttp "github.com/go-marketplace-gate/internal/transport/http"
	"github.com/joho/godotenv"
)

// navIdleTTL is how long a browsing session's navigation counter is kept after its last page view.
const navIdleTTL = 30 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("dynamodb client: %v", err)
	}
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	deps := &transporthttp.Deps{
		SellerRepo:  dynamo.NewSellerRepo(dynamoClient, cfg.DynamoTables.Sellers),
		ShopperRepo: dynamo.NewShopperRepo(dynamoClient, cfg.DynamoTables.Shoppers),
		SessionRepo: dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions),
	}

	// JWT provider (optional; without keys no admin or seller credential is ever present).
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		deps.Tokens = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	if cfg.GoogleClientID != "" {
		deps.Google = google.NewVerifier(cfg.GoogleClientID)
	} else {
		log.Println("WARN: GOOGLE_CLIENT_ID not set, shopper sign-in disabled")
	}

	// SNS SMS sender (optional; phone identifiers then get no code delivered).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(ctx, cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}
	deps.Dispatcher = dispatch.NewCodeDispatcher(smtp.NewMailer(cfg), smsSender)

	codes := memory.NewCodeStore(memory.WithTTL(cfg.OTPExpiry))
	deps.CodeStore = codes
	go codes.Run(ctx, cfg.OTPSweepInterval)

	deps.Generations = identity.NewGenerations()
	go deps.Generations.Run(ctx, navIdleTTL, navIdleTTL)

	if cfg.RouteTablePath != "" {
		table, err := identity.LoadRouteTable(cfg.RouteTablePath)
		if err != nil {
			log.Fatalf("route table: %v", err)
		}
		deps.RouteTable = table
		log.Printf("Loaded %d route rules from %s", len(table), cfg.RouteTablePath)
	}

	router, err := transporthttp.NewRouter(cfg, deps)
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
