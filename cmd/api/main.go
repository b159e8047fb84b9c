package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/ecofinds/internal/api"
	"github.com/example/ecofinds/internal/auth"
	"github.com/example/ecofinds/internal/config"
	"github.com/example/ecofinds/internal/describe"
	"github.com/example/ecofinds/internal/domain/cart"
	"github.com/example/ecofinds/internal/domain/listing"
	"github.com/example/ecofinds/internal/domain/order"
	"github.com/example/ecofinds/internal/domain/session"
	"github.com/example/ecofinds/internal/email"
	"github.com/example/ecofinds/internal/infrastructure/journal"
	"github.com/example/ecofinds/internal/infrastructure/kafka"
	"github.com/example/ecofinds/internal/seed"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err == nil {
		log.Println("[API] Loaded .env")
	}

	cfg, err := config.Load(os.Getenv("ECOFINDS_CONFIG"))
	if err != nil {
		log.Fatalf("[API] Failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("[API] JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[API] JWT_SECRET must be at least 32 characters long")
	}

	log.Println("[API] ========================================")
	log.Println("[API] EcoFinds - Second-Hand Marketplace")
	log.Println("[API] ========================================")
	log.Printf("[API] Addr: %s", cfg.Addr)
	if len(cfg.Kafka.Brokers) > 0 {
		log.Printf("[API] Kafka: %v topic=%s", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		log.Println("[API] Kafka: disabled (events stay local)")
	}

	// Optional audit event publisher
	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
	}
	events := journal.New(producer)

	// State containers
	sessions := session.NewStore(events)
	catalog := listing.NewStore(events)
	carts := cart.NewStore(sessions)
	orders := order.NewStore(events)

	// Initial loads from the seed source
	src := seed.New(cfg.LoadDelay)
	if err := sessions.Load(ctx, src); err != nil {
		log.Fatalf("[API] Failed to load principals: %v", err)
	}
	if err := catalog.Load(ctx, src); err != nil {
		log.Fatalf("[API] Failed to load catalog: %v", err)
	}
	if err := orders.Load(ctx, src); err != nil {
		log.Fatalf("[API] Failed to load orders: %v", err)
	}

	// Description generation (degrades to fallback text without a key)
	generator, err := describe.NewGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("[API] Failed to init description generator: %v", err)
	}

	// Optional receipt mail, sent directly at checkout. Deployments running
	// cmd/notifier against Kafka should leave SMTP unset here.
	var mailer *email.Service
	if cfg.SMTP.Host != "" {
		mailer = email.NewService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
		log.Printf("[API] SMTP: %s:%s", cfg.SMTP.Host, cfg.SMTP.Port)
	}

	jwtService := auth.NewJWTService(
		cfg.JWTSecret,
		15*time.Minute, // Access token expiry
		7*24*time.Hour, // Refresh token expiry (7 days)
	)

	handlers := api.NewHandlers(sessions, catalog, carts, orders, generator, mailer)
	authHandlers := api.NewAuthHandlers(sessions, jwtService)
	router := api.NewRouter(api.RouterConfig{
		Handlers:     handlers,
		AuthHandlers: authHandlers,
		JWTService:   jwtService,
	})

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		log.Printf("[API] Server started on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)
}
