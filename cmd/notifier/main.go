package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/example/ecofinds/internal/config"
	"github.com/example/ecofinds/internal/email"
	"github.com/example/ecofinds/internal/infrastructure/kafka"
	"github.com/example/ecofinds/internal/notification"
)

// Consumes published journal events and mails purchase receipts. Run it
// against the same Kafka topic the API publishes to.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("ECOFINDS_CONFIG"))
	if err != nil {
		log.Fatalf("[Notifier] Failed to load config: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("[Notifier] KAFKA_BROKERS is required")
	}
	if cfg.SMTP.Host == "" {
		log.Fatal("[Notifier] SMTP_HOST is required")
	}
	consumerGroup := "receipt-notifier"

	log.Println("[Notifier] ========================================")
	log.Println("[Notifier] EcoFinds - Receipt Notification Service")
	log.Println("[Notifier] ========================================")
	log.Printf("[Notifier] Kafka: %v", cfg.Kafka.Brokers)
	log.Printf("[Notifier] Topic: %s", cfg.Kafka.Topic)
	log.Printf("[Notifier] Group: %s", consumerGroup)
	log.Printf("[Notifier] SMTP: %s:%s", cfg.SMTP.Host, cfg.SMTP.Port)

	emailSvc := email.NewService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
	handler := notification.NewHandler(emailSvc)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, consumerGroup)
	defer consumer.Close()

	go func() {
		log.Println("[Notifier] Starting event consumer...")
		if err := consumer.Consume(ctx, handler.HandleEvent); err != nil {
			if ctx.Err() == nil {
				log.Printf("[Notifier] Consumer error: %v", err)
			}
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Notifier] Shutting down...")
	cancel()
}
