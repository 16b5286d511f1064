package main

import (
	"encoding/json"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pesokrava/product_catalog/internal/config"
	"github.com/Pesokrava/product_catalog/internal/delivery/events"
	"github.com/Pesokrava/product_catalog/internal/pkg/logger"
	"github.com/Pesokrava/product_catalog/internal/usecase/order"
)

// The notifier tails the orders stream and logs each placed order. It is a
// stand-in for downstream integrations (mail, fulfilment) that consume the
// same events.
func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.Env)
	log.Info("Starting order notifier...")

	consumer, err := events.NewConsumer(cfg, log)
	if err != nil {
		log.Fatal("Failed to create NATS consumer", err)
	}
	defer consumer.Close()

	err = consumer.Subscribe(events.SubjectOrderCreated, func(data []byte) error {
		return handleOrderCreated(log, data)
	})
	if err != nil {
		log.Fatal("Failed to subscribe to order events", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Notifier stopped")
}

// handleOrderCreated logs a placed order. Returning an error leaves the
// message unacked so it redelivers.
func handleOrderCreated(log *logger.Logger, data []byte) error {
	var event order.OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return err
	}

	if event.Order == nil {
		return fmt.Errorf("event on %s carries no order", events.SubjectOrderCreated)
	}

	log.WithFields(map[string]interface{}{
		"order_id":   event.Order.ID,
		"product_id": event.ProductID,
		"quantity":   event.Order.Quantity,
		"total":      event.Order.Total,
	}).Info("Order placed")

	return nil
}
