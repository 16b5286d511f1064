package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/product_catalog/internal/pkg/logger"
)

const (
	// StreamName is the JetStream stream for order events
	StreamName = "ORDERS"

	// StreamSubjects defines the subjects this stream captures
	StreamSubjects = "orders.*"

	// SubjectOrderCreated is published after an order commits
	SubjectOrderCreated = "orders.created"

	// ConsumerName is the durable consumer for the order notifier
	ConsumerName = "order-notifier"

	// AckWait is how long to wait for acknowledgment before redelivery
	AckWait = 30 * time.Second
)

// EnsureStream creates the orders stream when it does not exist yet
func EnsureStream(js nats.JetStreamContext, log *logger.Logger) error {
	_, err := js.StreamInfo(StreamName)
	if err == nil {
		log.Debugf("JetStream stream %s already exists", StreamName)
		return nil
	}

	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("failed to look up stream %s: %w", StreamName, err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{StreamSubjects},
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream %s: %w", StreamName, err)
	}

	log.Infof("Created JetStream stream %s", StreamName)
	return nil
}
