package events

import (
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/product_catalog/internal/config"
	"github.com/Pesokrava/product_catalog/internal/pkg/logger"
)

// Consumer subscribes to order events on NATS JetStream
type Consumer struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	logger *logger.Logger
	sub    *nats.Subscription
}

// NewConsumer creates a new JetStream consumer on the orders stream
func NewConsumer(cfg *config.Config, log *logger.Logger) (*Consumer, error) {
	nc, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if err := EnsureStream(js, log); err != nil {
		nc.Close()
		return nil, err
	}

	log.Infof("Connected to NATS at %s", cfg.NATS.URL)

	return &Consumer{
		nc:     nc,
		js:     js,
		logger: log,
	}, nil
}

// Subscribe attaches a durable subscription to the given subject and hands
// each message to handler. Messages are acked only after the handler
// succeeds; failed messages redeliver after AckWait.
func (c *Consumer) Subscribe(subject string, handler func(data []byte) error) error {
	sub, err := c.js.Subscribe(subject, func(msg *nats.Msg) {
		c.logger.Debugf("Received message on subject %s", subject)

		if err := handler(msg.Data); err != nil {
			c.logger.Error("Failed to handle message", err)
			return
		}

		if err := msg.Ack(); err != nil {
			c.logger.Error("Failed to ack message", err)
		}
	}, nats.Durable(ConsumerName), nats.ManualAck(), nats.AckWait(AckWait))
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	c.sub = sub
	return nil
}

// Close drains the subscription and closes the NATS connection
func (c *Consumer) Close() {
	if c.sub != nil {
		if err := c.sub.Drain(); err != nil {
			c.logger.Error("Failed to drain subscription", err)
		}
	}
	if c.nc != nil {
		c.nc.Close()
		c.logger.Info("NATS consumer connection closed")
	}
}
