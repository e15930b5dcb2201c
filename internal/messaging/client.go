// Package messaging moves screenshot-processing jobs between the API server
// and the background worker over RabbitMQ. Uploading a screenshot publishes a
// job; the worker reads the image back from object storage, measures it and
// writes the dimensions into the database.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"gamesarchive/internal/config"
)

// ScreenshotJob is the queue payload for one uploaded screenshot.
type ScreenshotJob struct {
	ScreenshotID int64  `json:"screenshot_id"`
	ObjectKey    string `json:"object_key"`
}

// Publisher is what the screenshot service depends on; *Client satisfies it.
type Publisher interface {
	PublishScreenshotJob(ctx context.Context, job ScreenshotJob) error
}

// Client holds one connection, one channel and the declared job queue.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// Idempotent: declares the queue if missing, no-op when it exists.
	// Durable so jobs survive a broker restart.
	q, err := ch.QueueDeclare(cfg.ScreenshotQueue, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %q: %w", cfg.ScreenshotQueue, err)
	}

	logger.Info("connected to RabbitMQ", "queue", q.Name)
	return &Client{conn: conn, channel: ch, queue: q, logger: logger}, nil
}

func (c *Client) Close() {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("closing RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("closing RabbitMQ connection", "error", err)
		}
	}
}

func (c *Client) PublishScreenshotJob(ctx context.Context, job ScreenshotJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish job: %w", err)
	}
	c.logger.Debug("screenshot job published", "screenshot_id", job.ScreenshotID)
	return nil
}

// ConsumeScreenshotJobs delivers each queued job to handler. A handler error
// requeues the job; a malformed body is dropped so it cannot wedge the queue.
// The call blocks until ctx is cancelled or the channel closes.
func (c *Client) ConsumeScreenshotJobs(ctx context.Context, handler func(context.Context, ScreenshotJob) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("consumer registered, waiting for jobs", "queue", c.queue.Name)

	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				c.logger.Info("RabbitMQ channel closed, stopping consumer")
				return nil
			}

			var job ScreenshotJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				c.logger.Error("unmarshalling job", "error", err)
				if err := msg.Nack(false, false); err != nil {
					c.logger.Error("nacking malformed job", "error", err)
				}
				continue
			}

			if err := handler(ctx, job); err != nil {
				c.logger.Error("processing job", "error", err, "screenshot_id", job.ScreenshotID)
				if err := msg.Nack(false, true); err != nil {
					c.logger.Error("nacking job", "error", err)
				}
				continue
			}

			if err := msg.Ack(false); err != nil {
				c.logger.Error("acking job", "error", err)
			}
		case <-ctx.Done():
			c.logger.Info("context cancelled, stopping consumer")
			return nil
		}
	}
}
