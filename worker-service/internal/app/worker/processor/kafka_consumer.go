package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bistrobot/pkg/logger"
	"bistrobot/pkg/metrics"
	"bistrobot/worker-service/internal/app/worker/entity"
	"bistrobot/worker-service/internal/app/worker/service"

	"github.com/segmentio/kafka-go"
)

// KafkaConsumer обрабатывает события из Kafka топика review_events
type KafkaConsumer struct {
	reader      *kafka.Reader
	groupID     string
	dispatchSvc service.DispatchServiceInterface
	stopChan    chan struct{}
	doneChan    chan struct{}
}

// NewKafkaConsumer создает новый Kafka consumer
func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	dispatchSvc service.DispatchServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       minBytes,
		MaxBytes:       maxBytes,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:      reader,
		groupID:     groupID,
		dispatchSvc: dispatchSvc,
		stopChan:    make(chan struct{}),
		doneChan:    make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().Msg("Starting Kafka consumer...")
	go c.consume(ctx)
}

// Stop останавливает consumer
func (c *KafkaConsumer) Stop() {
	logger.Info().Msg("Stopping Kafka consumer...")
	close(c.stopChan)
	<-c.doneChan
	c.reader.Close()
	logger.Info().Msg("Kafka consumer stopped")
}

// consume читает и обрабатывает сообщения из Kafka
func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}

				logger.Warn().Err(err).Msg("Error fetching message")
				time.Sleep(time.Second)
				continue
			}

			if err := c.processMessage(ctx, message); err != nil {
				// Не коммитим offset при ошибке, сообщение будет повторно обработано
				logger.Error().Err(err).Msg("Error processing message")
			} else {
				if err := c.reader.CommitMessages(ctx, message); err != nil {
					logger.Error().Err(err).Msg("Error committing message")
				}
			}
		}
	}
}

// processMessage обрабатывает одно сообщение из Kafka
func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	var event entity.ReviewEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal review event: %w", err)
	}

	logger.Info().
		Str("event_type", event.EventType).
		Str("review_id", event.ReviewID).
		Int64("offset", message.Offset).
		Int("partition", message.Partition).
		Msg("Received review event")

	metrics.RecordKafkaMessageConsumed("worker-service", message.Topic, c.groupID)

	if err := c.dispatchSvc.ProcessReviewEvent(ctx, &event); err != nil {
		return fmt.Errorf("failed to process review event: %w", err)
	}

	return nil
}

// GetStats возвращает статистику consumer
func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
