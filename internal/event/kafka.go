package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the sink needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter builds a writer for the given brokers and topic
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           KafkaBatchTimeout,
		AllowAutoTopicCreation: true,
	}
}

// KafkaSink is a publish-only Bus that forwards events to a Kafka topic as JSON
type KafkaSink struct {
	writer MessageWriter
}

// NewKafkaSink wraps a writer
func NewKafkaSink(w MessageWriter) *KafkaSink {
	return &KafkaSink{writer: w}
}

// Publish writes the event as one message keyed by its partition key
func (s *KafkaSink) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("%s: %w", LogMsgKafkaMarshalFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, KafkaWriteTimeout)
	defer cancel()

	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(partitionKey(evt)),
		Value: payload,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(evt.Type)},
			{Key: "version", Value: []byte(evt.Version)},
		},
	})
}

// Subscribe is a no-op; the sink only forwards
func (s *KafkaSink) Subscribe(Type, Handler) {}

// Close flushes and closes the writer
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

// partitionKey keeps events of one region, user or day on one partition
func partitionKey(evt Event) string {
	for _, key := range []string{"region_id", "user_id", "date"} {
		if v, ok := evt.GetMetadataValue(key).(string); ok && v != "" {
			return v
		}
	}
	return string(evt.Type)
}

// Forwarder returns a Handler that hands events to the resilient publisher.
// Delivery happens in the background, so the handler never fails the publishing call.
func Forwarder(p *ResilientPublisher) Handler {
	return func(ctx context.Context, evt Event) error {
		p.PublishWithRetry(ctx, evt)
		return nil
	}
}
