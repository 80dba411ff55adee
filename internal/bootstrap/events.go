package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/WagerBot_Go/internal/config"
	"github.com/osse101/WagerBot_Go/internal/event"
)

// EventSystem is the in-process event bus plus the optional Kafka forwarding
// hanging off it
type EventSystem struct {
	Bus *event.MemoryBus

	// Publisher retries deliveries to Kafka; nil when forwarding is disabled
	Publisher *event.ResilientPublisher
	sink      *event.KafkaSink
}

// InitializeEventSystem creates the event bus. With KAFKA_BROKERS set, every
// game event is also handed to a resilient publisher that delivers it to the
// Kafka topic with exponential backoff, dead-lettering what cannot be delivered.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	sys := &EventSystem{Bus: event.NewMemoryBus()}

	if len(cfg.KafkaBrokers) == 0 {
		slog.Info(LogMsgKafkaForwardingDisabled)
		return sys, nil
	}

	maxRetries := cfg.EventMaxRetries
	if maxRetries <= 0 {
		maxRetries = config.DefaultEventMaxRetries
	}
	retryDelay := cfg.EventRetryDelay
	if retryDelay <= 0 {
		retryDelay = config.DefaultEventRetryDelay
	}
	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = config.DefaultEventDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	sink := event.NewKafkaSink(event.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
	publisher, err := event.NewResilientPublisher(sink, maxRetries, retryDelay, deadLetterPath)
	if err != nil {
		_ = sink.Close()
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}
	event.SubscribeAll(sys.Bus, event.Forwarder(publisher), event.AllTypes...)

	sys.Publisher = publisher
	sys.sink = sink

	slog.Info(LogMsgEventSystemInitialized,
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_topic", cfg.KafkaTopic,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)

	return sys, nil
}

// Shutdown flushes queued deliveries, then closes the Kafka writer
func (s *EventSystem) Shutdown(ctx context.Context) error {
	if s.Publisher == nil {
		return nil
	}
	slog.Info(LogMsgShuttingDownEventPublisher)
	return errors.Join(s.Publisher.Shutdown(ctx), s.sink.Close())
}
