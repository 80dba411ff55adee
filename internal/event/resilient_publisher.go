package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/WagerBot_Go/internal/logger"
)

// ErrPublisherClosed is returned by Publish after Shutdown
var ErrPublisherClosed = errors.New("resilient publisher is shut down")

type retryEntry struct {
	event     Event
	attempt   int // 0 is the first delivery
	lastErr   error
	notBefore time.Time
}

// ResilientPublisher delivers events to a Bus from a background worker,
// retrying failures with exponential backoff and dead-lettering what cannot be delivered.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// NewResilientPublisher starts a publisher delivering to bus.
// Events failing maxRetries retries are appended to deadLetterPath.
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()

	return p, nil
}

// PublishWithRetry queues the event for delivery and returns immediately.
// A full queue sends the event straight to the dead-letter file.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	select {
	case <-p.shutdown:
		logger.FromContext(ctx).Warn(LogMsgEventDroppedShutdown, "event_type", event.Type)
		p.writeDeadLetter(event, 0, ErrPublisherClosed)
		return
	default:
	}

	p.enqueue(retryEntry{event: event, notBefore: time.Now()})
}

// Publish implements Bus so the publisher can stand in for the bus it wraps
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	select {
	case <-p.shutdown:
		return ErrPublisherClosed
	default:
	}
	p.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case p.retryQueue <- entry:
	default:
		logger.Warn(LogMsgRetryQueueFull, "event_type", entry.event.Type, "attempt", entry.attempt)
		lastErr := entry.lastErr
		if lastErr == nil {
			lastErr = errors.New("retry queue full")
		}
		p.writeDeadLetter(entry.event, entry.attempt, lastErr)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.shutdown:
			p.drain()
			return
		case entry := <-p.retryQueue:
			if !p.waitUntil(entry.notBefore) {
				p.deliverOnce(entry)
				p.drain()
				return
			}
			p.deliver(entry)
		}
	}
}

// waitUntil sleeps until t and reports false when shutdown interrupted the wait
func (p *ResilientPublisher) waitUntil(t time.Time) bool {
	d := time.Until(t)
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-p.shutdown:
		return false
	}
}

func (p *ResilientPublisher) deliver(entry retryEntry) {
	err := p.bus.Publish(context.Background(), entry.event)
	if err == nil {
		if entry.attempt > 0 {
			logger.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		}
		return
	}

	if entry.attempt >= p.maxRetries {
		logger.Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt+1, "error", err)
		p.writeDeadLetter(entry.event, entry.attempt+1, err)
		return
	}

	next := entry.attempt + 1
	if entry.attempt == 0 {
		logger.Warn(LogMsgEventPublishFailed, "event_type", entry.event.Type, "error", err, "retries", p.maxRetries)
	} else {
		logger.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)
	}
	p.enqueue(retryEntry{
		event:     entry.event,
		attempt:   next,
		lastErr:   err,
		notBefore: time.Now().Add(CalculateRetryDelay(p.retryDelay, next)),
	})
}

// deliverOnce makes a final attempt without scheduling further retries
func (p *ResilientPublisher) deliverOnce(entry retryEntry) {
	if err := p.bus.Publish(context.Background(), entry.event); err != nil {
		p.writeDeadLetter(entry.event, entry.attempt+1, err)
	}
}

func (p *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			p.deliverOnce(entry)
			drained++
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "events", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(event Event, attempts int, lastErr error) {
	if p.deadLetter == nil {
		return
	}
	if err := p.deadLetter.Write(event, attempts, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", event.Type, "error", err)
	}
}

// Shutdown stops accepting events, drains the queue with one final attempt each
// and closes the dead-letter file. It returns ctx.Err() if draining outlasts ctx.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if p.deadLetter != nil {
			return p.deadLetter.Close()
		}
		return nil
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
