package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"

	"github.com/pharmaseek/pharmaseek-backend/internal/history"
)

const defaultPublishTimeout = 10 * time.Second

type publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

// SearchEventPublisher emits search_executed events to Pub/Sub. It
// satisfies the history service's publisher contract.
type SearchEventPublisher struct {
	pub publisher
}

// NewSearchEventPublisher wraps a Pub/Sub publisher handle.
func NewSearchEventPublisher(pub *gcppubsub.Publisher) (*SearchEventPublisher, error) {
	if pub == nil {
		return nil, fmt.Errorf("pubsub publisher is required")
	}
	return &SearchEventPublisher{pub: &gcpPublisher{Publisher: pub}}, nil
}

// PublishSearchExecuted serializes and publishes one search event,
// blocking until the server acknowledges it or the timeout elapses.
func (p *SearchEventPublisher) PublishSearchExecuted(ctx context.Context, event history.SearchExecutedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding search event: %w", err)
	}

	msg := &gcppubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"event_type":  "search_executed",
			"occurred_at": event.OccurredAt.UTC().Format(time.RFC3339),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
	defer cancel()
	result := p.pub.Publish(publishCtx, msg)
	if result == nil {
		return fmt.Errorf("publisher returned nil result")
	}
	if _, err := result.Get(publishCtx); err != nil {
		return fmt.Errorf("publishing search event: %w", err)
	}
	return nil
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return p.Publisher.Publish(ctx, msg)
}
