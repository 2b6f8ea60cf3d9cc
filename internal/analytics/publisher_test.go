package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/stretchr/testify/require"

	"github.com/pharmaseek/pharmaseek-backend/internal/history"
)

type fakeResult struct {
	id  string
	err error
}

func (r *fakeResult) Get(ctx context.Context) (string, error) {
	return r.id, r.err
}

type fakePublisher struct {
	messages []*gcppubsub.Message
	result   *fakeResult
}

func (f *fakePublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	f.messages = append(f.messages, msg)
	if f.result == nil {
		return nil
	}
	return f.result
}

func TestPublishSearchExecuted(t *testing.T) {
	fake := &fakePublisher{result: &fakeResult{id: "msg-1"}}
	pub := &SearchEventPublisher{pub: fake}

	now := time.Date(2026, time.September, 1, 9, 30, 0, 0, time.UTC)
	count := 4
	err := pub.PublishSearchExecuted(context.Background(), history.SearchExecutedEvent{
		ClientID:    "client-1",
		Query:       "paracetamol",
		ResultCount: &count,
		Type:        "medicine",
		OccurredAt:  now,
	})
	require.NoError(t, err)
	require.Len(t, fake.messages, 1)

	msg := fake.messages[0]
	require.Equal(t, "search_executed", msg.Attributes["event_type"])
	require.Equal(t, "2026-09-01T09:30:00Z", msg.Attributes["occurred_at"])

	var decoded history.SearchExecutedEvent
	require.NoError(t, json.Unmarshal(msg.Data, &decoded))
	require.Equal(t, "paracetamol", decoded.Query)
	require.Equal(t, 4, *decoded.ResultCount)
}

func TestPublishSearchExecutedSurfacesAckError(t *testing.T) {
	fake := &fakePublisher{result: &fakeResult{err: errors.New("topic quota")}}
	pub := &SearchEventPublisher{pub: fake}

	err := pub.PublishSearchExecuted(context.Background(), history.SearchExecutedEvent{Query: "x"})
	require.Error(t, err)
}

func TestPublishSearchExecutedNilResult(t *testing.T) {
	fake := &fakePublisher{}
	pub := &SearchEventPublisher{pub: fake}

	err := pub.PublishSearchExecuted(context.Background(), history.SearchExecutedEvent{Query: "x"})
	require.Error(t, err)
}
