package events

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryDispatcher(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to subscribers of the matching type", func(t *testing.T) {
		d := NewInMemoryDispatcher()
		var got []EventType
		d.Subscribe(EventInterviewStarted, func(_ context.Context, e Event) error {
			got = append(got, e.Type)
			return nil
		})
		d.Subscribe(EventInterviewDeleted, func(_ context.Context, e Event) error {
			got = append(got, e.Type)
			return nil
		})

		if err := d.Publish(ctx, Event{Type: EventInterviewStarted}); err != nil {
			t.Fatalf("publish failed: %v", err)
		}
		if len(got) != 1 || got[0] != EventInterviewStarted {
			t.Errorf("delivered = %v, want [interview_started]", got)
		}
	})

	t.Run("handler error does not stop delivery", func(t *testing.T) {
		d := NewInMemoryDispatcher()
		calls := 0
		d.Subscribe(EventInterviewCreated, func(context.Context, Event) error {
			calls++
			return errors.New("boom")
		})
		d.Subscribe(EventInterviewCreated, func(context.Context, Event) error {
			calls++
			return nil
		})

		if err := d.Publish(ctx, Event{Type: EventInterviewCreated}); err != nil {
			t.Fatalf("publish failed: %v", err)
		}
		if calls != 2 {
			t.Errorf("calls = %d, want 2", calls)
		}
	})

	t.Run("no subscribers is a no-op", func(t *testing.T) {
		d := NewInMemoryDispatcher()
		if err := d.Publish(ctx, Event{Type: EventInterviewStatusChanged}); err != nil {
			t.Fatalf("publish failed: %v", err)
		}
	})
}
