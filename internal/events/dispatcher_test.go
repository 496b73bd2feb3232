package events

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/egresados-portal/internal/domain"
)

func TestDispatcherDeliversToAllSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var first, second []Event
	dispatcher.Subscribe(EventSessionStarted, func(_ context.Context, e Event) error {
		first = append(first, e)
		return nil
	})
	dispatcher.Subscribe(EventSessionStarted, func(_ context.Context, e Event) error {
		second = append(second, e)
		return errors.New("subscriber failure is swallowed")
	})

	event := NewSessionStarted("g1", domain.RoleEgresado)
	if err := dispatcher.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("deliveries = %d/%d, want 1/1", len(first), len(second))
	}
	if first[0].ID == "" || first[0].SubjectID != "g1" || first[0].Role != domain.RoleEgresado {
		t.Errorf("event = %+v, want populated session_started for g1", first[0])
	}
}

func TestDispatcherIgnoresOtherEventTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := 0
	dispatcher.Subscribe(EventSessionEnded, func(context.Context, Event) error {
		called++
		return nil
	})

	if err := dispatcher.Publish(context.Background(), NewSessionStarted("g1", domain.RoleEgresado)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if called != 0 {
		t.Errorf("session_ended handler called %d times for session_started", called)
	}

	if err := dispatcher.Publish(context.Background(), NewSessionEnded("g1", ReasonLogout)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if called != 1 {
		t.Errorf("session_ended handler called %d times, want 1", called)
	}
}
