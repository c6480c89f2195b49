package queue

import (
	"context"
	"testing"
)

func TestNoopPublisher(t *testing.T) {
	t.Parallel()

	p := NewNoop()
	if err := p.Publish(context.Background(), Exchange, KeyUserRegistered, UserRegistered{}, "req-1"); err != nil {
		t.Fatalf("noop publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("noop close: %v", err)
	}
}
