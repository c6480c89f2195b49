package queue

import "context"

// Exchange is the topic exchange every trips event goes through.
const Exchange = "trips.events"

type Publisher interface {
	Publish(ctx context.Context, exchange, key string, event any, reqID string) error
	Close() error
}

// NoopPub stands in when no broker is configured; callers publish
// unconditionally and don't care whether anything listens.
type NoopPub struct{}

func NewNoop() Publisher { return NoopPub{} }

func (NoopPub) Publish(ctx context.Context, exchange, key string, event any, reqID string) error {
	return nil
}
func (NoopPub) Close() error { return nil }
