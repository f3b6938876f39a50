package queue

import (
	"context"
	"testing"
	"time"
)

type stubConfirmation struct {
	done  chan struct{}
	acked bool
}

func (c *stubConfirmation) Done() <-chan struct{} { return c.done }
func (c *stubConfirmation) Acked() bool           { return c.acked }

func confirmed(acked bool) *stubConfirmation {
	c := &stubConfirmation{done: make(chan struct{}), acked: acked}
	close(c.done)
	return c
}

func TestAwaitConfirm(t *testing.T) {
	t.Run("ack succeeds", func(t *testing.T) {
		if err := awaitConfirm(context.Background(), confirmed(true)); err != nil {
			t.Fatalf("awaitConfirm() error = %v", err)
		}
	})

	t.Run("nack fails", func(t *testing.T) {
		if err := awaitConfirm(context.Background(), confirmed(false)); err == nil {
			t.Fatal("awaitConfirm() should fail on a nacked publish")
		}
	})

	t.Run("no confirmation before cancel fails", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		pending := &stubConfirmation{done: make(chan struct{})}
		if err := awaitConfirm(ctx, pending); err == nil {
			t.Fatal("awaitConfirm() should fail when the broker never answers")
		}
	})
}
