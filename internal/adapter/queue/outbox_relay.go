package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/renanbmello/api-ecommerce/internal/logging"
	"github.com/renanbmello/api-ecommerce/internal/usecase"
)

// Publisher sends one event body to the broker.
type Publisher interface {
	Publish(ctx context.Context, body []byte) error
}

// OutboxRelay drains pending outbox rows to RabbitMQ. Rows are marked
// sent only after a confirmed publish; failures get a retry backoff.
type OutboxRelay struct {
	outbox   usecase.OutboxRepo
	producer Publisher
	interval time.Duration
	batch    int
}

func NewOutboxRelay(outbox usecase.OutboxRepo, producer Publisher, interval time.Duration) *OutboxRelay {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &OutboxRelay{outbox: outbox, producer: producer, interval: interval, batch: 50}
}

// Run polls until ctx is cancelled.
func (r *OutboxRelay) Run(ctx context.Context) {
	l := logging.New("outbox-relay")
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.drain(ctx, l); err != nil {
				l.Error("drain failed", "err", err.Error())
			}
		}
	}
}

func (r *OutboxRelay) drain(ctx context.Context, l *slog.Logger) error {
	pending, err := r.outbox.FetchPending(ctx, r.batch)
	if err != nil {
		return err
	}
	for _, rec := range pending {
		if err := r.producer.Publish(ctx, rec.Payload); err != nil {
			l.Warn("publish failed", "outbox_id", rec.ID, "err", err.Error())
			_ = r.outbox.MarkFailed(ctx, rec.ID)
			continue
		}
		if err := r.outbox.MarkSent(ctx, rec.ID); err != nil {
			return err
		}
	}
	return nil
}
