package kafka

import (
	"context"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
	"github.com/renanbmello/api-ecommerce/internal/logging"
	"github.com/renanbmello/api-ecommerce/internal/usecase"
)

// OrderStatusChangedHandler applies fulfillment status events to orders.
type OrderStatusChangedHandler struct {
	Repo  usecase.OrderRepo
	Cache usecase.OrderCache // optional
}

func NewOrderStatusChangedHandler(repo usecase.OrderRepo, cache usecase.OrderCache) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{Repo: repo, Cache: cache}
}

func (h *OrderStatusChangedHandler) Handle(ctx context.Context, ev usecase.OrderStatusChangedMsg) error {
	to, err := domain.ParseStatus(ev.Status)
	if err != nil {
		// Unknown status from an external system; drop rather than retry forever.
		logging.New("kafka").Warn("unknown order status", "order_id", ev.OrderID, "status", ev.Status)
		return nil
	}

	// Guarded transitions only: PENDING may start processing or be cancelled,
	// PROCESSING may complete or be cancelled. Anything else is a no-op.
	var froms []domain.Status
	switch to {
	case domain.StatusProcessing:
		froms = []domain.Status{domain.StatusPending}
	case domain.StatusCompleted:
		froms = []domain.Status{domain.StatusProcessing}
	case domain.StatusCancelled:
		froms = []domain.Status{domain.StatusPending, domain.StatusProcessing}
	default:
		return nil
	}

	applied := false
	for _, from := range froms {
		ok, err := h.Repo.UpdateStatusIf(ctx, ev.OrderID, from, to)
		if err != nil {
			return err
		}
		if ok {
			applied = true
			break
		}
	}

	// Cache best-effort
	if applied && h.Cache != nil {
		_ = h.Cache.SetStatus(ctx, ev.OrderID, string(to))
	}
	return nil
}
