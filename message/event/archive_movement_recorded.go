package event

import (
	"context"

	"kirana/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"
)

func (h Handler) ArchiveStockMovementRecorded(ctx context.Context, event *entities.StockMovementRecorded_v1) error {
	log.FromContext(ctx).WithFields(logrus.Fields{
		"movement_id":  event.MovementID,
		"product_id":   event.ProductID,
		"action":       string(event.Action),
		"quantity":     event.Quantity,
		"new_quantity": event.NewQuantity,
	}).Info("Archiving stock movement")

	return h.auditRepo.Store(ctx, entities.Event{
		EventID:     event.Header.ID,
		PublishedAt: event.Header.PublishedAt,
		EventName:   "StockMovementRecorded_v1",
		Payload:     event,
	})
}
