package event

import (
	"context"

	"kirana/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"
)

func (h Handler) ArchiveProductRegistered(ctx context.Context, event *entities.ProductRegistered_v1) error {
	log.FromContext(ctx).WithFields(logrus.Fields{
		"product_id": event.ProductID,
		"name":       event.Name,
	}).Info("Archiving product registration")

	return h.auditRepo.Store(ctx, entities.Event{
		EventID:     event.Header.ID,
		PublishedAt: event.Header.PublishedAt,
		EventName:   "ProductRegistered_v1",
		Payload:     event,
	})
}
