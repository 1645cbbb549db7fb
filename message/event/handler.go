package event

import (
	"context"

	"kirana/entities"
)

type AuditRepository interface {
	Store(ctx context.Context, event entities.Event) error
}

type Handler struct {
	auditRepo AuditRepository
}

func NewHandler(auditRepo AuditRepository) Handler {
	if auditRepo == nil {
		panic("missing auditRepo")
	}
	return Handler{
		auditRepo: auditRepo,
	}
}
