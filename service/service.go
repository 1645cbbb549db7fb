package service

import (
	"context"

	"kirana/db"
	"kirana/message"
	"kirana/message/event"
	"kirana/message/outbox"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Service struct {
	watermillRouter *watermillMessage.Router

	ProductRepo db.ProductRepository
	StockRepo   db.StockRepository
}

func New(conn db.DB) Service {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	if err := outbox.InitializeTopic(conn.Conn, watermillLogger); err != nil {
		panic(err)
	}

	productRepo := db.NewProductRepository(&conn)
	stockRepo := db.NewStockRepository(&conn)
	auditRepo := db.NewAuditRepository(&conn)

	eventsHandler := event.NewHandler(auditRepo)
	eventProcessorConfig := event.NewProcessorConfig(conn.Conn, watermillLogger)

	watermillRouter := message.NewWatermillRouter(
		eventProcessorConfig,
		eventsHandler,
		watermillLogger,
	)

	return Service{
		watermillRouter: watermillRouter,
		ProductRepo:     productRepo,
		StockRepo:       stockRepo,
	}
}

func (s Service) Run(ctx context.Context) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	return errgrp.Wait()
}

// Running is closed once the event router consumes the outbox, so callers can
// wait for it before writing.
func (s Service) Running() <-chan struct{} {
	return s.watermillRouter.Running()
}
