package event

import (
	"kirana/message/outbox"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
)

var marshaler = cqrs.JSONMarshaler{
	GenerateName: cqrs.StructName,
}

// NewProcessorConfig subscribes every handler to the shared outbox stream.
// All event types travel on one topic, so handlers ack what they don't know.
func NewProcessorConfig(db *sqlx.DB, watermillLogger watermill.LoggerAdapter) cqrs.EventProcessorConfig {
	return cqrs.EventProcessorConfig{
		GenerateSubscribeTopic: func(params cqrs.EventProcessorGenerateSubscribeTopicParams) (string, error) {
			return outbox.Topic, nil
		},
		SubscriberConstructor: func(params cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			return outbox.NewPGSubscriber(db, "svc-kirana.events."+params.HandlerName, watermillLogger)
		},
		AckOnUnknownEvent: true,
		Marshaler:         marshaler,
		Logger:            watermillLogger,
	}
}
