package outbox

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-sql/v2/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
)

// NewPGSubscriber reads the outbox stream straight from Postgres; there is no
// broker hop. The consumer group keeps an own offset per handler.
func NewPGSubscriber(db *sqlx.DB, consumerGroup string, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	subConfig := sql.SubscriberConfig{
		SchemaAdapter:    sql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   sql.DefaultPostgreSQLOffsetsAdapter{},
		ConsumerGroup:    consumerGroup,
		InitializeSchema: true,
	}

	return sql.NewSubscriber(db, subConfig, logger)
}

// InitializeTopic creates the outbox tables up front, so transactional
// publishers never race the first subscriber on schema creation.
func InitializeTopic(db *sqlx.DB, logger watermill.LoggerAdapter) error {
	sub, err := sql.NewSubscriber(db, sql.SubscriberConfig{
		SchemaAdapter:  sql.DefaultPostgreSQLSchema{},
		OffsetsAdapter: sql.DefaultPostgreSQLOffsetsAdapter{},
	}, logger)
	if err != nil {
		return err
	}
	defer sub.Close()

	return sub.SubscribeInitialize(Topic)
}
