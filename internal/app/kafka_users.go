package app

import (
	"context"
	"errors"

	"go.uber.org/dig"

	"beexpress/internal/apperr"
	"beexpress/internal/config"
	"beexpress/internal/service/users"
	"beexpress/internal/transport/kafka"
)

// makeUsersKafka adapts the users Processor to the consumer contract.
// A malformed event can never become valid on redelivery, so validation
// failures are marked permanent and the message is acknowledged.
func makeUsersKafka(p *users.Processor) kafka.HandleFunc {
	return func(ctx context.Context, event users.Event) error {
		err := p.Handle(ctx, event)
		if err == nil {
			return nil
		}
		if errors.Is(err, apperr.ErrInvalid) {
			return kafka.Permanent(err)
		}
		return err
	}
}

func newUsersConsumer(cfg *config.Config, h kafka.HandleFunc) (*kafka.Consumer, error) {
	return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		makeUsersKafka,
		newUsersConsumer,
	)
}
