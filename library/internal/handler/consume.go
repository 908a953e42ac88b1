package handler

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

type borrowingEvents func(ctx context.Context, event model.BorrowingEvent) error

type Consumer struct {
	eventHandler borrowingEvents
	log          *zap.Logger
}

func NewConsumer(handler borrowingEvents, log *zap.Logger) *Consumer {
	return &Consumer{
		eventHandler: handler,
		log:          log.Named("consumer"),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var event model.BorrowingEvent
			if err := json.Unmarshal(message.Value, &event); err != nil {
				consumer.log.Error("json.Unmarshal", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := consumer.eventHandler(session.Context(), event); err != nil {
				consumer.log.Error("consumer.eventHandler", zap.Error(err))
				continue
			}

			consumer.log.Debug("Message claimed:", zap.String("value", string(message.Value)), zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
