package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	BorrowingTopic         = "library.borrowings"
	ReportsConsumerGroup   = "library-reports"
	consumeRestartInterval = 5 * time.Second
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewSyncProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Retry.Max = 3

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()
	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	defaultCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume joins the group session in a loop until ctx is cancelled; sessions end on every rebalance.
func Consume(ctx context.Context, group sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, log *zap.Logger, topics ...string) {
	for {
		if err := group.Consume(ctx, topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			log.Error("group.Consume", zap.Error(err), zap.Strings("topics", topics))
			select {
			case <-ctx.Done():
				return
			case <-time.After(consumeRestartInterval):
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
}

type Enqueuer interface {
	Enqueue(topic, key string, v any) error
}

func NewEnqueuer(producer sarama.SyncProducer) Enqueuer {
	if producer == nil {
		return nopEnqueuer{}
	}
	return &enqueuerImpl{producer: producer}
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
}

func (q *enqueuerImpl) Enqueue(topic, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err = q.producer.SendMessage(msg); err != nil {
		return errors.Wrap(err, "SendMessage")
	}
	return nil
}

type nopEnqueuer struct{}

func (nopEnqueuer) Enqueue(string, string, any) error { return nil }
