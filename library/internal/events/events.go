package events

import (
	"context"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zllibrary/library-service/library/internal/model"
	"github.com/zllibrary/library-service/pkg/circuit_breaker"
	"github.com/zllibrary/library-service/pkg/kafka"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Publisher announces committed lending state changes.
type Publisher interface {
	Publish(ctx context.Context, event kafka.LendingEvent) error
	Close() error
}

func NewLendingEvent(action model.Action, t model.BookTransaction, actorID *int, at time.Time) kafka.LendingEvent {
	return kafka.LendingEvent{
		EventID:       uuid.NewString(),
		OccurredAt:    at.UTC(),
		Action:        action.String(),
		TransactionID: t.ID,
		BookID:        t.BookID,
		ResidentID:    t.ResidentID,
		ActorID:       actorID,
		Status:        t.Status.String(),
		DueDate:       t.DueDate.UTC(),
	}
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
	log      *zap.Logger
}

const (
	cbRecordLength     = 20
	cbCooldown         = 10 * time.Second
	cbThreshold        = 0.5
	cbRecoveryRequests = 3
)

func NewKafkaPublisher(producer sarama.SyncProducer, topic string, log *zap.Logger) *kafkaPublisher {
	if topic == "" {
		topic = kafka.LendingTopic
	}
	return &kafkaPublisher{
		producer: producer,
		topic:    topic,
		cb:       circuit_breaker.New(cbRecordLength, cbCooldown, cbThreshold, cbRecoveryRequests),
		log:      log.Named("events"),
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event kafka.LendingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal lending event")
	}
	// keyed by book so events of one title stay ordered within a partition
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder("book-" + strconv.Itoa(event.BookID)),
		Value: sarama.ByteEncoder(value),
	}
	return p.cb.Call(func() error {
		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			return errors.Wrap(err, "producer.SendMessage")
		}
		p.log.Debug("lending event sent",
			zap.String("event_id", event.EventID),
			zap.String("action", event.Action),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset))
		return nil
	})
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type nopPublisher struct{}

// NewNopPublisher is used when no brokers are configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, kafka.LendingEvent) error { return nil }

func (nopPublisher) Close() error { return nil }
