package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const LendingTopic = "library.lending"

type Config struct {
	Addrs []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
	Topic string   `yaml:"topic" envconfig:"KAFKA_TOPIC" default:"library.lending"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Timeout = 5 * time.Second

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

// LendingEvent is published once per committed state change of a book transaction.
type LendingEvent struct {
	EventID       string    `json:"event_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	Action        string    `json:"action"`
	TransactionID int       `json:"transaction_id"`
	BookID        int       `json:"book_id"`
	ResidentID    int       `json:"resident_id"`
	ActorID       *int      `json:"actor_id,omitempty"`
	Status        string    `json:"status"`
	DueDate       time.Time `json:"due_date"`
}
