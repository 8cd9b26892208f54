package events

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"cotafrete/internal/usecase/interfaces"

	skafka "github.com/segmentio/kafka-go"
)

const DefaultTopic = "cotafrete.eventos"

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// typed is implemented by payloads that know their event type; the type is
// copied to the event-type header so consumers can route without decoding.
type typed interface {
	EventType() string
}

// KafkaPublisher writes JSON domain events keyed by quote id, so every event
// of one quote lands on the same partition in order.
type KafkaPublisher struct {
	writer Writer
}

var _ interfaces.IEventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher accepts a comma-separated broker list (KAFKA_BROKERS).
func NewKafkaPublisher(brokers, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	addrs := make([]string, 0)
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	w := &skafka.Writer{
		Addr:         skafka.TCP(addrs...),
		Topic:        topic,
		Balancer:     &skafka.Hash{},
		RequiredAcks: skafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	log.Printf("[events][kafka] publisher ready brokers=%v topic=%s", addrs, topic)
	return &KafkaPublisher{writer: w}
}

// NewKafkaPublisherWithWriter allows injecting a test writer.
func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		log.Printf("[events][kafka] marshal failed key=%s err=%v", key, err)
		return err
	}
	msg := skafka.Message{Key: []byte(key), Value: b}
	if t, ok := value.(typed); ok {
		msg.Headers = append(msg.Headers, skafka.Header{Key: "event-type", Value: []byte(t.EventType())})
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Printf("[events][kafka] write failed key=%s err=%v", key, err)
		return err
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events; used when no broker is configured.
type NoopPublisher struct{}

var _ interfaces.IEventPublisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NoopPublisher) Close() error                                       { return nil }
