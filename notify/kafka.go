package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/CreativeUnicorns/stationprefs"
)

// DefaultKafkaTopic is used when no topic is configured.
const DefaultKafkaTopic = "stationprefs.changes"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier writes one message per change, keyed by preference key so that
// changes of the same key stay ordered within a partition.
type KafkaNotifier struct {
	writer messageWriter
	now    func() time.Time
}

func NewKafkaNotifier(brokers []string, topic string) (*KafkaNotifier, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("%w: kafka notifier needs at least one broker", stationprefs.ErrInvalidInput)
	}
	if topic == "" {
		topic = DefaultKafkaTopic
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    1,
		RequiredAcks: kafka.RequireOne,
	}
	return newKafkaNotifier(w), nil
}

func newKafkaNotifier(w messageWriter) *KafkaNotifier {
	return &KafkaNotifier{writer: w, now: time.Now}
}

func (k *KafkaNotifier) Notify(ctx context.Context, key string) error {
	at := k.now()
	data, err := encodeEvent(key, at)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  at,
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write change of %q to kafka: %w", key, err)
	}
	return nil
}

func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}
