// Package notify delivers "preference changed" signals to the processes that
// render station metadata, such as the stream title and playout labels.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/CreativeUnicorns/stationprefs"
)

// Driver names accepted by Open.
const (
	DriverNone  = "none"
	DriverLog   = "log"
	DriverRedis = "redis"
	DriverKafka = "kafka"
)

// Config selects a notifier for Open.
type Config struct {
	Driver       string
	RedisAddr    string
	RedisChannel string
	KafkaBrokers []string
	KafkaTopic   string
}

// Event is the payload published for every change.
type Event struct {
	Key string    `json:"key"`
	At  time.Time `json:"at"`
}

func encodeEvent(key string, at time.Time) ([]byte, error) {
	data, err := json.Marshal(Event{Key: key, At: at.UTC()})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode change event: %v", stationprefs.ErrSerialization, err)
	}
	return data, nil
}

// Func adapts a plain function to stationprefs.Notifier.
type Func func(ctx context.Context, key string) error

func (f Func) Notify(ctx context.Context, key string) error {
	return f(ctx, key)
}

// LogNotifier only records changes in the log.
type LogNotifier struct {
	logger stationprefs.Logger
}

func NewLogNotifier(logger stationprefs.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, key string) error {
	n.logger.Info("Preference changed", "key", key)
	return nil
}

// Closer is implemented by notifiers holding network resources.
type Closer interface {
	stationprefs.Notifier
	Close() error
}

type nopCloser struct {
	stationprefs.Notifier
}

func (nopCloser) Close() error { return nil }

// Open builds the notifier named by cfg.Driver. It returns nil, nil for none.
func Open(cfg Config, logger stationprefs.Logger) (Closer, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverNone:
		return nil, nil
	case DriverLog:
		return nopCloser{NewLogNotifier(logger)}, nil
	case DriverRedis:
		p, err := NewRedisPublisher(cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			return nil, err
		}
		return p, nil
	case DriverKafka:
		k, err := NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, err
		}
		return k, nil
	default:
		return nil, fmt.Errorf("%w: unknown notify driver %q", stationprefs.ErrInvalidInput, cfg.Driver)
	}
}
