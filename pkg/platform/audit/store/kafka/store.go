// Package kafka streams audit events to a Kafka topic with franz-go.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "staffdir/pkg/platform/audit"
)

// Config selects the cluster and topic. Partitions and ReplicationFactor of
// -1 use the broker defaults when the topic has to be created.
// DeliveryTimeout caps how long one record may be retried before Append
// fails; zero means DefaultDeliveryTimeout.
type Config struct {
	Brokers           []string
	Topic             string
	Partitions        int32
	ReplicationFactor int16
	DeliveryTimeout   time.Duration
}

const DefaultDeliveryTimeout = 10 * time.Second

// Store produces one record per audit event, keyed by subject ID so all
// events for an employee land on the same partition.
type Store struct {
	client *kgo.Client
	topic  string
}

// New connects to the cluster and makes sure the topic exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka audit store: no brokers configured")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka audit store: topic is required")
	}

	client, err := kgo.NewClient(clientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(ctx, kadm.NewClient(client), cfg); err != nil {
		client.Close()
		return nil, err
	}
	return &Store{client: client, topic: cfg.Topic}, nil
}

func clientOptions(cfg Config) []kgo.Opt {
	timeout := cfg.DeliveryTimeout
	if timeout <= 0 {
		timeout = DefaultDeliveryTimeout
	}
	return []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.RecordDeliveryTimeout(timeout),
	}
}

func ensureTopic(ctx context.Context, adm *kadm.Client, cfg Config) error {
	partitions, replication := cfg.Partitions, cfg.ReplicationFactor
	if partitions == 0 {
		partitions = -1
	}
	if replication == 0 {
		replication = -1
	}
	resps, err := adm.CreateTopics(ctx, partitions, replication, nil, cfg.Topic)
	if err != nil {
		return fmt.Errorf("create audit topic %q: %w", cfg.Topic, err)
	}
	for _, resp := range resps {
		if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create audit topic %q: %w", resp.Topic, resp.Err)
		}
	}
	return nil
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := encode(event)
	if err != nil {
		return err
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.SubjectID),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Health pings the cluster.
func (s *Store) Health(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close flushes nothing: Append is synchronous. It releases the client.
func (s *Store) Close() {
	s.client.Close()
}

func encode(event audit.Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode audit event: %w", err)
	}
	return payload, nil
}
