package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "staffdir/pkg/platform/audit"
)

func TestNewRequiresBrokersAndTopic(t *testing.T) {
	_, err := New(context.Background(), Config{Topic: "audit"})
	require.Error(t, err)

	_, err = New(context.Background(), Config{Brokers: []string{"localhost:9092"}})
	require.Error(t, err)
}

func TestClientOptionsBoundDelivery(t *testing.T) {
	client, err := kgo.NewClient(clientOptions(Config{Brokers: []string{"localhost:9092"}, Topic: "audit"})...)
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, DefaultDeliveryTimeout, client.OptValue(kgo.RecordDeliveryTimeout))

	client, err = kgo.NewClient(clientOptions(Config{
		Brokers:         []string{"localhost:9092"},
		Topic:           "audit",
		DeliveryTimeout: time.Second,
	})...)
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, time.Second, client.OptValue(kgo.RecordDeliveryTimeout))
}

func TestEncode(t *testing.T) {
	ts := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	payload, err := encode(audit.Event{
		Category:  audit.CategoryCompliance,
		Timestamp: ts,
		Action:    string(audit.EventEmployeeCreated),
		SubjectID: "emp-1",
	})
	require.NoError(t, err)

	var decoded audit.Event
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "emp-1", decoded.SubjectID)
	assert.Equal(t, ts, decoded.Timestamp)
	assert.NotContains(t, string(payload), "request_id", "empty request id is omitted")
}
