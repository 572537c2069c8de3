package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/config"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testAssessment() domain.Assessment {
	return domain.Assessment{
		ID: "pmv-0123456789abcdef",
		Selection: domain.Selection{
			Temperature: 28,
			Humidity:    70,
			Clothing:    []string{"Shirt", "Full Cotton Pant"},
			Activity:    "Typing",
		},
		Features:   domain.FeatureVector{Temperature: 28, Humidity: 70, MET: 1.1, CLO: 0.85},
		Result:     domain.NewPmvResult(1.42),
		AssessedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSerializeToMessage(t *testing.T) {
	a := testAssessment()

	msg, err := serializeToMessage(a)
	require.NoError(t, err)

	assert.Equal(t, []byte(a.ID), msg.Key)
	assert.Contains(t, string(msg.Value), `"sensation":"slightly_warm"`)
	assert.Contains(t, string(msg.Value), `"assessed_at":"2025-06-01T12:00:00Z"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "sensation", msg.Headers[0].Key)
	assert.Equal(t, []byte("slightly_warm"), msg.Headers[0].Value)
	assert.Equal(t, "assessed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2025-06-01T12:00:00Z"), msg.Headers[1].Value)

	var decoded domain.Assessment
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, a.Result, decoded.Result)
	assert.Equal(t, a.Selection, decoded.Selection)
}

func TestWriter_Publish(t *testing.T) {
	fw := &fakeWriter{}
	w := &Writer{writer: fw, topic: "comfort-assessments", logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	require.NoError(t, w.Publish(context.Background(), testAssessment()))
	require.Len(t, fw.msgs, 1)
	assert.Equal(t, "pmv-0123456789abcdef", string(fw.msgs[0].Key))

	require.NoError(t, w.Close())
	assert.True(t, fw.closed)
}

func TestWriter_PublishError(t *testing.T) {
	fw := &fakeWriter{err: errors.New("leader not available")}
	w := &Writer{writer: fw, topic: "comfort-assessments", logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	err := w.Publish(context.Background(), testAssessment())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comfort-assessments")
	assert.Contains(t, err.Error(), "leader not available")
}

func TestNewWriter_UsesConfig(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "assessments"}
	w := NewWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	kw, ok := w.writer.(*kafkago.Writer)
	require.True(t, ok)
	assert.Equal(t, "assessments", kw.Topic)
	assert.Equal(t, "localhost:9092", kw.Addr.String())
	require.NoError(t, w.Close())
}
