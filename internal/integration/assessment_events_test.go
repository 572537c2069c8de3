//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/kafka"
	"github.com/couchcryptid/thermal-comfort-service/internal/comfort"
	"github.com/couchcryptid/thermal-comfort-service/internal/config"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/couchcryptid/thermal-comfort-service/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testTopic = "test-comfort-assessments"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("thermal-comfort-test"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// linearPredictor is the shipped linear model inlined.
var linearPredictor = domain.PredictorFunc(func(_ context.Context, x domain.FeatureVector) (float64, error) {
	return -10.105 + 0.32*x.Temperature + 0.012*x.Humidity + 0.9*x.MET + 0.85*x.CLO, nil
})

// TestAssessmentEventsPublished runs assessments through the comfort service
// with the Kafka publisher and reads the events back from the topic.
func TestAssessmentEventsPublished(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{
		KafkaBrokers:  []string{broker},
		KafkaTopic:    testTopic,
		EventsEnabled: true,
	}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	svc := comfort.New(domain.DefaultCatalog(), linearPredictor, writer, discardLogger(), metrics)

	selections := []domain.Selection{
		{Temperature: 25, Humidity: 50, Clothing: []string{"Shirt"}, Activity: "Seated, quiet"},
		{Temperature: 38, Humidity: 70, Activity: "Walking (4.3 km/h)"},
	}
	var want []domain.Assessment
	for _, sel := range selections {
		a, err := svc.Assess(ctx, sel)
		require.NoError(t, err)
		want = append(want, a)
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1 << 20,
	})
	t.Cleanup(func() { _ = reader.Close() })

	for _, expected := range want {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := reader.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read assessment event")

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, expected.ID, string(msg.Key))
		assert.Equal(t, expected.Result.Sensation.Key(), headers["sensation"])
		assert.NotEmpty(t, headers["assessed_at"])

		var got domain.Assessment
		require.NoError(t, json.Unmarshal(msg.Value, &got))
		assert.Equal(t, expected.ID, got.ID)
		assert.Equal(t, expected.Selection, got.Selection)
		assert.InDelta(t, expected.Result.Value, got.Result.Value, 1e-9)
		assert.Equal(t, expected.Result.Sensation, got.Result.Sensation)
	}
}

// TestAssessmentSucceedsWhenBrokerUnavailable checks that a publish failure
// does not fail the assessment.
func TestAssessmentSucceedsWhenBrokerUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := &config.Config{
		KafkaBrokers:  []string{"127.0.0.1:1"},
		KafkaTopic:    testTopic,
		EventsEnabled: true,
	}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	svc := comfort.New(domain.DefaultCatalog(), linearPredictor, writer, discardLogger(), observability.NewMetricsForTesting())

	publishCtx, publishCancel := context.WithTimeout(ctx, 5*time.Second)
	defer publishCancel()
	a, err := svc.Assess(publishCtx, domain.Selection{Temperature: 25, Humidity: 50, Activity: "Sleeping"})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
}
