package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	changekafka "morna/internal/adapters/out/kafka"
	"morna/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func TestChangePublisher_Publish(t *testing.T) {
	ctx := t.Context()
	writer := new(MockWriter)
	publisher := changekafka.NewChangePublisherWithWriter(writer)

	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	events := []ports.ChangeEvent{
		{Table: ports.TableContainers, Type: ports.EventUpdate, ID: "c-1", At: at},
		{Table: ports.TableBoxes, Type: ports.EventUpdate, ID: "b-1", At: at},
	}

	var written []kafka.Message
	writer.On("WriteMessages", ctx, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	require.NoError(t, publisher.Publish(ctx, events...))

	require.Len(t, written, 2)
	assert.Equal(t, "containers:c-1", string(written[0].Key))
	assert.Equal(t, "boxes:b-1", string(written[1].Key))

	var decoded ports.ChangeEvent
	require.NoError(t, json.Unmarshal(written[1].Value, &decoded))
	assert.Equal(t, events[1], decoded)
	writer.AssertExpectations(t)
}

func TestChangePublisher_PublishNothing(t *testing.T) {
	writer := new(MockWriter)
	publisher := changekafka.NewChangePublisherWithWriter(writer)

	require.NoError(t, publisher.Publish(t.Context()))
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestChangePublisher_WriteError(t *testing.T) {
	ctx := t.Context()
	writer := new(MockWriter)
	publisher := changekafka.NewChangePublisherWithWriter(writer)
	writer.On("WriteMessages", ctx, mock.Anything).Return(errors.New("leader not available")).Once()

	err := publisher.Publish(ctx, ports.ChangeEvent{Table: ports.TableOrders, Type: ports.EventInsert, ID: "o-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}
