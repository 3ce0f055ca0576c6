package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOutboxPublisher struct {
	mock.Mock
}

func (m *MockOutboxPublisher) Handle(ctx context.Context, cmd commands.PublishOutboxCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type fakeJob struct {
	name     string
	startErr error
	log      *[]string
}

func (f fakeJob) Name() string { return f.name }

func (f fakeJob) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	*f.log = append(*f.log, "start "+f.name)
	return nil
}

func (f fakeJob) Stop() { *f.log = append(*f.log, "stop "+f.name) }

func newRelay(t *testing.T, handler OutboxPublisher, batchSize int) (*OutboxRelayJob, *metrics.Metrics) {
	t.Helper()
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry, registry)
	return NewOutboxRelayJob(handler, batchSize, m, slog.New(slog.NewTextHandler(io.Discard, nil))), m
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, c.Write(&out))
	return out.GetCounter().GetValue()
}

func TestOutboxRelayJob_Run(t *testing.T) {
	t.Run("publishes a batch and counts the messages", func(t *testing.T) {
		handler := new(MockOutboxPublisher)
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PublishOutboxCommand) bool {
			return cmd.BatchSize() == 25
		})).Return(3, nil).Once()
		job, m := newRelay(t, handler, 25)

		job.run(t.Context())

		handler.AssertExpectations(t)
		assert.InDelta(t, 3, counterValue(t, m.OutboxSent), 0)
		assert.InDelta(t, 0, counterValue(t, m.OutboxFailures), 0)
	})

	t.Run("counts failures and keeps going", func(t *testing.T) {
		handler := new(MockOutboxPublisher)
		handler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("broker unavailable")).Twice()
		job, m := newRelay(t, handler, 10)

		job.run(t.Context())
		job.run(t.Context())

		handler.AssertExpectations(t)
		assert.InDelta(t, 2, counterValue(t, m.OutboxFailures), 0)
		assert.InDelta(t, 0, counterValue(t, m.OutboxSent), 0)
	})

	t.Run("uses the default batch size", func(t *testing.T) {
		handler := new(MockOutboxPublisher)
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PublishOutboxCommand) bool {
			return cmd.BatchSize() == DefaultOutboxBatchSize
		})).Return(0, nil).Once()
		job, _ := newRelay(t, handler, 0)

		job.run(t.Context())

		handler.AssertExpectations(t)
	})

	t.Run("rejects an oversized batch without calling the handler", func(t *testing.T) {
		handler := new(MockOutboxPublisher)
		job, _ := newRelay(t, handler, commands.MaxOutboxBatchSize+1)

		job.run(t.Context())

		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestOutboxRelayJob_StartStop(t *testing.T) {
	handler := new(MockOutboxPublisher)
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()
	job, _ := newRelay(t, handler, 10)

	require.NoError(t, job.Start())
	job.Stop()
}

func TestJobManager(t *testing.T) {
	t.Run("starts in order and stops in reverse", func(t *testing.T) {
		var log []string
		jm := NewJobManager(fakeJob{name: "a", log: &log}, fakeJob{name: "b", log: &log})

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
	})

	t.Run("stops started jobs when one fails", func(t *testing.T) {
		var log []string
		jm := NewJobManager(
			fakeJob{name: "a", log: &log},
			fakeJob{name: "b", log: &log, startErr: errors.New("bad schedule")},
		)

		err := jm.StartAll()

		require.ErrorContains(t, err, "failed to start b")
		assert.Equal(t, []string{"start a", "stop a"}, log)
	})
}
