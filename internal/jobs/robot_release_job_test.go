package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReleaseHandler struct {
	mock.Mock
}

func (m *MockReleaseHandler) Handle(ctx context.Context, cmd commands.ReleaseDeliveredRobotsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRobotReleaseJob_RunsOnSchedule(t *testing.T) {
	handler := new(MockReleaseHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(2, nil)
	logs := &syncBuffer{}

	job := jobs.NewRobotReleaseJob(handler, "* * * * * *", slog.New(slog.NewTextHandler(logs, nil)))
	require.NoError(t, job.Start())

	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "Released robots")
	}, 3*time.Second, 50*time.Millisecond)
	job.Stop()

	handler.AssertCalled(t, "Handle", mock.Anything, mock.Anything)
	assert.Contains(t, logs.String(), "count=2")
	assert.Contains(t, logs.String(), "component=robot_release_job")
}

func TestRobotReleaseJob_LogsFailures(t *testing.T) {
	handler := new(MockReleaseHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("db down"))
	logs := &syncBuffer{}

	manager := jobs.NewJobManager(handler, "* * * * * *", slog.New(slog.NewTextHandler(logs, nil)))
	require.NoError(t, manager.StartAll())

	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "Robot release job failed")
	}, 3*time.Second, 50*time.Millisecond)
	manager.StopAll()

	assert.Contains(t, logs.String(), "db down")
}

func TestRobotReleaseJob_InvalidSchedule(t *testing.T) {
	manager := jobs.NewJobManager(new(MockReleaseHandler), "every now and then", slog.Default())

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "start robot release job")
}
