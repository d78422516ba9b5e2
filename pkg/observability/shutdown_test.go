package observability

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdown_RunsEachFuncOnce(t *testing.T) {
	sm := NewShutdownManager(NewNopLogger(), time.Second)

	var closes int32
	sm.RegisterShutdownFunc(func(context.Context) error {
		atomic.AddInt32(&closes, 1)
		return nil
	})
	sm.RegisterShutdownFunc(func(context.Context) error {
		atomic.AddInt32(&closes, 1)
		return nil
	})

	require.NoError(t, sm.Shutdown(context.Background()))
	assert.Equal(t, int32(2), atomic.LoadInt32(&closes), "each registered func runs exactly once")
}

func TestShutdown_ReportsFailures(t *testing.T) {
	sm := NewShutdownManager(NewNopLogger(), time.Second)
	sm.RegisterShutdownFunc(func(context.Context) error {
		return errors.New("close failed")
	})

	assert.Error(t, sm.Shutdown(context.Background()))
}

func TestShutdown_Timeout(t *testing.T) {
	sm := NewShutdownManager(NewNopLogger(), time.Second)
	release := make(chan struct{})
	defer close(release)
	sm.RegisterShutdownFunc(func(context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := sm.Shutdown(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestShutdown_NilServersSkipped(t *testing.T) {
	sm := NewShutdownManager(NewNopLogger(), time.Second, nil)
	assert.NoError(t, sm.Shutdown(context.Background()))
}
