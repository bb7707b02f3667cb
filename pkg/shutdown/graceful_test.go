package shutdown_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteapi/pkg/shutdown"
)

func TestRunHooks_ExecutesAll(t *testing.T) {
	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}
	failing := func(context.Context) error {
		calls.Add(1)
		return errors.New("close failed")
	}

	err := shutdown.RunHooks(context.Background(), time.Second, hook, failing, hook)

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRunHooks_Timeout(t *testing.T) {
	slow := func(ctx context.Context) error {
		select {
		case <-time.After(2 * time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	start := time.Now()
	err := shutdown.RunHooks(context.Background(), 100*time.Millisecond, slow)

	require.ErrorIs(t, err, shutdown.ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRunHooks_IgnoresParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var hookErr error
	err := shutdown.RunHooks(ctx, time.Second, func(hookCtx context.Context) error {
		hookErr = hookCtx.Err()
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, hookErr)
}

func TestWait_ExecutesHooksOnSignal(t *testing.T) {
	hookCalled := make(chan struct{})
	waitDone := make(chan struct{})

	go func() {
		shutdown.Wait(context.Background(), time.Second, func(context.Context) error {
			close(hookCalled)
			return nil
		})
		close(waitDone)
	}()

	time.Sleep(100 * time.Millisecond)

	process, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, process.Signal(syscall.SIGTERM))

	select {
	case <-hookCalled:
	case <-time.After(2 * time.Second):
		t.Fatal("hook was not called")
	}

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return")
	}
}
