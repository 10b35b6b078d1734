package goroutine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

func TestRunner_WaitDrainsTasks(t *testing.T) {
	r := NewRunner(logger.NewNopLogger())
	var done atomic.Int32

	for i := 0; i < 5; i++ {
		r.Go("task", func() {
			time.Sleep(5 * time.Millisecond)
			done.Add(1)
		})
	}

	require.NoError(t, r.Wait(context.Background()))
	assert.Equal(t, int32(5), done.Load())
}

func TestRunner_RecoversPanic(t *testing.T) {
	r := NewRunner(logger.NewNopLogger())

	r.Go("boom", func() { panic("boom") })

	assert.NoError(t, r.Wait(context.Background()))
}

func TestRunner_WaitHonoursContext(t *testing.T) {
	r := NewRunner(logger.NewNopLogger())
	release := make(chan struct{})
	r.Go("blocked", func() { <-release })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)

	close(release)
	assert.NoError(t, r.Wait(context.Background()))
}
