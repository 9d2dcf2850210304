package pool

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolDrainsAllJobs(t *testing.T) {
	p, err := New(4)
	require.NoError(t, err)

	var counter int64
	for i := 0; i < 100; i++ {
		err := p.Add(func(arg any) int {
			atomic.AddInt64(&counter, 1)
			return 0
		}, nil)
		require.NoError(t, err)
	}

	require.NoError(t, p.Wait())
	assert.EqualValues(t, 100, atomic.LoadInt64(&counter))
	assert.Equal(t, 0, p.QueueSize())

	p.StopAndFree()
}

func TestPoolSizeNeverChanges(t *testing.T) {
	p, err := New(6)
	require.NoError(t, err)
	defer p.StopAndFree()

	assert.Equal(t, 6, p.Size())
	require.NoError(t, p.Add(func(any) int { return 0 }, nil))
	require.NoError(t, p.Wait())
	assert.Equal(t, 6, p.Size())
}

func TestNewClampsToOneWorker(t *testing.T) {
	p, err := New(0)
	require.NoError(t, err)
	defer p.StopAndFree()
	assert.Equal(t, 1, p.Size())
}

func TestAddAfterStopReturnsErrStopped(t *testing.T) {
	p, err := New(2)
	require.NoError(t, err)

	p.StopAndFree()

	err = p.Add(func(any) int { return 0 }, nil)
	assert.ErrorIs(t, err, ErrStopped)
}

func TestStopAndFreeDiscardsQueuedJobsButFinishesRunning(t *testing.T) {
	p, err := New(1)
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	var ran int64

	require.NoError(t, p.Add(func(any) int {
		close(started)
		<-release
		atomic.AddInt64(&ran, 1)
		return 0
	}, nil))

	<-started
	for i := 0; i < 10; i++ {
		_ = p.Add(func(any) int {
			atomic.AddInt64(&ran, 1)
			return 0
		}, nil)
	}

	stopped := make(chan struct{})
	go func() {
		p.StopAndFree()
		close(stopped)
	}()
	// Release the running job only after StopAndFree has marked the pool
	// stopped and discarded the queue, so the worker cannot pick up a
	// queued job in between.
	for p.Add(func(any) int { return 0 }, nil) != ErrStopped {
		runtime.Gosched()
	}
	close(release)
	<-stopped

	assert.EqualValues(t, 1, atomic.LoadInt64(&ran))
}

func TestWaitUsesWorkDoneNotBusyLoop(t *testing.T) {
	p, err := New(2)
	require.NoError(t, err)
	defer p.StopAndFree()

	require.NoError(t, p.Add(func(any) int {
		time.Sleep(20 * time.Millisecond)
		return 0
	}, nil))

	done := make(chan struct{})
	go func() {
		_ = p.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after job completed")
	}
}
