package semaphore

import (
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-kit/kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/psem/logging"
)

func ExampleSemaphore() {
	s, err := New()
	if err != nil {
		panic(err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Wait()
		fmt.Println("permit consumed")
	}()

	fmt.Println("signaling")
	s.Signal()
	<-done
	Destroy(&s)

	// Output:
	// signaling
	// permit consumed
}

func TestNew(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	s, err := New()
	require.NoError(err)
	require.NotNil(s)
	assert.NotNil(s.p)
	assert.NoError(s.Close())
}

// testWaitBlocksUntilSignal spawns a waiter and verifies it unblocks only
// after a signal from another goroutine.
func testWaitBlocksUntilSignal(t *testing.T) {
	var (
		require = require.New(t)

		ready     = make(chan struct{})
		unblocked = make(chan error)
	)

	s, err := New()
	require.NoError(err)
	defer Destroy(&s)

	go func() {
		close(ready)
		unblocked <- s.Wait()
	}()

	<-ready
	select {
	case err := <-unblocked:
		require.FailNow("Wait returned without a signal", "err: %v", err)
	case <-time.After(100 * time.Millisecond):
		// still blocked, as expected
	}

	require.NoError(s.Signal())

	select {
	case err := <-unblocked:
		require.NoError(err)
	case <-time.After(time.Second):
		require.FailNow("Wait did not unblock after a signal")
	}
}

// testPermitsAreCounted issues n signals followed by n waits, then verifies
// that one more wait blocks.
func testPermitsAreCounted(t *testing.T, n int) {
	require := require.New(t)

	s, err := New()
	require.NoError(err)
	defer Destroy(&s)

	for i := 0; i < n; i++ {
		require.NoError(s.Signal())
	}

	for i := 0; i < n; i++ {
		done := make(chan error)
		go func() {
			done <- s.Wait()
		}()

		select {
		case err := <-done:
			require.NoError(err)
		case <-time.After(time.Second):
			require.FailNow("Wait blocked with permits available")
		}
	}

	var (
		ready   = make(chan struct{})
		blocked = make(chan error)
	)

	go func() {
		close(ready)
		blocked <- s.Wait()
	}()

	<-ready
	select {
	case err := <-blocked:
		require.FailNow("Wait consumed a permit that was never signaled", "err: %v", err)
	case <-time.After(100 * time.Millisecond):
		// the counter is exhausted
	}

	// release the blocked waiter so the semaphore can be destroyed safely
	require.NoError(s.Signal())
	select {
	case err := <-blocked:
		require.NoError(err)
	case <-time.After(time.Second):
		require.FailNow("Wait did not unblock after a signal")
	}
}

// testConcurrentSignalWait runs equal pools of signalers and waiters and
// verifies every wait completes exactly once per signal.
func testConcurrentSignalWait(t *testing.T, count int) {
	require := require.New(t)

	s, err := New()
	require.NoError(err)
	defer Destroy(&s)

	var (
		waitersDone   = new(sync.WaitGroup)
		results       = make(chan error, count)
		signalResults = make(chan error, count)
	)

	waitersDone.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer waitersDone.Done()
			results <- s.Wait()
		}()
	}

	for i := 0; i < count; i++ {
		go func() {
			signalResults <- s.Signal()
		}()
	}

	for i := 0; i < count; i++ {
		require.NoError(<-signalResults)
	}

	complete := make(chan struct{})
	go func() {
		defer close(complete)
		waitersDone.Wait()
	}()

	select {
	case <-complete:
		// every waiter matched a signal
	case <-time.After(5 * time.Second):
		require.FailNow("Not all waiters completed")
	}

	close(results)
	for err := range results {
		require.NoError(err)
	}

	// no spurious permits remain
	var (
		ready   = make(chan struct{})
		blocked = make(chan error)
	)

	go func() {
		close(ready)
		blocked <- s.Wait()
	}()

	<-ready
	select {
	case err := <-blocked:
		require.FailNow("Wait consumed a permit that was never signaled", "err: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(s.Signal())
	select {
	case err := <-blocked:
		require.NoError(err)
	case <-time.After(time.Second):
		require.FailNow("Wait did not unblock after a signal")
	}
}

func TestSemaphore(t *testing.T) {
	t.Run("WaitBlocksUntilSignal", testWaitBlocksUntilSignal)

	t.Run("PermitsAreCounted", func(t *testing.T) {
		for _, n := range []int{1, 2, 5} {
			t.Run(strconv.Itoa(n), func(t *testing.T) {
				testPermitsAreCounted(t, n)
			})
		}
	})

	t.Run("ConcurrentSignalWait", func(t *testing.T) {
		for _, count := range []int{1, 10, 100} {
			t.Run(strconv.Itoa(count), func(t *testing.T) {
				testConcurrentSignalWait(t, count)
			})
		}
	})
}

func testNilHandleSignal(t *testing.T) {
	var (
		assert = assert.New(t)
		s      *Semaphore
	)

	assert.NotPanics(func() {
		assert.Equal(ErrNilHandle, s.Signal())
	})
}

func testNilHandleWait(t *testing.T) {
	var (
		assert = assert.New(t)
		s      *Semaphore
	)

	assert.NotPanics(func() {
		assert.Equal(ErrNilHandle, s.Wait())
	})
}

func testNilHandleAfterClose(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	s, err := New()
	require.NoError(err)
	require.NoError(s.Close())

	assert.Equal(ErrNilHandle, s.Signal())
	assert.Equal(ErrNilHandle, s.Wait())
}

func TestNilHandle(t *testing.T) {
	t.Run("Signal", testNilHandleSignal)
	t.Run("Wait", testNilHandleWait)
	t.Run("AfterClose", testNilHandleAfterClose)
}

func testDestroyClearsSlot(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	s, err := New()
	require.NoError(err)
	require.NotNil(s)

	Destroy(&s)
	assert.Nil(s)
}

func testDestroyNilSlot(t *testing.T) {
	assert.NotPanics(t, func() {
		Destroy(nil)
	})
}

func testDestroyEmptySlot(t *testing.T) {
	assert.NotPanics(t, func() {
		var s *Semaphore
		Destroy(&s)
	})
}

func testDestroyTwice(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		capture = logging.NewCaptureLogger()
	)

	s, err := New(WithLogger(capture))
	require.NoError(err)

	require.NoError(s.Close())
	select {
	case m := <-capture.Output():
		require.FailNow("The first destroy should not produce a diagnostic", "event: %v", m)
	default:
	}

	// the second destroy is a no-op, diagnosed but not fatal
	assert.NotPanics(func() {
		assert.NoError(s.Close())
	})

	select {
	case m := <-capture.Output():
		assert.Equal(level.WarnValue(), m[level.Key()])
	default:
		assert.Fail("The second destroy should produce a diagnostic")
	}
}

func TestDestroy(t *testing.T) {
	t.Run("ClearsSlot", testDestroyClearsSlot)
	t.Run("NilSlot", testDestroyNilSlot)
	t.Run("EmptySlot", testDestroyEmptySlot)
	t.Run("Twice", testDestroyTwice)
}

func TestWithLogger(t *testing.T) {
	var (
		assert  = assert.New(t)
		capture = logging.NewCaptureLogger()

		s = new(Semaphore)
	)

	WithLogger(capture)(s)
	assert.Equal(capture, s.logger)

	WithLogger(nil)(s)
	assert.Equal(logging.DefaultLogger(), s.logger)
}
