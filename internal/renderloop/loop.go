// Package renderloop provides the dedicated render goroutine used by the
// drawing surface host.
//
// All work submitted to a Loop runs on one goroutine locked to its OS
// thread, in submission order. A Loop can optionally call a tick function
// at a fixed interval between tasks.
package renderloop

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// ErrClosed is returned when submitting work to a closed loop.
var ErrClosed = errors.New("renderloop: closed")

// DefaultQueueSize is the task buffer size used when Config.QueueSize is zero.
const DefaultQueueSize = 64

// Config configures a Loop.
type Config struct {
	// QueueSize is the task buffer size. Post blocks when the buffer is full.
	QueueSize int

	// Interval is the tick period. Zero disables ticking.
	Interval time.Duration

	// OnTick is called on the loop goroutine every Interval.
	OnTick func()
}

// Loop is a single-goroutine task executor.
//
// Thread safety: Loop is safe for concurrent use. Tasks themselves run
// sequentially and must not call Invoke on their own loop.
type Loop struct {
	tasks chan func()

	// done signals the loop goroutine to stop.
	done chan struct{}

	// stopped is closed after the loop goroutine has exited.
	stopped chan struct{}

	wg      sync.WaitGroup
	running atomic.Bool

	interval time.Duration
	onTick   func()

	executed atomic.Uint64
	ticks    atomic.Uint64
}

// New creates and starts a loop.
func New(cfg Config) *Loop {
	size := cfg.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}

	l := &Loop{
		tasks:    make(chan func(), size),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		interval: cfg.Interval,
		onTick:   cfg.OnTick,
	}
	l.running.Store(true)

	l.wg.Add(1)
	go l.run()

	return l
}

func (l *Loop) run() {
	defer close(l.stopped)
	defer l.wg.Done()

	// GPU contexts are bound to the thread that created them.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var tick <-chan time.Time
	if l.interval > 0 && l.onTick != nil {
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-l.done:
			l.drain()
			return

		case fn := <-l.tasks:
			l.exec(fn)

		case <-tick:
			l.ticks.Add(1)
			l.onTick()
		}
	}
}

func (l *Loop) exec(fn func()) {
	if fn == nil {
		return
	}
	fn()
	l.executed.Add(1)
}

// drain executes all remaining queued tasks.
func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.tasks:
			l.exec(fn)
		default:
			return
		}
	}
}

// Post queues fn without waiting for it to run.
func (l *Loop) Post(fn func()) error {
	if fn == nil {
		return nil
	}
	if !l.running.Load() {
		return ErrClosed
	}

	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrClosed
	}
}

// Invoke queues fn and blocks until it has run. If the loop shuts down
// before fn runs, Invoke returns ErrClosed and fn is never called.
//
// Invoke must not be called from the loop goroutine.
func (l *Loop) Invoke(fn func()) error {
	if fn == nil {
		return nil
	}

	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-l.stopped:
		// The task may have run during the final drain.
		select {
		case <-finished:
			return nil
		default:
			return ErrClosed
		}
	}
}

// Close stops accepting work, runs the tasks already queued and waits for
// the loop goroutine to exit. Close is safe to call multiple times.
func (l *Loop) Close() {
	if !l.running.CompareAndSwap(true, false) {
		<-l.stopped
		return
	}
	close(l.done)
	l.wg.Wait()
}

// IsRunning reports whether the loop is accepting work.
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

// Pending returns the number of queued tasks. The value is approximate.
func (l *Loop) Pending() int {
	return len(l.tasks)
}

// Executed returns the number of tasks run so far.
func (l *Loop) Executed() uint64 {
	return l.executed.Load()
}

// Ticks returns the number of tick callbacks made so far.
func (l *Loop) Ticks() uint64 {
	return l.ticks.Load()
}
