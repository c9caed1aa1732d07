package renderloop

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// Ordering Tests
// =============================================================================

func TestLoop_PostOrder(t *testing.T) {
	l := New(Config{})
	defer l.Close()

	var mu sync.Mutex
	var got []int
	for i := range 100 {
		if err := l.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}); err != nil {
			t.Fatalf("Post: %v", err)
		}
	}

	if err := l.Invoke(func() {}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 100 {
		t.Fatalf("ran %d tasks, want 100", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task %d ran at position %d", v, i)
		}
	}
}

func TestLoop_SingleGoroutine(t *testing.T) {
	l := New(Config{QueueSize: 4})
	defer l.Close()

	var active, maxActive atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				_ = l.Invoke(func() {
					n := active.Add(1)
					if n > maxActive.Load() {
						maxActive.Store(n)
					}
					time.Sleep(10 * time.Microsecond)
					active.Add(-1)
				})
			}
		}()
	}
	wg.Wait()

	if maxActive.Load() != 1 {
		t.Errorf("max concurrent tasks = %d, want 1", maxActive.Load())
	}
	if l.Executed() != 160 {
		t.Errorf("Executed() = %d, want 160", l.Executed())
	}
}

// =============================================================================
// Invoke Tests
// =============================================================================

func TestLoop_InvokeWaits(t *testing.T) {
	l := New(Config{})
	defer l.Close()

	var done atomic.Bool
	if err := l.Invoke(func() {
		time.Sleep(5 * time.Millisecond)
		done.Store(true)
	}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !done.Load() {
		t.Error("Invoke returned before the task finished")
	}
}

func TestLoop_NilTask(t *testing.T) {
	l := New(Config{})
	defer l.Close()

	if err := l.Post(nil); err != nil {
		t.Errorf("Post(nil) = %v", err)
	}
	if err := l.Invoke(nil); err != nil {
		t.Errorf("Invoke(nil) = %v", err)
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestLoop_CloseDrains(t *testing.T) {
	l := New(Config{QueueSize: 16})

	var count atomic.Int32
	block := make(chan struct{})
	_ = l.Post(func() { <-block })
	for range 10 {
		_ = l.Post(func() { count.Add(1) })
	}

	go func() {
		time.Sleep(5 * time.Millisecond)
		close(block)
	}()
	l.Close()

	if count.Load() != 10 {
		t.Errorf("drained %d tasks, want 10", count.Load())
	}
	if l.IsRunning() {
		t.Error("loop should not be running after Close")
	}
}

func TestLoop_AfterClose(t *testing.T) {
	l := New(Config{})
	l.Close()
	l.Close() // idempotent

	if err := l.Post(func() {}); !errors.Is(err, ErrClosed) {
		t.Errorf("Post after Close = %v, want ErrClosed", err)
	}
	ran := false
	if err := l.Invoke(func() { ran = true }); !errors.Is(err, ErrClosed) {
		t.Errorf("Invoke after Close = %v, want ErrClosed", err)
	}
	if ran {
		t.Error("task ran after Close")
	}
}

// =============================================================================
// Tick Tests
// =============================================================================

func TestLoop_Ticks(t *testing.T) {
	var ticks atomic.Int32
	l := New(Config{
		Interval: time.Millisecond,
		OnTick:   func() { ticks.Add(1) },
	})

	deadline := time.Now().Add(2 * time.Second)
	for ticks.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	l.Close()

	if ticks.Load() < 3 {
		t.Errorf("ticks = %d, want >= 3", ticks.Load())
	}
	if l.Ticks() != uint64(ticks.Load()) {
		t.Errorf("Ticks() = %d, counted %d", l.Ticks(), ticks.Load())
	}
}

func TestLoop_NoTickWithoutInterval(t *testing.T) {
	var ticks atomic.Int32
	l := New(Config{OnTick: func() { ticks.Add(1) }})
	time.Sleep(5 * time.Millisecond)
	l.Close()

	if ticks.Load() != 0 {
		t.Errorf("ticks = %d, want 0", ticks.Load())
	}
}
