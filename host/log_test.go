package host

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/gogpu/shaderview"
)

// recordLog keeps every record logged through shaderview.
type recordLog struct {
	mu      sync.Mutex
	records []slog.Record
}

func (l *recordLog) Enabled(context.Context, slog.Level) bool { return true }

func (l *recordLog) Handle(_ context.Context, r slog.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r.Clone())
	return nil
}

func (l *recordLog) WithAttrs([]slog.Attr) slog.Handler { return l }
func (l *recordLog) WithGroup(string) slog.Handler      { return l }

func (l *recordLog) find(msg string) (slog.Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if r.Message == msg {
			return r, true
		}
	}
	return slog.Record{}, false
}

func captureLogs(t *testing.T) *recordLog {
	t.Helper()
	l := &recordLog{}
	prev := shaderview.Logger()
	shaderview.SetLogger(slog.New(l))
	t.Cleanup(func() { shaderview.SetLogger(prev) })
	return l
}

func attr(r slog.Record, key string) string {
	var v string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			v = a.Value.String()
			return false
		}
		return true
	})
	return v
}
