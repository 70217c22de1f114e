/*
Package visitor records page visits into a bounded log for the CMS dashboard.

The log is a ring buffer of the 50 most recent visits, stored as a JSON array
under a single key in the key-value store, newest first.
*/
package visitor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"bushnoor/internal/app/kvstore"
	"bushnoor/internal/pkg/logx"
)

// MaxEntries bounds the visitor log.
const MaxEntries = 50

// Entry is one recorded visit.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Page      string    `json:"page"`
}

// Log appends and reads the bounded visit history.
type Log struct {
	kv  kvstore.Store
	now func() time.Time
	mu  sync.Mutex
}

// NewLog creates a visit log on top of the given persistence adapter.
func NewLog(kv kvstore.Store) *Log {
	return &Log{kv: kv, now: time.Now}
}

// Record prepends a visit for the given page, truncating to MaxEntries.
// A malformed stored log is discarded and the history starts fresh.
func (l *Log) Record(ctx context.Context, page string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.read(ctx)
	entries = append([]Entry{{Timestamp: l.now(), Page: page}}, entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode visitor log: %w", err)
	}
	if err := l.kv.Set(ctx, kvstore.VisitorLogsKey, string(payload)); err != nil {
		return fmt.Errorf("save visitor log: %w", err)
	}
	return nil
}

// Recent returns the stored visits, newest first.
func (l *Log) Recent(ctx context.Context) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.read(ctx)
}

func (l *Log) read(ctx context.Context) []Entry {
	raw, ok, err := l.kv.Get(ctx, kvstore.VisitorLogsKey)
	if err != nil {
		logx.Error(err, "Failed to read visitor log")
		return nil
	}
	if !ok {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logx.Warn("Discarding malformed visitor log", "error", err.Error())
		return nil
	}
	return entries
}
