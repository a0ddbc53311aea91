// Package history implements the designer's undo/redo engine: a bounded
// stack of full-state snapshots with a current index. Keystroke-level churn
// is coalesced through a cancel-and-restart debounce timer, so one undo step
// corresponds to one pause in typing. Pushing while not at the top discards
// all forward entries (standard linear undo/redo).
package history

import (
	"sync"
	"time"

	"github.com/goliatone/go-invoicegen/pkg/model"
)

// Snapshot is a full value-copy of the editable state at one point in time.
type Snapshot struct {
	HeaderMarkup string
	FooterMarkup string
	TableMarkup  string
	Styles       model.StyleTokens
}

// SnapshotOf captures the editable fields of a template.
func SnapshotOf(tpl model.Template) Snapshot {
	return Snapshot{
		HeaderMarkup: tpl.HeaderMarkup,
		FooterMarkup: tpl.FooterMarkup,
		TableMarkup:  tpl.TableMarkup,
		Styles:       tpl.Styles,
	}
}

// Apply writes the snapshot back onto a template. Restores are wholesale
// overwrites: no diffing against whatever the live surface holds, so a
// structurally diverged surface can never make a restore fail.
func (s Snapshot) Apply(tpl *model.Template) {
	tpl.HeaderMarkup = s.HeaderMarkup
	tpl.FooterMarkup = s.FooterMarkup
	tpl.TableMarkup = s.TableMarkup
	tpl.Styles = s.Styles
}

const (
	// DefaultCapacity bounds the stack; oldest entries are evicted past it.
	DefaultCapacity = 50
	// DefaultDebounce is the pause that settles a burst of edits into one
	// history entry.
	DefaultDebounce = time.Second
)

// Option customises a Log.
type Option func(*Log)

// WithCapacity overrides the maximum stack depth.
func WithCapacity(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// WithDebounce overrides the debounce delay. Zero disables debouncing so
// every Record commits immediately; tests use this.
func WithDebounce(d time.Duration) Option {
	return func(l *Log) {
		l.debounce = d
	}
}

// Log is the snapshot stack. Safe for use from the event goroutine plus the
// internal debounce timer.
type Log struct {
	mu       sync.Mutex
	entries  []Snapshot
	index    int
	capacity int
	debounce time.Duration
	pending  *time.Timer
	latest   Snapshot
	dirty    bool
	closed   bool
}

// New seeds the log with the initial state as its first entry.
func New(initial Snapshot, options ...Option) *Log {
	l := &Log{
		entries:  []Snapshot{initial},
		index:    0,
		capacity: DefaultCapacity,
		debounce: DefaultDebounce,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Record notes a content mutation and (re)arms the debounce timer. The
// snapshot only becomes an undo step once the timer fires and the state still
// differs from the entry at the current index; a restore immediately followed
// by no further edits therefore never re-pushes itself. At most one flush is
// pending at any time.
func (l *Log) Record(s Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.latest = s
	l.dirty = true

	if l.debounce <= 0 {
		l.flushLocked()
		return
	}
	if l.pending != nil {
		l.pending.Stop()
	}
	l.pending = time.AfterFunc(l.debounce, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed {
			return
		}
		l.flushLocked()
	})
}

// Flush commits any pending snapshot immediately, cancelling the timer.
func (l *Log) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.stopTimerLocked()
	l.flushLocked()
}

// Undo steps back one entry. The second return is false when already at the
// oldest entry. A pending debounced edit is committed first so the step lands
// on what the user last saw.
func (l *Log) Undo() (Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopTimerLocked()
	l.flushLocked()
	if l.index <= 0 {
		return Snapshot{}, false
	}
	l.index--
	l.dirty = false
	l.latest = l.entries[l.index]
	return l.entries[l.index], true
}

// Redo steps forward one entry; false when already at the top. A pending
// debounced edit is committed first; since the commit truncates the forward
// branch, a dirty pause is never silently stepped over.
func (l *Log) Redo() (Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopTimerLocked()
	l.flushLocked()
	if l.index >= len(l.entries)-1 {
		return Snapshot{}, false
	}
	l.index++
	l.dirty = false
	l.latest = l.entries[l.index]
	return l.entries[l.index], true
}

// Current returns the snapshot at the current index.
func (l *Log) Current() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries[l.index]
}

// Depth reports the number of committed entries.
func (l *Log) Depth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// CanUndo reports whether an Undo would step back.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index > 0 || (l.dirty && l.latest != l.entries[l.index])
}

// CanRedo reports whether forward entries remain.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index < len(l.entries)-1
}

// Close drops any pending debounced snapshot: the last committed entry wins
// when the editor goes away mid-pause.
func (l *Log) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopTimerLocked()
	l.closed = true
	l.dirty = false
}

func (l *Log) stopTimerLocked() {
	if l.pending != nil {
		l.pending.Stop()
		l.pending = nil
	}
}

// flushLocked pushes the latest recorded snapshot if it differs from the
// current entry, truncating any redo branch and evicting the oldest entry
// past capacity.
func (l *Log) flushLocked() {
	if !l.dirty {
		return
	}
	l.dirty = false
	if l.latest == l.entries[l.index] {
		return
	}
	l.entries = append(l.entries[:l.index+1], l.latest)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
	l.index = len(l.entries) - 1
}
