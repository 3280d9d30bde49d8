// Package store holds the canonical snapshot for a session and persists every
// change through a key/value backend.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/amonks/todoapp/internal/logging"
	"github.com/amonks/todoapp/task"
	"github.com/charmbracelet/log"
)

// DefaultKey is the key the snapshot is stored under.
const DefaultKey = "todo-app-data"

// ErrUnchanged may be returned by an Update function to report that nothing
// changed. Update then skips the write and returns a nil error.
var ErrUnchanged = errors.New("unchanged")

// KV is the storage capability the store persists through.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Options configures a Store.
type Options struct {
	// Key defaults to DefaultKey.
	Key string

	// Logger defaults to a logger that discards output.
	Logger *log.Logger

	// Today returns the current calendar date. Defaults to the local date.
	Today func() task.Date
}

// Store is the single writer of a snapshot. Every mutation goes through
// Replace or Update, which apply recurrence resets and write the result
// through before returning.
//
// Snapshots handed out by the store share slices with its state; callers
// must treat them as read-only and derive changes with the task package.
type Store struct {
	mu      sync.Mutex
	kv      KV
	key     string
	logger  *log.Logger
	today   func() task.Date
	current task.AppData
	saveErr error
}

// New returns a store holding the empty snapshot. Call Load or use Open to
// read persisted state.
func New(kv KV, opts Options) *Store {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Today == nil {
		opts.Today = func() task.Date { return task.Today(time.Now()) }
	}
	return &Store{
		kv:      kv,
		key:     opts.Key,
		logger:  opts.Logger,
		today:   opts.Today,
		current: task.Empty(),
	}
}

// Open returns a store holding the persisted snapshot with recurrence resets
// for today applied.
func Open(kv KV, opts Options) *Store {
	s := New(kv, opts)
	s.mu.Lock()
	s.current = s.Load()
	s.mu.Unlock()
	s.Activate()
	return s
}

// Load reads the persisted snapshot. A missing, unreadable or malformed value
// yields the empty snapshot; the cause is logged, never returned.
func (s *Store) Load() task.AppData {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Warn("read failed, starting empty", "key", s.key, "err", err)
		return task.Empty()
	}
	if !ok {
		return task.Empty()
	}
	data, err := task.Unmarshal([]byte(raw))
	if err != nil {
		s.logger.Warn("stored data unreadable, starting empty", "key", s.key, "err", err)
		return task.Empty()
	}
	return data
}

// Save encodes data and writes it to the backend.
func (s *Store) Save(data task.AppData) error {
	encoded, err := task.Marshal(data)
	if err != nil {
		return err
	}
	if err := s.kv.Set(s.key, string(encoded)); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() task.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Today returns the date the store evaluates recurrence against.
func (s *Store) Today() task.Date {
	return s.today()
}

// SaveErr returns the error from the most recent write, or nil if it
// succeeded.
func (s *Store) SaveErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveErr
}

// Replace makes next the current snapshot and writes it through. Write
// failures are logged and kept for SaveErr; the in-memory snapshot stays
// authoritative.
func (s *Store) Replace(next task.AppData) task.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceLocked(next)
}

// Update applies fn to the current snapshot and replaces it with the result.
// If fn fails the snapshot is left untouched and the error is returned,
// except ErrUnchanged which skips the write and returns nil.
func (s *Store) Update(fn func(task.AppData) (task.AppData, error)) (task.AppData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.current)
	if errors.Is(err, ErrUnchanged) {
		return s.current, nil
	}
	if err != nil {
		return s.current, err
	}
	return s.replaceLocked(next), nil
}

// Activate applies recurrence resets for today to the current snapshot and
// persists the result if anything was reset. It returns the number of tasks
// reset.
func (s *Store) Activate() (task.AppData, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, reset := task.ApplyRecurrence(s.current, s.today())
	if reset == 0 {
		return s.current, 0
	}
	s.logger.Info("reset recurring tasks", "count", reset, "today", s.today().String())
	s.current = next
	s.persistLocked()
	return s.current, reset
}

// Reorder applies a drag result. Invalid requests leave the snapshot as is;
// the reason is logged at debug level.
func (s *Store) Reorder(req task.ReorderRequest) (task.AppData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := task.CheckReorder(s.current, req); err != nil {
		s.logger.Debug("reorder ignored", "kind", string(req.Kind), "id", req.MovedID, "reason", err)
		return s.current, false
	}
	next, changed := task.Reorder(s.current, req)
	if !changed {
		return s.current, false
	}
	return s.replaceLocked(next), true
}

func (s *Store) replaceLocked(next task.AppData) task.AppData {
	next, reset := task.ApplyRecurrence(task.Normalize(next), s.today())
	if reset > 0 {
		s.logger.Info("reset recurring tasks", "count", reset, "today", s.today().String())
	}
	s.current = next
	s.persistLocked()
	return s.current
}

func (s *Store) persistLocked() {
	s.saveErr = s.Save(s.current)
	if s.saveErr != nil {
		s.logger.Error("save failed, keeping in-memory state", "key", s.key, "err", s.saveErr)
	}
}
