package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amonks/todoapp/internal/config"
	"github.com/amonks/todoapp/internal/kv"
	"github.com/amonks/todoapp/internal/logging"
	"github.com/amonks/todoapp/internal/paths"
	"github.com/amonks/todoapp/internal/todoenv"
	"github.com/amonks/todoapp/store"
	"github.com/amonks/todoapp/task"
	"github.com/charmbracelet/log"
)

// sqliteFileName is the database file used when no sqlite path is configured.
const sqliteFileName = "todoapp.db"

// app bundles what a command needs: configuration, the logger and the
// opened store.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	backend kv.Backend
	store   *store.Store
}

var current *app

// openApp loads configuration and opens the store. The result is cached so
// nested helpers share one store per process.
func openApp() (*app, error) {
	if current != nil {
		return current, nil
	}

	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	applyRootOverrides(cfg)

	opts := logging.DefaultOptions()
	opts.Level = logging.ParseLevel(cfg.Log.Level)
	opts.Formatter = logging.ParseFormatter(cfg.Log.Format)
	logger := logging.New(os.Stderr, opts)

	today, err := todoenv.TodayFunc()
	if err != nil {
		return nil, err
	}

	kind, err := kv.ParseKind(cfg.Storage.Backend)
	if err != nil {
		return nil, err
	}
	path, err := storagePath(kind, cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	backend, err := kv.Open(kind, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened storage", "backend", string(kind), "path", path)

	current = &app{
		cfg:     cfg,
		logger:  logger,
		backend: backend,
		store: store.Open(backend, store.Options{
			Key:    cfg.Storage.Key,
			Logger: logger,
			Today:  today,
		}),
	}
	return current, nil
}

// closeApp releases the storage backend, if one was opened.
func closeApp() error {
	if current == nil {
		return nil
	}
	err := current.backend.Close()
	current = nil
	return err
}

func applyRootOverrides(cfg *config.Config) {
	if rootBackend != "" {
		cfg.Storage.Backend = rootBackend
	}
	if rootDataPath != "" {
		cfg.Storage.Path = rootDataPath
	}
	if rootLogLevel != "" {
		cfg.Log.Level = rootLogLevel
	}
}

func storagePath(kind kv.Kind, configured string) (string, error) {
	if kind == kv.KindMemory {
		return "", nil
	}
	defaultPath := paths.DefaultDataDir
	if kind == kv.KindSQLite {
		defaultPath = func() (string, error) {
			dir, err := paths.DefaultDataDir()
			if err != nil {
				return "", err
			}
			return filepath.Join(dir, sqliteFileName), nil
		}
	}
	path, err := paths.ResolveWithDefault(configured, defaultPath)
	if err != nil {
		return "", err
	}
	return paths.ExpandHome(path)
}

// snapshot returns the current data.
func (a *app) snapshot() task.AppData {
	return a.store.Snapshot()
}

// today returns the store's calendar date.
func (a *app) today() task.Date {
	return a.store.Today()
}

// update applies fn through the store and reports a failed write as an
// error, since a CLI process exits right after.
func (a *app) update(fn func(task.AppData) (task.AppData, error)) (task.AppData, error) {
	data, err := a.store.Update(fn)
	if err != nil {
		return data, err
	}
	if err := a.store.SaveErr(); err != nil {
		return data, fmt.Errorf("changes not saved: %w", err)
	}
	return data, nil
}

// cascadeMode returns the configured deletion cascade, upgraded to a full
// subtree when subtree is set.
func (a *app) cascadeMode(subtree bool) (task.CascadeMode, error) {
	if subtree {
		return task.CascadeSubtree, nil
	}
	return task.ParseCascadeMode(a.cfg.Tasks.Cascade)
}

// now returns the wall-clock time used for creation timestamps.
func now() time.Time {
	return time.Now()
}
