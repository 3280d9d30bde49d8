// Package config handles loading todoapp.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/todoapp/internal/paths"
)

// ProjectFileName is the per-directory config file.
const ProjectFileName = "todoapp.toml"

// Config represents a todoapp.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
	Tasks   Tasks   `toml:"tasks"`
}

// Storage selects where the snapshot is persisted.
type Storage struct {
	// Backend is one of "file", "sqlite" or "memory".
	Backend string `toml:"backend"`

	// Path is the data directory for the file backend or the database file
	// for the sqlite backend. A leading "~/" expands to the home directory.
	Path string `toml:"path"`

	// Key is the key the snapshot is stored under.
	Key string `toml:"key"`
}

// Log configures diagnostic output on stderr.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Tasks holds task behavior settings.
type Tasks struct {
	// Cascade is "direct" or "subtree"; see task.CascadeMode.
	Cascade string `toml:"cascade"`
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Storage: Storage{Backend: "file", Key: "todo-app-data"},
		Log:     Log{Level: "warn", Format: "text"},
		Tasks:   Tasks{Cascade: "direct"},
	}
}

// Load loads configuration from the global config file and from
// todoapp.toml in dir, with dir's values taking precedence. Unset values
// keep their defaults.
func Load(dir string) (*Config, error) {
	globalPath, err := GlobalPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFileName))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(Default(), globalCfg, projectCfg, globalMeta, projectMeta)
	if merged.Storage.Path, err = paths.ExpandHome(merged.Storage.Path); err != nil {
		return nil, err
	}
	return merged, nil
}

// GlobalPath returns the path of the global config file.
func GlobalPath() (string, error) {
	dir, err := paths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, toml.MetaData{}, fmt.Errorf("config file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	return &cfg, meta, nil
}

func mergeConfigs(defaults, globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	merged := *defaults
	layers := []struct {
		cfg  *Config
		meta toml.MetaData
	}{
		{globalCfg, globalMeta},
		{projectCfg, projectMeta},
	}
	for _, layer := range layers {
		if layer.cfg == nil {
			continue
		}
		merged.Storage.Backend = mergeString(layer.meta.IsDefined("storage", "backend"), layer.cfg.Storage.Backend, merged.Storage.Backend)
		merged.Storage.Path = mergeString(layer.meta.IsDefined("storage", "path"), layer.cfg.Storage.Path, merged.Storage.Path)
		merged.Storage.Key = mergeString(layer.meta.IsDefined("storage", "key"), layer.cfg.Storage.Key, merged.Storage.Key)
		merged.Log.Level = mergeString(layer.meta.IsDefined("log", "level"), layer.cfg.Log.Level, merged.Log.Level)
		merged.Log.Format = mergeString(layer.meta.IsDefined("log", "format"), layer.cfg.Log.Format, merged.Log.Format)
		merged.Tasks.Cascade = mergeString(layer.meta.IsDefined("tasks", "cascade"), layer.cfg.Tasks.Cascade, merged.Tasks.Cascade)
	}
	return &merged
}

func mergeString(defined bool, value, fallback string) string {
	if defined {
		return strings.TrimSpace(value)
	}
	return fallback
}
