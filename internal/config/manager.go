package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/bnema/skiff/internal/logging"
)

// Manager handles configuration loading, watching and field-by-field writes.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("SKIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "SKIFF_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind SKIFF_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "SKIFF_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind SKIFF_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is not an error; defaults apply.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := logging.FromContext(ctx)

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	setDefaults(m.viper)

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		log.Debug().Msg("no config file found, using defaults")
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Database.Path == "" {
		dbPath, err := DefaultDatabasePath()
		if err != nil {
			return fmt.Errorf("failed to determine database path: %w", err)
		}
		config.Database.Path = dbPath
	}

	if err := validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	log.Debug().Str("file", m.viper.ConfigFileUsed()).Msg("configuration loaded")
	return nil
}

// Get returns the current configuration snapshot.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Set persists a single option identified by its bridge setting key.
// Validation runs before the in-memory config is committed, so a rejected
// value touches neither the snapshot nor the file.
func (m *Manager) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := logging.FromContext(ctx)

	if m.config == nil {
		return errors.New("configuration not loaded")
	}

	if err := m.config.ApplySetting(key, value); err != nil {
		return err
	}

	viperKey, ok := viperKeyForSetting(key)
	if !ok {
		return fmt.Errorf("unknown setting key: %s", key)
	}
	m.viper.Set(viperKey, value)

	if err := m.writeConfigFile(); err != nil {
		return fmt.Errorf("failed to persist setting %s: %w", key, err)
	}

	log.Info().Str("key", key).Msg("setting persisted")
	m.notifyLocked()
	return nil
}

// OnChange registers a callback invoked after any config change (file watch
// or Set). Callbacks run on the watcher goroutine.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// Watch starts watching the config file for external edits.
// Uses viper's fsnotify-backed watcher.
func (m *Manager) Watch(ctx context.Context) {
	m.mu.Lock()
	if m.watching {
		m.mu.Unlock()
		return
	}
	m.watching = true
	m.mu.Unlock()

	log := logging.FromContext(ctx)

	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log.Debug().Str("file", e.Name).Msg("config file changed")

		m.mu.Lock()
		config := &Config{}
		if err := m.viper.Unmarshal(config); err != nil {
			m.mu.Unlock()
			log.Warn().Err(err).Msg("failed to reload config after change")
			return
		}
		if err := validate(config); err != nil {
			m.mu.Unlock()
			log.Warn().Err(err).Msg("ignoring invalid config change")
			return
		}
		if config.Database.Path == "" {
			config.Database.Path = m.config.Database.Path
		}
		m.config = config
		m.notifyLocked()
		m.mu.Unlock()
	})
	m.viper.WatchConfig()
}

// notifyLocked invokes change callbacks. Caller holds m.mu.
func (m *Manager) notifyLocked() {
	for _, fn := range m.callbacks {
		fn(m.config)
	}
}

// writeConfigFile writes the current viper state to the config file,
// creating it on first write.
func (m *Manager) writeConfigFile() error {
	if m.viper.ConfigFileUsed() != "" {
		return m.viper.WriteConfig()
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, dirPerm); err != nil {
		return err
	}
	return m.viper.WriteConfigAs(filepath.Join(configDir, "config.toml"))
}
