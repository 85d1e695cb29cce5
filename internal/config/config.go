package config

import (
	"fmt"
	"strconv"

	"github.com/bnema/skiff/internal/domain/entity"
)

// Config is the full on-disk configuration.
type Config struct {
	Appearance AppearanceConfig `mapstructure:"appearance" json:"appearance"`
	Blocking   BlockingConfig   `mapstructure:"blocking" json:"blocking"`
	Search     SearchConfig     `mapstructure:"search" json:"search"`
	Database   DatabaseConfig   `mapstructure:"database" json:"database"`
	Logging    LoggingConfig    `mapstructure:"logging" json:"logging"`
}

// AppearanceConfig controls theme and accent color.
type AppearanceConfig struct {
	Theme       string  `mapstructure:"theme" json:"theme" jsonschema:"enum=light,enum=dark,enum=system"`
	AccentColor string  `mapstructure:"accent_color" json:"accent_color"`
	DefaultZoom float64 `mapstructure:"default_zoom" json:"default_zoom" jsonschema:"minimum=0.25,maximum=5"`
}

// BlockingConfig controls tracker and ad blocking flags.
type BlockingConfig struct {
	Trackers bool `mapstructure:"trackers" json:"trackers"`
	Ads      bool `mapstructure:"ads" json:"ads"`
}

// SearchConfig controls omnibox search resolution.
type SearchConfig struct {
	// Template is the fallback search engine URL with a %s query placeholder.
	Template string `mapstructure:"template" json:"template"`
	Homepage string `mapstructure:"homepage" json:"homepage"`
}

// DatabaseConfig controls host-side storage.
type DatabaseConfig struct {
	Path string `mapstructure:"path" json:"path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" json:"format" jsonschema:"enum=console,enum=json"`
}

// Settings converts the config to the bridge settings snapshot.
func (c *Config) Settings() entity.Settings {
	return entity.Settings{
		Theme:          c.Appearance.Theme,
		AccentColor:    c.Appearance.AccentColor,
		DefaultZoom:    c.Appearance.DefaultZoom,
		BlockTrackers:  c.Blocking.Trackers,
		BlockAds:       c.Blocking.Ads,
		SearchTemplate: c.Search.Template,
		Homepage:       c.Search.Homepage,
	}
}

// ApplySetting updates a single option by bridge setting key.
// The value arrives as a string over the wire and is coerced per key.
// The change is staged on a copy and committed only after validation, so a
// rejected write leaves the config untouched.
func (c *Config) ApplySetting(key, value string) error {
	updated := *c

	switch key {
	case entity.SettingTheme:
		updated.Appearance.Theme = value
	case entity.SettingAccentColor:
		updated.Appearance.AccentColor = value
	case entity.SettingBlockTrackers:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q", key, value)
		}
		updated.Blocking.Trackers = b
	case entity.SettingBlockAds:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q", key, value)
		}
		updated.Blocking.Ads = b
	case entity.SettingSearchTemplate:
		updated.Search.Template = value
	case entity.SettingHomepage:
		updated.Search.Homepage = value
	case entity.SettingDefaultZoom:
		z, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid zoom for %s: %q", key, value)
		}
		updated.Appearance.DefaultZoom = z
	default:
		return fmt.Errorf("unknown setting key: %s", key)
	}

	if err := validate(&updated); err != nil {
		return err
	}
	*c = updated
	return nil
}

// viperKeyForSetting maps a bridge setting key to its viper config path.
func viperKeyForSetting(key string) (string, bool) {
	switch key {
	case entity.SettingTheme:
		return "appearance.theme", true
	case entity.SettingAccentColor:
		return "appearance.accent_color", true
	case entity.SettingDefaultZoom:
		return "appearance.default_zoom", true
	case entity.SettingBlockTrackers:
		return "blocking.trackers", true
	case entity.SettingBlockAds:
		return "blocking.ads", true
	case entity.SettingSearchTemplate:
		return "search.template", true
	case entity.SettingHomepage:
		return "search.homepage", true
	}
	return "", false
}
