package config

import "github.com/spf13/viper"

// Default values applied before the config file is read.
const (
	DefaultTheme          = "system"
	DefaultAccentColor    = "#4a90d9"
	DefaultZoom           = 1.0
	DefaultSearchTemplate = "https://duckduckgo.com/?q=%s"
	DefaultHomepage       = "about:blank"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("appearance.theme", DefaultTheme)
	v.SetDefault("appearance.accent_color", DefaultAccentColor)
	v.SetDefault("appearance.default_zoom", DefaultZoom)

	v.SetDefault("blocking.trackers", true)
	v.SetDefault("blocking.ads", true)

	v.SetDefault("search.template", DefaultSearchTemplate)
	v.SetDefault("search.homepage", DefaultHomepage)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
