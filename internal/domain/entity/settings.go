package entity

// Settings is the snapshot of user-facing options exchanged over the bridge.
// It is fetched once at startup and written back field-by-field on change.
type Settings struct {
	Theme          string  `json:"theme" mapstructure:"theme"`
	AccentColor    string  `json:"accent_color" mapstructure:"accent_color"`
	BlockTrackers  bool    `json:"block_trackers" mapstructure:"block_trackers"`
	BlockAds       bool    `json:"block_ads" mapstructure:"block_ads"`
	SearchTemplate string  `json:"search_template" mapstructure:"search_template"`
	Homepage       string  `json:"homepage" mapstructure:"homepage"`
	DefaultZoom    float64 `json:"default_zoom" mapstructure:"default_zoom"`
}

// Setting keys accepted by the settings_set bridge operation.
const (
	SettingTheme          = "theme"
	SettingAccentColor    = "accent_color"
	SettingBlockTrackers  = "block_trackers"
	SettingBlockAds       = "block_ads"
	SettingSearchTemplate = "search_template"
	SettingHomepage       = "homepage"
	SettingDefaultZoom    = "default_zoom"
)
