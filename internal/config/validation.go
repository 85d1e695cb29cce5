package config

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validate(c *Config) error {
	switch c.Appearance.Theme {
	case "light", "dark", "system":
	default:
		return fmt.Errorf("appearance.theme must be light, dark or system, got %q", c.Appearance.Theme)
	}

	if c.Appearance.AccentColor != "" && !hexColorRe.MatchString(c.Appearance.AccentColor) {
		return fmt.Errorf("appearance.accent_color must be a #rrggbb color, got %q", c.Appearance.AccentColor)
	}

	if c.Appearance.DefaultZoom < 0.25 || c.Appearance.DefaultZoom > 5.0 {
		return fmt.Errorf("appearance.default_zoom must be between 0.25 and 5.0, got %v", c.Appearance.DefaultZoom)
	}

	if c.Search.Template != "" && !strings.Contains(c.Search.Template, "%s") {
		return fmt.Errorf("search.template must contain a %%s query placeholder")
	}

	return nil
}
