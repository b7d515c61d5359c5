// Package config provides configuration types and defaults for comspect.
package config

import (
	"fmt"
	"time"

	"comspect/internal/comscan"
	"comspect/internal/tracing"
)

// Config holds all configuration options for comspect.
type Config struct {
	// Views lists the registry views to scan by default: "32", "64".
	// Empty means both.
	Views []string `mapstructure:"views"`

	// CacheTTLSeconds controls how long interactive mode reuses a
	// completed view scan before rescanning.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`

	UI      UIConfig       `mapstructure:"ui"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// UIConfig holds report rendering options.
type UIConfig struct {
	// Banner controls the startup header art.
	Banner bool `mapstructure:"banner"`
	// Plain disables colors and glyphs.
	Plain bool `mapstructure:"plain"`
	Theme ThemeConfig `mapstructure:"theme"`
}

// ThemeConfig holds the report's color tokens as hex strings.
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight"`
	Subtle    string `mapstructure:"subtle"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
	Warning   string `mapstructure:"warning"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Views:           nil,
		CacheTTLSeconds: 120,
		UI: UIConfig{
			Banner: true,
			Plain:  false,
			Theme: ThemeConfig{
				Highlight: "#7D56F4",
				Subtle:    "#6B7280",
				Error:     "#EF4444",
				Success:   "#10B981",
				Warning:   "#F59E0B",
			},
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// CacheTTL returns the scan cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// ParseViews validates and converts the configured view names. An empty
// list means both views, 32-bit first.
func (c Config) ParseViews() ([]comscan.View, error) {
	if len(c.Views) == 0 {
		return []comscan.View{comscan.View32, comscan.View64}, nil
	}
	seen := make(map[comscan.View]bool)
	var views []comscan.View
	for i, s := range c.Views {
		v, err := comscan.ParseView(s)
		if err != nil {
			return nil, fmt.Errorf("views[%d]: %w", i, err)
		}
		if seen[v] {
			return nil, fmt.Errorf("views[%d]: %s listed twice", i, v)
		}
		seen[v] = true
		views = append(views, v)
	}
	return views, nil
}
