package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with yaml tags for writing the default file.
type fileConfig struct {
	Views           []string `yaml:"views,omitempty"`
	CacheTTLSeconds int      `yaml:"cache_ttl_seconds"`
	UI              struct {
		Banner bool `yaml:"banner"`
		Plain  bool `yaml:"plain"`
		Theme  struct {
			Highlight string `yaml:"highlight"`
			Subtle    string `yaml:"subtle"`
			Error     string `yaml:"error"`
			Success   string `yaml:"success"`
			Warning   string `yaml:"warning"`
		} `yaml:"theme"`
	} `yaml:"ui"`
	Tracing struct {
		Enabled     bool    `yaml:"enabled"`
		Exporter    string  `yaml:"exporter"`
		FilePath    string  `yaml:"file_path,omitempty"`
		SampleRate  float64 `yaml:"sample_rate"`
		ServiceName string  `yaml:"service_name"`
	} `yaml:"tracing"`
}

// WriteDefaultConfig writes the built-in defaults to path, creating parent
// directories as needed. Used on first run when no config file exists.
func WriteDefaultConfig(path string) error {
	d := Defaults()

	var fc fileConfig
	fc.Views = d.Views
	fc.CacheTTLSeconds = d.CacheTTLSeconds
	fc.UI.Banner = d.UI.Banner
	fc.UI.Plain = d.UI.Plain
	fc.UI.Theme.Highlight = d.UI.Theme.Highlight
	fc.UI.Theme.Subtle = d.UI.Theme.Subtle
	fc.UI.Theme.Error = d.UI.Theme.Error
	fc.UI.Theme.Success = d.UI.Theme.Success
	fc.UI.Theme.Warning = d.UI.Theme.Warning
	fc.Tracing.Enabled = d.Tracing.Enabled
	fc.Tracing.Exporter = d.Tracing.Exporter
	fc.Tracing.FilePath = d.Tracing.FilePath
	fc.Tracing.SampleRate = d.Tracing.SampleRate
	fc.Tracing.ServiceName = d.Tracing.ServiceName

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return fmt.Errorf("marshaling defaults: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write atomically (write to temp, then rename).
	temp, err := os.CreateTemp(dir, ".comspect.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(temp.Name())
		return fmt.Errorf("writing config: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(temp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(temp.Name(), path); err != nil {
		_ = os.Remove(temp.Name())
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}
