package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	// optional means a missing file yields the defaults instead of an error
	optional bool
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// NewOptionalYAMLProvider is like NewYAMLProvider but falls back to the
// defaults when the file does not exist
func NewOptionalYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
		optional: true,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		if y.optional && errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Geocoder  GeocoderYAML  `yaml:"geocoder,omitempty"`
		Ephemeris EphemerisYAML `yaml:"ephemeris,omitempty"`
		Chart     ChartYAML     `yaml:"chart,omitempty"`
		Log       LogYAML       `yaml:"log,omitempty"`
	}

	err = yaml.UnmarshalStrict(cfgFile, &yamlConfig)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", y.filename, err)
	}

	// Convert to our internal format
	config := &ConfigData{
		Geocoder: GeocoderData{
			Endpoint:  yamlConfig.Geocoder.Endpoint,
			UserAgent: yamlConfig.Geocoder.UserAgent,
			Timeout:   yamlConfig.Geocoder.Timeout,
			Limit:     yamlConfig.Geocoder.Limit,
		},
		Ephemeris: EphemerisData{
			VSOP87Path: yamlConfig.Ephemeris.VSOP87Path,
		},
		Chart: ChartData{
			HouseSystem:  yamlConfig.Chart.HouseSystem,
			OutputFormat: yamlConfig.Chart.OutputFormat,
		},
		Log: LogData{
			File:       yamlConfig.Log.File,
			MaxSizeMB:  yamlConfig.Log.MaxSizeMB,
			MaxBackups: yamlConfig.Log.MaxBackups,
			MaxAgeDays: yamlConfig.Log.MaxAgeDays,
			Debug:      yamlConfig.Log.Debug,
		},
	}
	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("error in %s: %w", y.filename, err)
	}

	return config, nil
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with proper YAML tags
type GeocoderYAML struct {
	Endpoint  string `yaml:"endpoint,omitempty"`
	UserAgent string `yaml:"user-agent,omitempty"`
	Timeout   string `yaml:"timeout,omitempty"`
	Limit     int    `yaml:"limit,omitempty"`
}

type EphemerisYAML struct {
	VSOP87Path string `yaml:"vsop87-path,omitempty"`
}

type ChartYAML struct {
	HouseSystem  string `yaml:"house-system,omitempty"`
	OutputFormat string `yaml:"output-format,omitempty"`
}

type LogYAML struct {
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max-size-mb,omitempty"`
	MaxBackups int    `yaml:"max-backups,omitempty"`
	MaxAgeDays int    `yaml:"max-age-days,omitempty"`
	Debug      bool   `yaml:"debug,omitempty"`
}
