package config

import (
	"fmt"
	"time"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	Close() error
}

const (
	DefaultGeocoderEndpoint  = "https://nominatim.openstreetmap.org"
	DefaultGeocoderUserAgent = "ptolemy/1.0"
	DefaultGeocoderTimeout   = "10s"
	DefaultGeocoderLimit     = 5
	DefaultHouseSystem       = "Placidus"
	DefaultOutputFormat      = "text"
)

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Geocoder  GeocoderData  `json:"geocoder"`
	Ephemeris EphemerisData `json:"ephemeris"`
	Chart     ChartData     `json:"chart"`
	Log       LogData       `json:"log,omitempty"`
}

// GeocoderData configures the place-name search service
type GeocoderData struct {
	Endpoint  string `json:"endpoint"`
	UserAgent string `json:"user_agent"`
	Timeout   string `json:"timeout"`
	Limit     int    `json:"limit"`
}

// TimeoutDuration parses Timeout
func (g GeocoderData) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(g.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid geocoder timeout %q: %w", g.Timeout, err)
	}
	return d, nil
}

// EphemerisData selects the planetary theory
type EphemerisData struct {
	// VSOP87Path is a directory of VSOP87B files; empty selects the built-in
	// Keplerian elements
	VSOP87Path string `json:"vsop87_path,omitempty"`
}

// ChartData holds chart and report defaults
type ChartData struct {
	HouseSystem  string `json:"house_system"`
	OutputFormat string `json:"output_format"`
}

// LogData configures the optional rotating log file
type LogData struct {
	File       string `json:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty"`
	Debug      bool   `json:"debug,omitempty"`
}

// Defaults returns the configuration used when no file is given
func Defaults() *ConfigData {
	c := &ConfigData{}
	applyDefaults(c)
	return c
}

func applyDefaults(c *ConfigData) {
	if c.Geocoder.Endpoint == "" {
		c.Geocoder.Endpoint = DefaultGeocoderEndpoint
	}
	if c.Geocoder.UserAgent == "" {
		c.Geocoder.UserAgent = DefaultGeocoderUserAgent
	}
	if c.Geocoder.Timeout == "" {
		c.Geocoder.Timeout = DefaultGeocoderTimeout
	}
	if c.Geocoder.Limit <= 0 {
		c.Geocoder.Limit = DefaultGeocoderLimit
	}
	if c.Chart.HouseSystem == "" {
		c.Chart.HouseSystem = DefaultHouseSystem
	}
	if c.Chart.OutputFormat == "" {
		c.Chart.OutputFormat = DefaultOutputFormat
	}
}

// Validate checks the values that can be checked without other packages
func (c *ConfigData) Validate() error {
	if _, err := c.Geocoder.TimeoutDuration(); err != nil {
		return err
	}
	switch c.Chart.OutputFormat {
	case "text", "json", "msgpack":
	default:
		return fmt.Errorf("invalid output format %q: expected text, json or msgpack", c.Chart.OutputFormat)
	}
	return nil
}
