package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ptolemy.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestYAMLProviderLoadConfig(t *testing.T) {
	path := writeConfig(t, `
geocoder:
  endpoint: http://localhost:8088
  user-agent: chart-tests
  timeout: 3s
  limit: 2
ephemeris:
  vsop87-path: /usr/share/vsop87
chart:
  house-system: Whole Sign
  output-format: json
log:
  file: /var/log/ptolemy.log
  max-backups: 7
`)

	cfg, err := NewYAMLProvider(path).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Geocoder.Endpoint != "http://localhost:8088" {
		t.Errorf("Geocoder.Endpoint = %q", cfg.Geocoder.Endpoint)
	}
	if cfg.Geocoder.UserAgent != "chart-tests" {
		t.Errorf("Geocoder.UserAgent = %q", cfg.Geocoder.UserAgent)
	}
	if d, _ := cfg.Geocoder.TimeoutDuration(); d != 3*time.Second {
		t.Errorf("Geocoder timeout = %v, expected 3s", d)
	}
	if cfg.Geocoder.Limit != 2 {
		t.Errorf("Geocoder.Limit = %d, expected 2", cfg.Geocoder.Limit)
	}
	if cfg.Ephemeris.VSOP87Path != "/usr/share/vsop87" {
		t.Errorf("Ephemeris.VSOP87Path = %q", cfg.Ephemeris.VSOP87Path)
	}
	if cfg.Chart.HouseSystem != "Whole Sign" || cfg.Chart.OutputFormat != "json" {
		t.Errorf("Chart = %+v", cfg.Chart)
	}
	if cfg.Log.File != "/var/log/ptolemy.log" || cfg.Log.MaxBackups != 7 {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestYAMLProviderAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "chart:\n  output-format: msgpack\n")

	cfg, err := NewYAMLProvider(path).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Geocoder.Endpoint != DefaultGeocoderEndpoint {
		t.Errorf("Geocoder.Endpoint = %q, expected default", cfg.Geocoder.Endpoint)
	}
	if cfg.Geocoder.Limit != DefaultGeocoderLimit {
		t.Errorf("Geocoder.Limit = %d, expected default", cfg.Geocoder.Limit)
	}
	if cfg.Chart.HouseSystem != DefaultHouseSystem {
		t.Errorf("Chart.HouseSystem = %q, expected default", cfg.Chart.HouseSystem)
	}
	if cfg.Chart.OutputFormat != "msgpack" {
		t.Errorf("Chart.OutputFormat = %q, expected msgpack", cfg.Chart.OutputFormat)
	}
}

func TestYAMLProviderMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	if _, err := NewYAMLProvider(missing).LoadConfig(); err == nil {
		t.Error("LoadConfig() expected an error for a missing file")
	}

	cfg, err := NewOptionalYAMLProvider(missing).LoadConfig()
	if err != nil {
		t.Fatalf("optional LoadConfig() error = %v", err)
	}
	if cfg.Chart.OutputFormat != DefaultOutputFormat {
		t.Errorf("Chart.OutputFormat = %q, expected default", cfg.Chart.OutputFormat)
	}
}

func TestYAMLProviderRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad timeout", "geocoder:\n  timeout: soon\n"},
		{"bad format", "chart:\n  output-format: xml\n"},
		{"unknown key", "chart:\n  colour: blue\n"},
		{"not yaml", "chart: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewYAMLProvider(writeConfig(t, tt.body)).LoadConfig(); err == nil {
				t.Error("LoadConfig() expected an error")
			}
		})
	}
}

func TestYAMLProviderEphemerisSection(t *testing.T) {
	cfg, err := NewYAMLProvider(writeConfig(t, "ephemeris:\n  vsop87-path: /data\n")).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Ephemeris.VSOP87Path != "/data" {
		t.Errorf("VSOP87Path = %q, expected /data", cfg.Ephemeris.VSOP87Path)
	}
	if cfg.Geocoder.Timeout != DefaultGeocoderTimeout {
		t.Errorf("Timeout = %q, expected default", cfg.Geocoder.Timeout)
	}
}
