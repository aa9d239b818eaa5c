package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mindlink/internal/headset"
)

// Environment variables recognized for cloud credentials. Credentials are
// never written to the config file.
const (
	EnvEmail    = "EMAIL"
	EnvPassword = "PASSWORD"
	EnvDeviceID = "DEVICE_ID"
)

// ConnectionConfig contains device client connection parameters.
type ConnectionConfig struct {
	Mode                   headset.StreamingMode `json:"mode"`
	AutoSelectDevice       bool                  `json:"auto_select_device"`
	BluetoothManualConnect bool                  `json:"bluetooth_manual_connect"`
	AdapterPreflight       bool                  `json:"adapter_preflight"`
}

// Options maps the connection config onto client construction options.
func (c ConnectionConfig) Options() headset.Options {
	return headset.Options{
		AutoSelectDevice:       c.AutoSelectDevice,
		BluetoothManualConnect: c.BluetoothManualConnect,
		Mode:                   c.Mode,
	}
}

// CloudConfig holds optional cloud credentials sourced from the
// environment. Cloud features are strictly additive: an empty email or
// password skips the whole login sequence.
type CloudConfig struct {
	Email    string `json:"-"`
	Password string `json:"-"`
	DeviceID string `json:"-"`
}

// Configured reports whether both credentials are present.
func (c CloudConfig) Configured() bool {
	return strings.TrimSpace(c.Email) != "" && c.Password != ""
}

// LoggingConfig defines runtime logging behavior.
type LoggingConfig struct {
	Level     string `json:"level"`
	LogToFile bool   `json:"log_to_file"`
}

// JournalConfig controls the on-disk session journal.
type JournalConfig struct {
	Enabled bool `json:"enabled"`
}

// UpdatesConfig controls the release update checker.
type UpdatesConfig struct {
	Enabled  bool   `json:"enabled"`
	Endpoint string `json:"endpoint"`
}

// AppConfig is the root application configuration. Connection, logging,
// journal, and updates sections persist to the config file; cloud
// credentials come from the environment on every load.
type AppConfig struct {
	Connection ConnectionConfig `json:"connection"`
	Logging    LoggingConfig    `json:"logging"`
	Journal    JournalConfig    `json:"journal"`
	Updates    UpdatesConfig    `json:"updates"`
	Cloud      CloudConfig      `json:"-"`
}

func Default() AppConfig {
	return AppConfig{
		Connection: ConnectionConfig{
			Mode:                   headset.StreamingBluetoothWithWifiFallback,
			AutoSelectDevice:       true,
			BluetoothManualConnect: true,
			AdapterPreflight:       true,
		},
		Logging: LoggingConfig{
			Level:     "info",
			LogToFile: false,
		},
		Journal: JournalConfig{
			Enabled: true,
		},
		Updates: UpdatesConfig{
			Enabled: false,
		},
	}
}

// Load reads the config file, fills defaults, and overlays cloud
// credentials from the environment. A missing file yields defaults.
func Load(path string) (AppConfig, error) {
	cfg := Default()
	cleanPath := filepath.Clean(path)
	// #nosec G304 -- path is resolved by app runtime and points to user config dir.
	raw, err := os.ReadFile(cleanPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.Cloud = cloudFromEnv()

			return cfg, nil
		}

		return AppConfig{}, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(raw, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode config json: %w", err)
	}

	cfg.FillMissingDefaults()
	cfg.Cloud = cloudFromEnv()

	return cfg, nil
}

func cloudFromEnv() CloudConfig {
	return CloudConfig{
		Email:    strings.TrimSpace(os.Getenv(EnvEmail)),
		Password: os.Getenv(EnvPassword),
		DeviceID: strings.TrimSpace(os.Getenv(EnvDeviceID)),
	}
}

func (c *AppConfig) FillMissingDefaults() {
	c.Connection.Mode = normalizeMode(c.Connection.Mode)
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func normalizeMode(mode headset.StreamingMode) headset.StreamingMode {
	switch mode {
	case headset.StreamingWifiOnly, headset.StreamingWifiWithBluetoothFallback:
		return mode
	default:
		return headset.StreamingBluetoothWithWifiFallback
	}
}

func (c AppConfig) Validate() error {
	switch c.Connection.Mode {
	case headset.StreamingWifiOnly,
		headset.StreamingBluetoothWithWifiFallback,
		headset.StreamingWifiWithBluetoothFallback:
	default:
		return fmt.Errorf("unknown streaming mode: %q", c.Connection.Mode)
	}
	if c.Updates.Enabled && strings.TrimSpace(c.Updates.Endpoint) == "" {
		return errors.New("updates endpoint is required when update checks are enabled")
	}

	return nil
}

// Save writes the config atomically. Cloud credentials are excluded by the
// json:"-" tags.
func Save(path string, cfg AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, raw, 0o600); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp config: %w", err)
	}

	return nil
}
