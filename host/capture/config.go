package capture

import (
	"encoding/json"
)

// Config describes one capture run.
type Config struct {
	// Device is the serial device path (e.g. "/dev/ttyACM0", "COM3").
	Device string `json:"device"`

	// Baud is the link bit rate; must match the target's lane rate.
	Baud int `json:"baud"`

	// Output is the capture file path, or "-" for stdout.
	Output string `json:"output"`

	// ReadTimeout is the serial read timeout in milliseconds.
	ReadTimeout int `json:"read_timeout"`
}

// LoadConfig parses a JSON configuration and returns a Config with
// defaults applied.
func LoadConfig(jsonData []byte) (*Config, error) {
	var config Config

	err := json.Unmarshal(jsonData, &config)
	if err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

// applyDefaults fills in missing configuration values with sensible defaults
func applyDefaults(config *Config) {
	if config.Device == "" {
		config.Device = "/dev/ttyACM0"
	}
	if config.Baud == 0 {
		config.Baud = 115200
	}
	if config.Output == "" {
		config.Output = "-"
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = 100 // milliseconds
	}
}

// DefaultConfig returns the configuration used when no config file is
// given.
func DefaultConfig(device string) *Config {
	c := &Config{Device: device}
	applyDefaults(c)
	return c
}
