// Package config loads the daemon configuration.
package config

import (
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v3"
)

// Config holds the daemon settings.
type Config struct {
	// Adapter names the Bluetooth adapter to use (for example "hci0").
	// Empty selects the first adapter the daemon exposes.
	Adapter string `yaml:"adapter"`

	// LocalName is advertised to scanning centrals.
	LocalName string `yaml:"local_name"`

	// BasePath roots the exported GATT object tree and advertisement.
	BasePath string `yaml:"base_path"`

	// IncludeTxPower includes the TX power level in the advertisement.
	IncludeTxPower bool `yaml:"include_tx_power"`

	// Listen is the HTTP address serving /metrics and /ws.
	// Empty disables the HTTP surface.
	Listen string `yaml:"listen"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LocalName:      "FindMeServer",
		BasePath:       "/org/bluez/findme",
		IncludeTxPower: true,
	}
}

// Load reads a YAML configuration from path, with defaults applied for
// unset fields. A missing file yields the defaults; a malformed one is
// an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
