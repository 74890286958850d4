// Package config loads engine settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds the tunables shared by the client session and the
// integrated server.
type Settings struct {
	ServerAddr   string  `yaml:"server_addr"`
	TickRate     int     `yaml:"tick_rate"` // ticks per second
	ViewRadius   int     `yaml:"view_radius"` // in chunks
	DataDir      string  `yaml:"data_dir"` // empty means built-in game data
	PlayerWidth  float64 `yaml:"player_width"`
	PlayerHeight float64 `yaml:"player_height"`
}

// Default returns the settings used when no config file is present.
func Default() Settings {
	return Settings{
		ServerAddr:   "localhost:8755",
		TickRate:     30,
		ViewRadius:   2,
		PlayerWidth:  0.8,
		PlayerHeight: 1.8,
	}
}

// Load reads settings from path. A missing file is not an error: defaults
// are returned so a bare checkout runs without setup.
func Load(path string) (Settings, error) {
	s := Default()
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	s.clamp()
	return s, nil
}

// clamp keeps values in ranges the engine handles well.
func (s *Settings) clamp() {
	if s.ViewRadius < 1 {
		s.ViewRadius = 1
	}
	if s.ViewRadius > 8 {
		s.ViewRadius = 8
	}
	if s.TickRate < 10 {
		s.TickRate = 10
	}
	if s.TickRate > 120 {
		s.TickRate = 120
	}
	if s.PlayerWidth <= 0 {
		s.PlayerWidth = 0.8
	}
	if s.PlayerHeight <= 0 {
		s.PlayerHeight = 1.8
	}
}

// TickInterval converts the tick rate to a ticker period.
func (s Settings) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRate)
}
