// Package config holds the viewer settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"
)

// Duration is a time.Duration that reads and writes as "500ms" in JSON.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config is the viewer configuration
type Config struct {
	Title        string   `json:"title"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	TPS          int      `json:"tps"`
	TickInterval Duration `json:"tick_interval"` // Auto-run period between turns
	Scenario     string   `json:"scenario"`
	AssetsDir    string   `json:"assets_dir"`    // Empty: use embedded images
	ScenariosDir string   `json:"scenarios_dir"` // Empty: use embedded scenarios
	LogLevel     string   `json:"log_level"`
	ShowStats    bool     `json:"show_stats"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Title:        "NetLogo Paraguay - Agent Simulation",
		Width:        1000,
		Height:       800,
		TPS:          60,
		TickInterval: Duration{500 * time.Millisecond},
		Scenario:     "paraguai_1",
		LogLevel:     "info",
	}
}

// Load reads a JSON file over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the values the loop and window cannot work without.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	case c.TPS <= 0:
		return fmt.Errorf("tps %d must be positive", c.TPS)
	case c.TickInterval.Duration <= 0:
		return fmt.Errorf("tick interval %s must be positive", c.TickInterval)
	case c.TickInterval.Duration > MaxInterval(c.TPS):
		return fmt.Errorf("tick interval %s is too long at %d tps", c.TickInterval, c.TPS)
	case c.Scenario == "":
		return errors.New("scenario must be set")
	}
	return nil
}

// MaxInterval is the longest tick interval that converts to ticks without overflow.
func MaxInterval(tps int) time.Duration {
	return (math.MaxInt64 - time.Second/2) / time.Duration(tps)
}

// IntervalTicks converts the auto-run period into game ticks, at least one.
func (c *Config) IntervalTicks() int {
	n := int((c.TickInterval.Duration*time.Duration(c.TPS) + time.Second/2) / time.Second)
	if n < 1 {
		return 1
	}
	return n
}
