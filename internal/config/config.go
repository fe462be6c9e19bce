// Package config handles tile tool configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// Config holds all tool settings.
type Config struct {
	Tool    ToolConfig    `yaml:"tool"`
	Grid    GridConfig    `yaml:"grid"`
	Logging LoggingConfig `yaml:"logging"`
}

// ToolConfig holds paint/build tool behaviour.
type ToolConfig struct {
	Mode         string        `yaml:"mode"` // paint | build
	TickInterval time.Duration `yaml:"tick_interval"`
	LockNormal   bool          `yaml:"lock_normal"`

	// Build rejects a face when the hit surface faces the plane normal
	// within NormalTolerance and lies within DistanceTolerance of it.
	NormalTolerance   float64 `yaml:"coplanar_normal_tolerance"`
	DistanceTolerance float64 `yaml:"coplanar_distance_tolerance"`
}

// GridConfig holds default grid settings for objects without a grid.
type GridConfig struct {
	WorldPixels float64 `yaml:"world_pixels"` // Pixels per world unit
	DefaultCell [2]int  `yaml:"default_cell"` // Width, height in pixels
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Tool: ToolConfig{
			Mode:              "build",
			TickInterval:      100 * time.Millisecond,
			LockNormal:        false,
			NormalTolerance:   0.05,
			DistanceTolerance: 0.05,
		},
		Grid: GridConfig{
			WorldPixels: 32,
			DefaultCell: [2]int{32, 32},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would make the tool misbehave.
func (c *Config) Validate() error {
	switch c.Tool.Mode {
	case "paint", "build", "make_face":
	default:
		return fmt.Errorf("tool.mode %q: want paint, build or make_face", c.Tool.Mode)
	}
	if c.Tool.TickInterval <= 0 {
		return fmt.Errorf("tool.tick_interval %v must be positive", c.Tool.TickInterval)
	}
	if c.Tool.NormalTolerance < 0 || c.Tool.DistanceTolerance < 0 {
		return fmt.Errorf("coplanar tolerances must not be negative")
	}
	if c.Grid.WorldPixels <= 0 {
		return fmt.Errorf("grid.world_pixels %v must be positive", c.Grid.WorldPixels)
	}
	if c.Grid.DefaultCell[0] <= 0 || c.Grid.DefaultCell[1] <= 0 {
		return fmt.Errorf("grid.default_cell %v must be positive", c.Grid.DefaultCell)
	}
	return nil
}
