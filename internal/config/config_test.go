package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Tool.Mode != "build" {
		t.Errorf("expected mode build, got %s", cfg.Tool.Mode)
	}
	if cfg.Tool.TickInterval != 100*time.Millisecond {
		t.Errorf("expected tick interval 100ms, got %v", cfg.Tool.TickInterval)
	}
	if cfg.Tool.LockNormal {
		t.Error("expected lock_normal to be false by default")
	}
	if cfg.Tool.NormalTolerance != 0.05 || cfg.Tool.DistanceTolerance != 0.05 {
		t.Errorf("expected tolerances 0.05, got %v/%v", cfg.Tool.NormalTolerance, cfg.Tool.DistanceTolerance)
	}
	if cfg.Grid.WorldPixels != 32 {
		t.Errorf("expected world pixels 32, got %v", cfg.Grid.WorldPixels)
	}
	if cfg.Grid.DefaultCell != [2]int{32, 32} {
		t.Errorf("expected default cell 32x32, got %v", cfg.Grid.DefaultCell)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "tilepaint.yaml")

	yamlContent := `
tool:
  mode: paint
  tick_interval: 250ms
  lock_normal: true
  coplanar_normal_tolerance: 0.1
  coplanar_distance_tolerance: 0.01

grid:
  world_pixels: 100
  default_cell: [16, 8]

logging:
  level: "debug"
  log_file: "tilepaint.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Tool.Mode != "paint" {
		t.Errorf("expected mode paint, got %s", cfg.Tool.Mode)
	}
	if cfg.Tool.TickInterval != 250*time.Millisecond {
		t.Errorf("expected tick interval 250ms, got %v", cfg.Tool.TickInterval)
	}
	if !cfg.Tool.LockNormal {
		t.Error("expected lock_normal to be true")
	}
	if cfg.Tool.NormalTolerance != 0.1 || cfg.Tool.DistanceTolerance != 0.01 {
		t.Errorf("tolerances = %v/%v", cfg.Tool.NormalTolerance, cfg.Tool.DistanceTolerance)
	}
	if cfg.Grid.WorldPixels != 100 {
		t.Errorf("expected world pixels 100, got %v", cfg.Grid.WorldPixels)
	}
	if cfg.Grid.DefaultCell != [2]int{16, 8} {
		t.Errorf("expected default cell 16x8, got %v", cfg.Grid.DefaultCell)
	}
	if cfg.Logging.LogFile != "tilepaint.log" {
		t.Errorf("expected log file 'tilepaint.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg := Default()
	if err := Parse(cfg, []byte("tool:\n  mode: paint\n")); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Tool.Mode != "paint" {
		t.Errorf("expected mode paint, got %s", cfg.Tool.Mode)
	}
	if cfg.Grid.WorldPixels != 32 {
		t.Errorf("unset world_pixels should keep default, got %v", cfg.Grid.WorldPixels)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
grid:
  world_pixels: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/tilepaint.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad mode", func(c *Config) { c.Tool.Mode = "sculpt" }},
		{"zero tick", func(c *Config) { c.Tool.TickInterval = 0 }},
		{"negative tolerance", func(c *Config) { c.Tool.DistanceTolerance = -1 }},
		{"zero world pixels", func(c *Config) { c.Grid.WorldPixels = 0 }},
		{"zero cell", func(c *Config) { c.Grid.DefaultCell = [2]int{0, 32} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateModeAliases(t *testing.T) {
	for _, mode := range []string{"paint", "build", "make_face"} {
		cfg := Default()
		cfg.Tool.Mode = mode
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() with mode %q = %v, want nil", mode, err)
		}
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/xdg")
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "tilepaint.yaml")
	if err := os.WriteFile(configPath, []byte("tool:\n  mode: paint\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find tilepaint.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "mode flag",
			setup: func() { *flagMode = "paint" },
			verify: func(cfg *Config) {
				if cfg.Tool.Mode != "paint" {
					t.Errorf("expected mode paint, got %s", cfg.Tool.Mode)
				}
			},
			teardown: func() { *flagMode = "" },
		},
		{
			name:  "lock normal flag",
			setup: func() { *flagLockNormal = true },
			verify: func(cfg *Config) {
				if !cfg.Tool.LockNormal {
					t.Error("expected lock_normal with flag")
				}
			},
			teardown: func() { *flagLockNormal = false },
		},
		{
			name:  "world pixels flag",
			setup: func() { *flagWorldPixels = 64 },
			verify: func(cfg *Config) {
				if cfg.Grid.WorldPixels != 64 {
					t.Errorf("expected world pixels 64, got %v", cfg.Grid.WorldPixels)
				}
			},
			teardown: func() { *flagWorldPixels = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tilepaint.yaml")

	cfg := Default()
	cfg.Tool.Mode = "paint"
	cfg.Grid.DefaultCell = [2]int{8, 16}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if loaded.Tool.Mode != "paint" || loaded.Grid.DefaultCell != [2]int{8, 16} {
		t.Errorf("reloaded config = %+v", loaded)
	}
}

func TestSaveUserConfig(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux and others")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := Default()
	cfg.Tool.LockNormal = true
	if err := cfg.SaveTo(UserConfigPath()); err != nil {
		t.Fatalf("SaveTo(UserConfigPath()) error = %v", err)
	}

	path := filepath.Join(dir, "tilepaint", "tilepaint.yaml")
	if UserConfigPath() != path {
		t.Errorf("UserConfigPath() = %q, want %q", UserConfigPath(), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# tilepaint") {
		t.Errorf("saved config has no header: %q", data)
	}
	loaded := Default()
	if err := Parse(loaded, data); err != nil || !loaded.Tool.LockNormal {
		t.Errorf("Parse(saved) = %v, lock_normal=%v", err, loaded.Tool.LockNormal)
	}
}

func TestSaveToRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	cfg := Default()
	cfg.Grid.WorldPixels = 0
	if err := cfg.SaveTo(path); err == nil {
		t.Error("expected error saving an invalid config")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("invalid config was written: %v", err)
	}
}
