// pkg/config/config_test.go
package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/go-tankgame/pkg/input"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.World.Width != 1440 || config.World.Height != 800 {
		t.Errorf("world = %vx%v, want 1440x800", config.World.Width, config.World.Height)
	}
	if config.World.GravityY != -90 {
		t.Errorf("gravity = %v, want -90", config.World.GravityY)
	}
	if config.Combat.BounceDebris != 5 || config.Combat.HitDebris != 10 {
		t.Errorf("combat = %+v", config.Combat)
	}
	if len(config.Players) != 4 {
		t.Fatalf("expected 4 players, got %d", len(config.Players))
	}

	var tanks, ships int
	for _, p := range config.Players {
		switch p.Vehicle {
		case VehicleTank:
			tanks++
			if p.Turret == nil || !p.Turret.ChargeBar {
				t.Errorf("tank %q has no charged turret", p.Name)
			}
		case VehicleSpaceship:
			ships++
			if p.CycleTo == "" {
				t.Errorf("spaceship %q does not cycle its color", p.Name)
			}
		}
	}
	if tanks != 2 || ships != 2 {
		t.Errorf("tanks, ships = %d, %d", tanks, ships)
	}
	if !config.Players[3].Turret.FacingLeft {
		t.Error("right tank turret should face left")
	}

	if err := config.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.World.Width != 1440 || len(config.Players) != 4 {
		t.Errorf("config = %+v", config.World)
	}
}

func TestLoadConfig_PartialFileMergesDefaults(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "tank.json", `{"world": {"width": 2000}, "players": [{"name": "Solo", "vehicle": "tank", "keys": "wasd", "x": 10, "y": 20}]}`},
		{"yaml", "tank.yaml", "world:\n  width: 2000\nplayers:\n  - name: Solo\n    vehicle: tank\n    keys: wasd\n    x: 10\n    y: 20\n"},
		{"toml", "tank.toml", "[world]\nwidth = 2000\n\n[[players]]\nname = \"Solo\"\nvehicle = \"tank\"\nkeys = \"wasd\"\nx = 10.0\ny = 20.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if config.World.Width != 2000 {
				t.Errorf("width = %v, want 2000", config.World.Width)
			}
			if config.World.Height != 800 {
				t.Errorf("height = %v, want default 800", config.World.Height)
			}
			if len(config.Players) != 1 || config.Players[0].Name != "Solo" || config.Players[0].X != 10 {
				t.Errorf("players = %+v", config.Players)
			}
			if config.Firing.ChargeRate != 60 {
				t.Errorf("charge rate = %v, want default", config.Firing.ChargeRate)
			}
		})
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("TANKGAME_WORLD_HEIGHT", "600")
	t.Setenv("TANKGAME_COMBAT_HIT_DEBRIS", "3")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.World.Height != 600 {
		t.Errorf("height = %v, want 600", config.World.Height)
	}
	if config.Combat.HitDebris != 3 {
		t.Errorf("hit debris = %d, want 3", config.Combat.HitDebris)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	config, err := LoadConfig("/path/that/does/not/exist/config.json")

	if err == nil || config != nil {
		t.Fatalf("LoadConfig() = %v, %v; want error", config, err)
	}
	if !strings.Contains(err.Error(), "failed to open config file") {
		t.Errorf("error = %q", err)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid_config.json")
	if err := os.WriteFile(path, []byte(`{"world": {"width": 5000}, invalid json}`), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err == nil || config != nil {
		t.Fatalf("LoadConfig() = %v, %v; want error", config, err)
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("error = %q", err)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"world": {"width": -5}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	config := DefaultConfig()
	config.World.Width = 1000
	config.Players = config.Players[2:]

	path := filepath.Join(t.TempDir(), "saved.json")
	if err := SaveConfig(config, path); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.World.Width != 1000 {
		t.Errorf("width = %v", loaded.World.Width)
	}
	if len(loaded.Players) != 2 || loaded.Players[1].Turret == nil || !loaded.Players[1].Turret.FacingLeft {
		t.Errorf("players = %+v", loaded.Players)
	}
}

func TestSaveConfig_Errors(t *testing.T) {
	if err := SaveConfig(nil, filepath.Join(t.TempDir(), "x.json")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil config error = %v", err)
	}

	err := SaveConfig(DefaultConfig(), filepath.Join(t.TempDir(), "missing", "dir", "config.json"))
	if err == nil || !strings.Contains(err.Error(), "failed to write config file") {
		t.Errorf("bad path error = %v", err)
	}
}

func TestValidate_Players(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *PlayerConfig)
		field  string
	}{
		{"empty name", func(p *PlayerConfig) { p.Name = "" }, "players[0].name"},
		{"unknown vehicle", func(p *PlayerConfig) { p.Vehicle = "boat" }, "players[0].vehicle"},
		{"unknown keys", func(p *PlayerConfig) { p.Keys = "dvorak" }, "players[0].keys"},
		{"bad color", func(p *PlayerConfig) { p.Color = "green" }, "players[0].color"},
		{"bad cycle color", func(p *PlayerConfig) { p.CycleTo = "#12" }, "players[0].cycle_to"},
		{"negative radius", func(p *PlayerConfig) { p.Radius = -3 }, "players[0].radius"},
		{"bad turret color", func(p *PlayerConfig) { p.Turret = &TurretConfig{Color: "nope"} }, "players[0].turret.color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.Players = config.Players[:1]
			tt.modify(&config.Players[0])

			err := config.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name %s", err, tt.field)
			}
		})
	}
}

func TestValidate_DuplicateNames(t *testing.T) {
	config := DefaultConfig()
	config.Players[1].Name = config.Players[0].Name
	if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate_Thresholds(t *testing.T) {
	config := DefaultConfig()
	config.HealthBar = HealthBarConfig{Good: 0.4, Medium: 0.6, Bad: 0.1}
	if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#00ffff", color.RGBA{G: 255, B: 255, A: 255}, false},
		{"#FF8000", color.RGBA{R: 255, G: 128, A: 255}, false},
		{"#808080", color.RGBA{R: 128, G: 128, B: 128, A: 255}, false},
		{"red", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if err == nil && FormatColor(got) != strings.ToLower(tt.in) {
				t.Errorf("FormatColor() = %q", FormatColor(got))
			}
		})
	}
}

func TestDefaultConfig_KeySchemesExist(t *testing.T) {
	for _, p := range DefaultConfig().Players {
		if _, ok := input.LookupScheme(p.Keys); !ok {
			t.Errorf("player %q uses unknown scheme %q", p.Name, p.Keys)
		}
	}
}
