// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"

	"github.com/opd-ai/go-tankgame/pkg/input"
	"github.com/opd-ai/go-tankgame/pkg/validation"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. TANKGAME_WORLD_WIDTH for world.width.
const EnvPrefix = "TANKGAME"

// Vehicle kinds accepted in PlayerConfig.Vehicle.
const (
	VehicleTank      = "tank"
	VehicleSpaceship = "spaceship"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config contains the configuration of one simulation run.
type Config struct {
	World     WorldConfig     `json:"world" mapstructure:"world"`
	Frame     FrameConfig     `json:"frame" mapstructure:"frame"`
	Combat    CombatConfig    `json:"combat" mapstructure:"combat"`
	Firing    FiringConfig    `json:"firing" mapstructure:"firing"`
	HealthBar HealthBarConfig `json:"health_bar" mapstructure:"health_bar"`
	Audio     AudioConfig     `json:"audio" mapstructure:"audio"`
	Players   []PlayerConfig  `json:"players" mapstructure:"players"`
}

// WorldConfig sizes the world and sets the forces acting in it.
type WorldConfig struct {
	Width    float64 `json:"width" mapstructure:"width"`
	Height   float64 `json:"height" mapstructure:"height"`
	GravityX float64 `json:"gravity_x" mapstructure:"gravity_x"`
	GravityY float64 `json:"gravity_y" mapstructure:"gravity_y"`
	WindX    float64 `json:"wind_x" mapstructure:"wind_x"`
	WindY    float64 `json:"wind_y" mapstructure:"wind_y"`
	Seed     uint64  `json:"seed" mapstructure:"seed"`
}

// FrameConfig controls the frame loop of the front-ends.
type FrameConfig struct {
	FPS      int     `json:"fps" mapstructure:"fps"`
	MaxDelta float64 `json:"max_delta" mapstructure:"max_delta"` // seconds, longer frames are capped
}

// CombatConfig sets the debris bursts.
type CombatConfig struct {
	BounceDebris int `json:"bounce_debris" mapstructure:"bounce_debris"`
	HitDebris    int `json:"hit_debris" mapstructure:"hit_debris"`
}

// FiringConfig holds the turret defaults shared by all players.
type FiringConfig struct {
	AimRate              float64 `json:"aim_rate" mapstructure:"aim_rate"`
	ChargeRate           float64 `json:"charge_rate" mapstructure:"charge_rate"`
	ChargeBaseline       float64 `json:"charge_baseline" mapstructure:"charge_baseline"`
	FullCharge           float64 `json:"full_charge" mapstructure:"full_charge"`
	LaunchSpeedPerCharge float64 `json:"launch_speed_per_charge" mapstructure:"launch_speed_per_charge"`
	ProjectileDamage     float64 `json:"projectile_damage" mapstructure:"projectile_damage"`
	ProjectileRadius     float64 `json:"projectile_radius" mapstructure:"projectile_radius"`
	ProjectileGravity    bool    `json:"projectile_gravity" mapstructure:"projectile_gravity"`
}

// HealthBarConfig holds the tier thresholds of every bar.
type HealthBarConfig struct {
	Good   float64 `json:"good" mapstructure:"good"`
	Medium float64 `json:"medium" mapstructure:"medium"`
	Bad    float64 `json:"bad" mapstructure:"bad"`
}

// AudioConfig controls the sound effects.
type AudioConfig struct {
	Enabled    bool    `json:"enabled" mapstructure:"enabled"`
	SampleRate int     `json:"sample_rate" mapstructure:"sample_rate"`
	Volume     float64 `json:"volume" mapstructure:"volume"`
}

// PlayerConfig describes one controlled vehicle.
type PlayerConfig struct {
	Name      string  `json:"name" mapstructure:"name"`
	Vehicle   string  `json:"vehicle" mapstructure:"vehicle"`
	Keys      string  `json:"keys" mapstructure:"keys"`
	X         float64 `json:"x" mapstructure:"x"`
	Y         float64 `json:"y" mapstructure:"y"`
	Rotation  float64 `json:"rotation" mapstructure:"rotation"`
	Speed     float64 `json:"speed" mapstructure:"speed"`
	Radius    float64 `json:"radius" mapstructure:"radius"`
	Hitpoints float64 `json:"hitpoints" mapstructure:"hitpoints"`
	Color     string  `json:"color" mapstructure:"color"`

	// CycleTo turns Color into a back-and-forth cycle with the given period.
	CycleTo     string  `json:"cycle_to,omitempty" mapstructure:"cycle_to"`
	CyclePeriod float64 `json:"cycle_period,omitempty" mapstructure:"cycle_period"`

	HealthBar bool          `json:"health_bar" mapstructure:"health_bar"`
	Turret    *TurretConfig `json:"turret,omitempty" mapstructure:"turret"`
}

// TurretConfig mounts a turret on a player's vehicle.
type TurretConfig struct {
	OffsetX    float64 `json:"offset_x" mapstructure:"offset_x"`
	OffsetY    float64 `json:"offset_y" mapstructure:"offset_y"`
	Radius     float64 `json:"radius" mapstructure:"radius"`
	Color      string  `json:"color" mapstructure:"color"`
	FacingLeft bool    `json:"facing_left" mapstructure:"facing_left"`
	ChargeBar  bool    `json:"charge_bar" mapstructure:"charge_bar"`
}

// LoadConfig reads the file at path (JSON, YAML or TOML, chosen by
// extension) over the defaults, applies TANKGAME_* environment overrides and
// validates the result. An empty path loads defaults and environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to open config file: %w", err)
			}
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if !v.IsSet("players") {
		cfg.Players = DefaultConfig().Players
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every scalar key so that environment overrides and
// partial files are merged onto the defaults.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("world.width", d.World.Width)
	v.SetDefault("world.height", d.World.Height)
	v.SetDefault("world.gravity_x", d.World.GravityX)
	v.SetDefault("world.gravity_y", d.World.GravityY)
	v.SetDefault("world.wind_x", d.World.WindX)
	v.SetDefault("world.wind_y", d.World.WindY)
	v.SetDefault("world.seed", d.World.Seed)

	v.SetDefault("frame.fps", d.Frame.FPS)
	v.SetDefault("frame.max_delta", d.Frame.MaxDelta)

	v.SetDefault("combat.bounce_debris", d.Combat.BounceDebris)
	v.SetDefault("combat.hit_debris", d.Combat.HitDebris)

	v.SetDefault("firing.aim_rate", d.Firing.AimRate)
	v.SetDefault("firing.charge_rate", d.Firing.ChargeRate)
	v.SetDefault("firing.charge_baseline", d.Firing.ChargeBaseline)
	v.SetDefault("firing.full_charge", d.Firing.FullCharge)
	v.SetDefault("firing.launch_speed_per_charge", d.Firing.LaunchSpeedPerCharge)
	v.SetDefault("firing.projectile_damage", d.Firing.ProjectileDamage)
	v.SetDefault("firing.projectile_radius", d.Firing.ProjectileRadius)
	v.SetDefault("firing.projectile_gravity", d.Firing.ProjectileGravity)

	v.SetDefault("health_bar.good", d.HealthBar.Good)
	v.SetDefault("health_bar.medium", d.HealthBar.Medium)
	v.SetDefault("health_bar.bad", d.HealthBar.Bad)

	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.volume", d.Audio.Volume)
}

// SaveConfig writes config to path as indented JSON.
func SaveConfig(config *Config, path string) error {
	if config == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks every section and returns all problems joined.
func (c *Config) Validate() error {
	errs := []error{
		validation.Positive("world.width", c.World.Width),
		validation.Positive("world.height", c.World.Height),
		validation.Finite("world.gravity_x", c.World.GravityX),
		validation.Finite("world.gravity_y", c.World.GravityY),
		validation.Finite("world.wind_x", c.World.WindX),
		validation.Finite("world.wind_y", c.World.WindY),
		validation.Positive("frame.fps", float64(c.Frame.FPS)),
		validation.Positive("frame.max_delta", c.Frame.MaxDelta),
		validation.NonNegative("combat.bounce_debris", float64(c.Combat.BounceDebris)),
		validation.NonNegative("combat.hit_debris", float64(c.Combat.HitDebris)),
		validation.NonNegative("firing.aim_rate", c.Firing.AimRate),
		validation.NonNegative("firing.charge_rate", c.Firing.ChargeRate),
		validation.NonNegative("firing.charge_baseline", c.Firing.ChargeBaseline),
		validation.Positive("firing.full_charge", c.Firing.FullCharge),
		validation.NonNegative("firing.launch_speed_per_charge", c.Firing.LaunchSpeedPerCharge),
		validation.NonNegative("firing.projectile_damage", c.Firing.ProjectileDamage),
		validation.NonNegative("firing.projectile_radius", c.Firing.ProjectileRadius),
		validation.Range("health_bar.good", c.HealthBar.Good, 0, 1),
		validation.Range("health_bar.medium", c.HealthBar.Medium, 0, c.HealthBar.Good),
		validation.Range("health_bar.bad", c.HealthBar.Bad, 0, c.HealthBar.Medium),
		validation.Range("audio.volume", c.Audio.Volume, -10, 10),
	}
	if c.Audio.Enabled {
		errs = append(errs, validation.Positive("audio.sample_rate", float64(c.Audio.SampleRate)))
	}

	names := make(map[string]bool)
	for i, p := range c.Players {
		errs = append(errs, p.validate(i))
		if names[p.Name] {
			errs = append(errs, fmt.Errorf("players[%d]: duplicate name %q", i, p.Name))
		}
		names[p.Name] = true
	}

	if err := validation.Collect(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (p PlayerConfig) validate(i int) error {
	field := func(name string) string { return fmt.Sprintf("players[%d].%s", i, name) }
	var errs []error

	if _, err := validation.ValidatePlayerName(p.Name); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", field("name"), err))
	}
	if p.Vehicle != VehicleTank && p.Vehicle != VehicleSpaceship {
		errs = append(errs, fmt.Errorf("%s: unknown vehicle %q", field("vehicle"), p.Vehicle))
	}
	if _, ok := input.LookupScheme(p.Keys); !ok {
		errs = append(errs, fmt.Errorf("%s: unknown key scheme %q", field("keys"), p.Keys))
	}
	errs = append(errs,
		validation.Finite(field("x"), p.X),
		validation.Finite(field("y"), p.Y),
		validation.NonNegative(field("radius"), p.Radius),
		validation.NonNegative(field("hitpoints"), p.Hitpoints),
	)
	for name, value := range map[string]string{"color": p.Color, "cycle_to": p.CycleTo} {
		if value == "" {
			continue
		}
		if _, err := ParseColor(value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field(name), err))
		}
	}
	if p.CycleTo != "" {
		errs = append(errs, validation.NonNegative(field("cycle_period"), p.CyclePeriod))
	}
	if p.Turret != nil {
		errs = append(errs, validation.NonNegative(field("turret.radius"), p.Turret.Radius))
		if p.Turret.Color != "" {
			if _, err := ParseColor(p.Turret.Color); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", field("turret.color"), err))
			}
		}
	}
	return validation.Collect(errs...)
}

// ParseColor parses "#rrggbb" into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// DefaultConfig reproduces the classic scene: a 1440x800 field with two
// color-cycling spaceships and two tanks carrying charge turrets, the right
// one facing left.
func DefaultConfig() *Config {
	return &Config{
		World: WorldConfig{
			Width:    1440,
			Height:   800,
			GravityY: -90,
			Seed:     1,
		},
		Frame: FrameConfig{
			FPS:      60,
			MaxDelta: 0.1,
		},
		Combat: CombatConfig{
			BounceDebris: 5,
			HitDebris:    10,
		},
		Firing: FiringConfig{
			AimRate:              60,
			ChargeRate:           60,
			ChargeBaseline:       1,
			FullCharge:           100,
			LaunchSpeedPerCharge: 5,
			ProjectileDamage:     10,
			ProjectileRadius:     10,
			ProjectileGravity:    true,
		},
		HealthBar: HealthBarConfig{
			Good:   0.8,
			Medium: 0.5,
			Bad:    0.15,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     -1,
		},
		Players: []PlayerConfig{
			{
				Name:        "Cyan",
				Vehicle:     VehicleSpaceship,
				Keys:        input.SchemeCursor,
				X:           100,
				Y:           600,
				Speed:       50,
				Radius:      50,
				Color:       "#00ffff",
				CycleTo:     "#ff0000",
				CyclePeriod: 0.2,
				HealthBar:   true,
			},
			{
				Name:      "Yellow",
				Vehicle:   VehicleSpaceship,
				Keys:      input.SchemeIJKL,
				X:         400,
				Y:         600,
				Speed:     50,
				Radius:    50,
				Color:     "#ffff00",
				CycleTo:   "#0000ff",
				HealthBar: true,
			},
			{
				Name:      "Left Tank",
				Vehicle:   VehicleTank,
				Keys:      input.SchemeWASD,
				X:         200,
				Y:         600,
				Radius:    100,
				Color:     "#64c864",
				HealthBar: true,
				Turret: &TurretConfig{
					OffsetX:   20,
					OffsetY:   -22,
					Radius:    120,
					Color:     "#808080",
					ChargeBar: true,
				},
			},
			{
				Name:      "Right Tank",
				Vehicle:   VehicleTank,
				Keys:      input.SchemeIJKL,
				X:         1300,
				Y:         200,
				Radius:    100,
				Color:     "#c86464",
				HealthBar: true,
				Turret: &TurretConfig{
					OffsetX:    20,
					OffsetY:    -22,
					Radius:     120,
					Color:      "#808080",
					FacingLeft: true,
					ChargeBar:  true,
				},
			},
		},
	}
}
