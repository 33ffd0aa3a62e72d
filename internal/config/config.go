// Package config handles roulette configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/roulette/internal/roulette"
	"github.com/Faultbox/roulette/internal/sim"
	"github.com/Faultbox/roulette/pkg/math"
)

// Config holds all roulette settings.
type Config struct {
	Wheel   WheelConfig       `yaml:"wheel"`
	Table   sim.Geometry      `yaml:"table"`
	Physics sim.PhysicsConfig `yaml:"physics"`
	Loop    LoopConfig        `yaml:"loop"`
	Server  ServerConfig      `yaml:"server"`
	Logging LoggingConfig     `yaml:"logging"`
}

// WheelConfig holds the wheel core tuning.
type WheelConfig struct {
	StartSpeed     float64   `yaml:"start_speed"`
	FrictionStep   float64   `yaml:"friction_step"`
	MinRotation    float64   `yaml:"min_rotation"`
	LaunchFrames   int       `yaml:"launch_frames"`
	LaunchStrength float64   `yaml:"launch_strength"`
	DownwardBias   float64   `yaml:"downward_bias"`
	LaunchPoint    math.Vec3 `yaml:"launch_point"`
	RingCenter     math.Vec3 `yaml:"ring_center"`
	NumbersMesh    string    `yaml:"numbers_mesh"`
	SeparatorsMesh string    `yaml:"separators_mesh"`
	ClosedRing     bool      `yaml:"closed_ring"`

	// Mapping overrides the stock single-zero table when set.
	Mapping []roulette.Pocket `yaml:"mapping,omitempty"`
}

// LoopConfig holds game loop pacing.
type LoopConfig struct {
	FPS       int `yaml:"fps"`
	MaxRounds int `yaml:"max_rounds"` // 0 runs forever

	// Jitter spreads the frame pace of headless rounds, see game.Config.
	Jitter float64 `yaml:"jitter"`
	// Seed of the jitter source. 0 picks one from the clock.
	Seed uint64 `yaml:"seed"`
	// ResolveTimeout voids a landed round that matches no pocket after this
	// many frames. 0 waits forever.
	ResolveTimeout int `yaml:"resolve_timeout"`
}

// ServerConfig holds the result feed server settings.
type ServerConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Addr           string   `yaml:"addr"`
	History        int      `yaml:"history"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	s := roulette.DefaultSettings()
	return &Config{
		Wheel: WheelConfig{
			StartSpeed:     s.StartSpeed,
			FrictionStep:   s.FrictionStep,
			MinRotation:    s.MinRotation,
			LaunchFrames:   s.LaunchFrames,
			LaunchStrength: s.LaunchStrength,
			DownwardBias:   s.DownwardBias,
			LaunchPoint:    s.LaunchPoint,
			RingCenter:     s.RingCenter,
			NumbersMesh:    s.NumbersMesh,
			SeparatorsMesh: s.SeparatorsMesh,
			ClosedRing:     s.ClosedRing,
		},
		Table:   sim.DefaultGeometry(),
		Physics: sim.DefaultPhysics(),
		Loop: LoopConfig{
			FPS:            60,
			MaxRounds:      0,
			Jitter:         0.1,
			ResolveTimeout: 300,
		},
		Server: ServerConfig{
			Enabled:        false,
			Addr:           "127.0.0.1:8080",
			History:        100,
			AllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Settings converts the wheel section into core settings.
func (w WheelConfig) Settings() roulette.Settings {
	s := roulette.DefaultSettings()
	s.StartSpeed = w.StartSpeed
	s.FrictionStep = w.FrictionStep
	s.MinRotation = w.MinRotation
	s.LaunchFrames = w.LaunchFrames
	s.LaunchStrength = w.LaunchStrength
	s.DownwardBias = w.DownwardBias
	s.LaunchPoint = w.LaunchPoint
	s.RingCenter = w.RingCenter
	s.NumbersMesh = w.NumbersMesh
	s.SeparatorsMesh = w.SeparatorsMesh
	s.ClosedRing = w.ClosedRing
	return s
}

// PocketMapping returns the configured mapping, or the stock one.
func (w WheelConfig) PocketMapping() roulette.Mapping {
	if len(w.Mapping) == 0 {
		return roulette.DefaultMapping()
	}
	return roulette.Mapping(w.Mapping)
}

// Validate rejects values the loop and server cannot run with. Wheel
// settings are checked by the core itself.
func (c *Config) Validate() error {
	var errs []error
	if c.Loop.FPS <= 0 {
		errs = append(errs, fmt.Errorf("loop.fps must be positive, got %d", c.Loop.FPS))
	}
	if c.Loop.MaxRounds < 0 {
		errs = append(errs, fmt.Errorf("loop.max_rounds must not be negative, got %d", c.Loop.MaxRounds))
	}
	if c.Loop.Jitter < 0 || c.Loop.Jitter >= 1 {
		errs = append(errs, fmt.Errorf("loop.jitter must be in [0, 1), got %v", c.Loop.Jitter))
	}
	if c.Loop.ResolveTimeout < 0 {
		errs = append(errs, fmt.Errorf("loop.resolve_timeout must not be negative, got %d", c.Loop.ResolveTimeout))
	}
	if c.Table.Pockets < 2 {
		errs = append(errs, fmt.Errorf("table.pockets must be at least 2, got %d", c.Table.Pockets))
	}
	if c.Server.Enabled && c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required when the server is enabled"))
	}
	if c.Server.History <= 0 {
		errs = append(errs, fmt.Errorf("server.history must be positive, got %d", c.Server.History))
	}
	return errors.Join(errs...)
}
