// Package config provides YAML-based engine configuration loading with an
// embedded default.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/polygove/internal/core"
	"github.com/vovakirdan/polygove/internal/world"
)

// Config is the full engine configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Camera  CameraConfig  `yaml:"camera"`
	Logging LoggingConfig `yaml:"logging"`
	Storage StorageConfig `yaml:"storage"`
	Render  RenderConfig  `yaml:"render"`
}

// EngineConfig defines loop pacing.
type EngineConfig struct {
	FrameTimeMS int `yaml:"frame_time_ms"`
	StepEvery   int `yaml:"step_every"`
	MaxTicks    int `yaml:"max_ticks"` // 0 = run until game over
}

// CameraConfig defines the initial camera.
type CameraConfig struct {
	Eye []float64 `yaml:"eye"`
	At  []float64 `yaml:"at"`
	Up  []float64 `yaml:"up"`
}

// LoggingConfig defines log level and an optional rotating log file.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"` // empty logs to stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// StorageConfig defines where run summaries are kept.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// RenderConfig defines the terminal viewport and projection.
type RenderConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	FOV    float64 `yaml:"fov"` // vertical, degrees
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
	Boxes  bool    `yaml:"boxes"` // draw bounding box corners
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Engine.FrameTimeMS <= 0 {
		return fmt.Errorf("config: engine.frame_time_ms must be positive, got %d", c.Engine.FrameTimeMS)
	}
	if c.Engine.StepEvery <= 0 {
		return fmt.Errorf("config: engine.step_every must be positive, got %d", c.Engine.StepEvery)
	}
	if c.Engine.MaxTicks < 0 {
		return fmt.Errorf("config: engine.max_ticks must not be negative, got %d", c.Engine.MaxTicks)
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: logging.level: %w", err)
	}
	if c.Render.Near <= 0 || c.Render.Far <= c.Render.Near {
		return fmt.Errorf("config: render near/far must satisfy 0 < near < far, got %g/%g", c.Render.Near, c.Render.Far)
	}
	if c.Render.FOV <= 0 || c.Render.FOV >= 180 {
		return fmt.Errorf("config: render.fov must be in (0, 180), got %g", c.Render.FOV)
	}
	for name, v := range map[string][]float64{"eye": c.Camera.Eye, "at": c.Camera.At, "up": c.Camera.Up} {
		if len(v) != 0 && len(v) != 3 {
			return fmt.Errorf("config: camera.%s needs 3 components, got %d", name, len(v))
		}
	}
	if up := core.VectorFromSlice(c.Camera.Up); len(c.Camera.Up) == 3 && up.IsZero() {
		return errors.New("config: camera.up must not be zero")
	}
	return nil
}

// Runtime converts the engine and render sections to loop settings.
func (c Config) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		FrameTime: time.Duration(c.Engine.FrameTimeMS) * time.Millisecond,
		StepEvery: c.Engine.StepEvery,
		MaxTicks:  c.Engine.MaxTicks,
		ScreenW:   c.Render.Width,
		ScreenH:   c.Render.Height,
	}.Normalize()
}

// InitialCamera converts the camera section. Missing vectors fall back to
// the default camera.
func (c Config) InitialCamera() world.Camera {
	cam := world.DefaultCamera()
	if len(c.Camera.Eye) == 3 {
		cam.Eye = core.VectorFromSlice(c.Camera.Eye)
	}
	if len(c.Camera.At) == 3 {
		cam.At = core.VectorFromSlice(c.Camera.At)
	}
	if len(c.Camera.Up) == 3 {
		cam.Up = core.VectorFromSlice(c.Camera.Up)
	}
	return cam
}
