package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// Default returns the hardcoded configuration. It matches the embedded
// defaults/engine.yaml.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			FrameTimeMS: 33,
			StepEvery:   10,
			MaxTicks:    0,
		},
		Camera: CameraConfig{
			Eye: []float64{0, 2, 4},
			At:  []float64{0, 0, 0},
			Up:  []float64{0, 1, 0},
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Storage: StorageConfig{
			Path: "~/.polygove/runs.db",
		},
		Render: RenderConfig{
			Width:  80,
			Height: 24,
			FOV:    60,
			Near:   0.1,
			Far:    100,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultEngineYAML
}
