package config

import "github.com/babarot/rr/internal/batch"

// NewDefaultConfig returns the configuration used when no file is given
func NewDefaultConfig() Config {
	return Config{
		Core: Core{
			Root:        batch.DefaultRoot,
			CrossDevice: true,
			Verbose:     false,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "debug",
			Format:  "text",
			Rotation: RotationConfig{
				MaxSize:  "10MB",
				MaxFiles: 3,
			},
		},
	}
}
