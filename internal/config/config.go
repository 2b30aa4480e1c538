package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int     `envconfig:"PORT" default:"8080"`
	SessionSecret  string  `envconfig:"SESSION_SECRET" default:"dev-secret-change-in-production"`
	SnapThreshold  float64 `envconfig:"SNAP_THRESHOLD" default:"5"`
	CanvasWidth    float64 `envconfig:"CANVAS_WIDTH" default:"1080"`
	CanvasHeight   float64 `envconfig:"CANVAS_HEIGHT" default:"1080"`
	AllowedOrigins string  `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
