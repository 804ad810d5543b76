// Package config defines the explicit application configuration, constructed
// once at process start and passed by reference to the components that need
// it. Nothing reads configuration as ambient global state.
package config

import (
	"time"
)

// DB holds the relational store connection settings.
type DB struct {
	Url string `envconfig:"URL"`
}

// Jwt holds token-signing settings.
type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"1h"`
}

// Auth groups authentication settings.
type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

// RateLimit bounds request rates at the HTTP boundary.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Log configures the process logger.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[finance]"`
}

// Server configures the HTTP listener.
type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// Alerts holds the tunable analysis thresholds: the month-over-month
// variation (percent) above which a category increase is flagged, and the
// margin applied on top of historical averages when suggesting budgets.
type Alerts struct {
	IncreaseThreshold float64 `envconfig:"INCREASE_THRESHOLD" default:"20"`
	SuggestionMargin  float64 `envconfig:"SUGGESTION_MARGIN" default:"10"`
}

// App is the root configuration.
type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Alerts    *Alerts    `envconfig:"ALERTS"`
}
