package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures process-level configuration for the registration server.
type Server struct {
	Addr            string        `env:"REGISTRATION_ADDR"             envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"REGISTRATION_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogFormat       string        `env:"REGISTRATION_LOG_FORMAT"       envDefault:"json"`
	LogLevel        string        `env:"REGISTRATION_LOG_LEVEL"        envDefault:"info"`

	Registration Registration
}

// Registration holds the settings of the registration engine itself.
type Registration struct {
	MinimumAge    int `env:"REGISTRATION_MINIMUM_AGE"     envDefault:"12"`
	BirthYearSpan int `env:"REGISTRATION_BIRTH_YEAR_SPAN" envDefault:"100"`
	// StrictInvariants turns invariant repairs into panics. Leave off in production.
	StrictInvariants bool `env:"REGISTRATION_STRICT_INVARIANTS" envDefault:"false"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (s Server) Validate() error {
	if s.Registration.MinimumAge <= 0 {
		return fmt.Errorf("REGISTRATION_MINIMUM_AGE must be positive, got %d", s.Registration.MinimumAge)
	}
	if s.Registration.BirthYearSpan <= s.Registration.MinimumAge {
		return fmt.Errorf("REGISTRATION_BIRTH_YEAR_SPAN (%d) must exceed REGISTRATION_MINIMUM_AGE (%d)",
			s.Registration.BirthYearSpan, s.Registration.MinimumAge)
	}
	switch strings.ToLower(s.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("REGISTRATION_LOG_FORMAT must be json or text, got %q", s.LogFormat)
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("REGISTRATION_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
