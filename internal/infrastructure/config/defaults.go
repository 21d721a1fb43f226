package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "shipwright.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "shipwright"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "shipwright"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.BusyTimeout == 0 {
		cfg.Database.BusyTimeout = 5 * time.Second
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9464
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Simulation defaults
	if cfg.Simulation.TickStep == 0 {
		cfg.Simulation.TickStep = time.Minute
	}
	if cfg.Simulation.Speed == 0 {
		cfg.Simulation.Speed = 60
	}
	if cfg.Simulation.DailyCrewCost == 0 {
		cfg.Simulation.DailyCrewCost = 10
	}
	if cfg.Simulation.StartingCredits == 0 {
		cfg.Simulation.StartingCredits = 10000
	}

	// Authority defaults
	if cfg.Authority.Listen == "" {
		cfg.Authority.Listen = "localhost:50061"
	}
	if cfg.Authority.Address == "" {
		cfg.Authority.Address = "localhost:50061"
	}
	if cfg.Authority.Timeout == 0 {
		cfg.Authority.Timeout = 10 * time.Second
	}
}
