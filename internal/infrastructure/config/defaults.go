package config

// SetDefaults sets default values for all configuration fields.
func SetDefaults(cfg *Config) {
	// Queue defaults
	if cfg.Queue.Host == "" {
		cfg.Queue.Host = "localhost"
	}
	if cfg.Queue.Port == 0 {
		cfg.Queue.Port = 5672
	}
	if cfg.Queue.User == "" {
		cfg.Queue.User = "guest"
	}
	if cfg.Queue.Pass == "" {
		cfg.Queue.Pass = "guest"
	}
	if cfg.Queue.InputQueue == "" {
		cfg.Queue.InputQueue = "optimization_requests"
	}
	if cfg.Queue.OutputQueue == "" {
		cfg.Queue.OutputQueue = "optimization_responses"
	}
	if cfg.Queue.PrefetchCount == 0 {
		cfg.Queue.PrefetchCount = 1
	}

	// Solver defaults
	if len(cfg.Solver.Backends) == 0 {
		cfg.Solver.Backends = []string{"highs"}
	}
	if cfg.Solver.TimeoutSeconds == 0 {
		cfg.Solver.TimeoutSeconds = 30
	}
	if cfg.Solver.MIPGap == 0 {
		cfg.Solver.MIPGap = 0.001
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Logging.Rotation.MaxSize == 0 {
		cfg.Logging.Rotation.MaxSize = 100 // MB
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAge == 0 {
		cfg.Logging.Rotation.MaxAge = 28 // days
	}

	// Metrics defaults
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
