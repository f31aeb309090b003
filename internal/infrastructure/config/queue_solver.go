package config

// QueueConfig holds the AMQP broker connection and queue topology.
type QueueConfig struct {
	Host          string `mapstructure:"host" validate:"required"`
	Port          int    `mapstructure:"port" validate:"min=1,max=65535"`
	User          string `mapstructure:"user"`
	Pass          string `mapstructure:"pass"`
	InputQueue    string `mapstructure:"input_queue" validate:"required"`
	OutputQueue   string `mapstructure:"output_queue" validate:"required"`
	PrefetchCount int    `mapstructure:"prefetch_count" validate:"min=1"`
}

// SolverConfig holds the backend selection and stopping criteria for the
// MILP solve stage.
type SolverConfig struct {
	Backends       []string `mapstructure:"backends" validate:"required,min=1"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" validate:"min=0"`
	MIPGap         float64  `mapstructure:"mip_gap" validate:"min=0"`
}
