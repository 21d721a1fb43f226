package config

// MetricsConfig controls the Prometheus endpoint of simulate and authority serve
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	Port int `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Bind address, localhost unless set
	Host string `mapstructure:"host"`

	// Endpoint path, must start with a slash
	Path string `mapstructure:"path" validate:"urlpath"`
}
