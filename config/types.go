package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API         APIConfig       `mapstructure:"api"`
	Transport   TransportConfig `mapstructure:"transport"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Output      OutputConfig    `mapstructure:"output"`
	Metrics     MetricsConfig   `mapstructure:"metrics"`
	Filters     FilterConfig    `mapstructure:"filters"`
	Concurrency int             `mapstructure:"concurrency"`
}

// APIConfig holds osu! API connection details
type APIConfig struct {
	Key     string `mapstructure:"key"`
	BaseURL string `mapstructure:"base_url"`
}

// TransportConfig selects and tunes the HTTP backend
type TransportConfig struct {
	Backend         string        `mapstructure:"backend"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxConnsPerHost int           `mapstructure:"max_conns_per_host"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// OutputConfig controls how command results are printed
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// MetricsConfig controls the Prometheus textfile export
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// FilterConfig maps preset names to filter expressions
type FilterConfig map[string]string

// Backend names accepted by transport.backend.
const (
	BackendNetHTTP  = "nethttp"
	BackendFastHTTP = "fasthttp"
)

// Output formats accepted by output.format.
const (
	OutputTree = "tree"
	OutputJSON = "json"
)
