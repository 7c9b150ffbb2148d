package config

import (
	"github.com/kelseyhightower/envconfig"
)

const DefaultContributionMultiplier = 0.00411817

var singleConfig *Config = nil

type Config struct {
	Service *svcConfig
}

type svcConfig struct {
	Address                string    `envconfig:"TAX_ESTIMATOR_ADDRESS" default:":3443"`
	MetricsAddress         string    `envconfig:"TAX_ESTIMATOR_METRICS_ADDRESS" default:":8080"`
	LogLevel               string    `envconfig:"TAX_ESTIMATOR_LOG_LEVEL" default:"info"`
	LogFormat              string    `envconfig:"TAX_ESTIMATOR_LOG_FORMAT" default:"console"`
	BracketsFile           string    `envconfig:"TAX_ESTIMATOR_BRACKETS_FILE" default:""`
	CatalogFile            string    `envconfig:"TAX_ESTIMATOR_CATALOG_FILE" default:""`
	ContributionMultiplier float64   `envconfig:"TAX_ESTIMATOR_CONTRIBUTION_MULTIPLIER" default:"0.00411817"`
	AllowedOrigins         []string  `envconfig:"TAX_ESTIMATOR_ALLOWED_ORIGINS" default:"*"`
	LatencyBuckets         []float64 `envconfig:"CHI_PROMETHEUS_LATENCY_BUCKETS" default:""`
}

// New processes the environment once and returns the same Config on every later call.
func New() (*Config, error) {
	if singleConfig == nil {
		cfg := new(Config)
		if err := envconfig.Process("", cfg); err != nil {
			return nil, err
		}
		singleConfig = cfg
	}
	return singleConfig, nil
}

// Load processes the environment without touching the cached Config.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewDefault returns a Config holding the default of every setting, ignoring the environment.
func NewDefault() *Config {
	return &Config{
		Service: &svcConfig{
			Address:                ":3443",
			MetricsAddress:         ":8080",
			LogLevel:               "info",
			LogFormat:              "console",
			ContributionMultiplier: DefaultContributionMultiplier,
			AllowedOrigins:         []string{"*"},
		},
	}
}
