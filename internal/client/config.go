package client

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"sigs.k8s.io/yaml"
)

// Config holds the information needed to connect to a tax-estimator API server
type Config struct {
	Service Service `json:"service"`
}

// Service describes how to reach the tax-estimator API server.
type Service struct {
	// Server is the URL of the tax-estimator API server (the part before /api/v1/...).
	Server string `json:"server"`
	// Timeout bounds every request, e.g. "10s". Empty means the client default.
	Timeout string `json:"timeout,omitempty"`
}

// DefaultClientConfigPath returns the default path to the client config file.
func DefaultClientConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".taxctl", "client.yaml")
}

func ParseConfigFile(filename string) (*Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	config := &Config{}
	if err := yaml.UnmarshalStrict(contents, config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// NewFromConfig returns a new EstimatorClient from the given config.
func NewFromConfig(config *Config) (*EstimatorClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	var timeout time.Duration
	if config.Service.Timeout != "" {
		timeout, _ = time.ParseDuration(config.Service.Timeout)
	}
	return NewEstimatorClient(config.Service.Server, timeout), nil
}

func (c *Config) Validate() error {
	validationErrors := validateService(c.Service)
	if len(validationErrors) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(validationErrors...))
	}
	return nil
}

func validateService(service Service) []error {
	validationErrors := make([]error, 0)
	// Make sure the server is specified and well-formed
	if len(service.Server) == 0 {
		validationErrors = append(validationErrors, fmt.Errorf("no server found"))
	} else {
		u, err := url.Parse(service.Server)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Errorf("invalid server format %q: %w", service.Server, err))
		}
		if err == nil && len(u.Hostname()) == 0 {
			validationErrors = append(validationErrors, fmt.Errorf("invalid server format %q: no hostname", service.Server))
		}
	}
	if service.Timeout != "" {
		if d, err := time.ParseDuration(service.Timeout); err != nil || d < 0 {
			validationErrors = append(validationErrors, fmt.Errorf("invalid timeout %q", service.Timeout))
		}
	}
	return validationErrors
}
