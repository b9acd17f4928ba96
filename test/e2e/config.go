// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

// Package e2e exercises the ECR Public controller against a live cluster
// and the real ECR Public API. The suite only builds with the e2e tag.
package e2e

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/ecrpublic"
)

const (
	defaultNamespace            = "default"
	defaultWait                 = 10 * time.Second
	defaultTimeout              = 2 * time.Minute
	defaultControllerDeployment = "ack-ecrpublic-controller"
	defaultControllerNamespace  = "ack-system"
)

// Config is the suite configuration, read from the environment.
type Config struct {
	Region    string
	Endpoint  string
	Namespace string

	// CreateWait, UpdateWait and DeleteWait are the minimum time given to
	// the controller after each change before its effect is checked.
	CreateWait time.Duration
	UpdateWait time.Duration
	DeleteWait time.Duration

	// Timeout bounds every convergence wait after the minimum wait.
	Timeout time.Duration

	// MinControllerVersion, when set, is checked against the image tag of
	// the controller Deployment before the suite starts.
	MinControllerVersion *semver.Version
	ControllerNamespace  string
	ControllerDeployment string
}

// LoadConfig reads the configuration through getenv, usually os.Getenv.
func LoadConfig(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Region:               ecrpublic.DefaultRegion,
		Endpoint:             getenv("ECRPUBLIC_ENDPOINT"),
		Namespace:            defaultNamespace,
		ControllerNamespace:  defaultControllerNamespace,
		ControllerDeployment: defaultControllerDeployment,
	}
	if v := getenv("AWS_REGION"); v != "" {
		cfg.Region = v
	}
	if v := getenv("E2E_NAMESPACE"); v != "" {
		cfg.Namespace = v
	}
	if v := getenv("E2E_CONTROLLER_NAMESPACE"); v != "" {
		cfg.ControllerNamespace = v
	}
	if v := getenv("E2E_CONTROLLER_DEPLOYMENT"); v != "" {
		cfg.ControllerDeployment = v
	}

	for _, d := range []struct {
		key string
		dst *time.Duration
		def time.Duration
	}{
		{"E2E_CREATE_WAIT", &cfg.CreateWait, defaultWait},
		{"E2E_UPDATE_WAIT", &cfg.UpdateWait, defaultWait},
		{"E2E_DELETE_WAIT", &cfg.DeleteWait, defaultWait},
		{"E2E_TIMEOUT", &cfg.Timeout, defaultTimeout},
	} {
		*d.dst = d.def
		v := getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		if parsed < 0 {
			return nil, fmt.Errorf("invalid %s: %q is negative", d.key, v)
		}
		*d.dst = parsed
	}

	if v := getenv("E2E_MIN_CONTROLLER_VERSION"); v != "" {
		minVersion, err := semver.NewVersion(v)
		if err != nil {
			return nil, fmt.Errorf("invalid E2E_MIN_CONTROLLER_VERSION: %w", err)
		}
		cfg.MinControllerVersion = minVersion
	}

	return cfg, nil
}
