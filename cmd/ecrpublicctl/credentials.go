// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/ecrpublic"
)

// newAPI is replaced in tests.
var newAPI ecrpublic.ClientFactory = ecrpublic.NewClient

// loadClientConfig reads AWS credentials from a KEY=VALUE file (if
// specified) with fallback to environment variables. Credentials are
// optional as a pair: when both are absent the AWS default credential chain
// is used.
func loadClientConfig(flags *globalFlags) (ecrpublic.ClientConfig, error) {
	values := make(map[string]string)
	if flags.credentialsFile != "" {
		data, err := os.ReadFile(flags.credentialsFile)
		if err != nil {
			return ecrpublic.ClientConfig{}, fmt.Errorf("reading credentials file: %w", err)
		}
		for line := range strings.SplitSeq(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			values[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	lookup := func(key string) string {
		if v := values[key]; v != "" {
			return v
		}
		return os.Getenv(key)
	}

	cfg := ecrpublic.ClientConfig{
		Region:          flags.region,
		AccessKeyID:     lookup("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: lookup("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    lookup("AWS_SESSION_TOKEN"),
		Endpoint:        flags.endpoint,
	}
	if cfg.Region == "" {
		cfg.Region = lookup("AWS_REGION")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = lookup("ECRPUBLIC_ENDPOINT")
	}

	if (cfg.AccessKeyID == "") != (cfg.SecretAccessKey == "") {
		return ecrpublic.ClientConfig{}, fmt.Errorf(
			"AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be provided together via --credentials-file or environment variables")
	}

	return cfg, nil
}

// newValidator loads credentials and creates a Validator logging through
// the controller-runtime logger.
func newValidator(ctx context.Context, flags *globalFlags) (*ecrpublic.Validator, error) {
	cfg, err := loadClientConfig(flags)
	if err != nil {
		return nil, err
	}
	api, err := newAPI(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return ecrpublic.NewValidator(api, ctrl.Log.WithName("ecrpublic")), nil
}
