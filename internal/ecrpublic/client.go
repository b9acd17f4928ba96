// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package ecrpublic

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ecrpublic"
	"github.com/aws/aws-sdk-go-v2/service/ecrpublic/types"
	"github.com/aws/smithy-go"
)

// DefaultRegion is the only region serving the ECR Public API.
const DefaultRegion = "us-east-1"

// ClientConfig holds what is needed to reach the ECR Public API. Empty
// credentials fall back to the AWS default credential chain.
type ClientConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// Endpoint overrides the service endpoint, e.g. for a local emulator.
	Endpoint string

	// MaxAttempts caps SDK retries. Zero keeps the SDK default.
	MaxAttempts int
}

// API is the read-only subset of the ECR Public API used to observe
// repository state. *ecrpublic.Client satisfies it.
type API interface {
	DescribeRepositories(
		ctx context.Context, params *ecrpublic.DescribeRepositoriesInput, optFns ...func(*ecrpublic.Options),
	) (*ecrpublic.DescribeRepositoriesOutput, error)
	ListTagsForResource(
		ctx context.Context, params *ecrpublic.ListTagsForResourceInput, optFns ...func(*ecrpublic.Options),
	) (*ecrpublic.ListTagsForResourceOutput, error)
}

// ClientFactory creates an API client from a ClientConfig.
type ClientFactory func(ctx context.Context, cfg ClientConfig) (API, error)

// NewClient creates an API client backed by the AWS SDK.
func NewClient(ctx context.Context, cfg ClientConfig) (API, error) {
	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}
	if cfg.MaxAttempts > 0 {
		opts = append(opts, config.WithRetryMaxAttempts(cfg.MaxAttempts))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return ecrpublic.NewFromConfig(awsCfg, func(o *ecrpublic.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// IsRepositoryNotFound reports whether the error says the repository does
// not exist.
func IsRepositoryNotFound(err error) bool {
	var notFound *types.RepositoryNotFoundException
	return errors.As(err, &notFound)
}

// ErrorCode returns the API error code carried by err, or "" if err did not
// come from the API.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// TagsToMap converts SDK tags to a map. Tags without a key are skipped.
func TagsToMap(tags []types.Tag) map[string]string {
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		if t.Key == nil {
			continue
		}
		m[*t.Key] = aws.ToString(t.Value)
	}
	return m
}

// TagsFromMap converts a map to SDK tags.
func TagsFromMap(m map[string]string) []types.Tag {
	tags := make([]types.Tag, 0, len(m))
	for k, v := range m {
		tags = append(tags, types.Tag{
			Key:   aws.String(k),
			Value: aws.String(v),
		})
	}
	return tags
}
