// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package ecrpublic

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecrpublic"
	"github.com/aws/aws-sdk-go-v2/service/ecrpublic/types"
	"github.com/go-logr/logr"

	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/converge"
	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/metrics"
)

const (
	opDescribeRepositories = "DescribeRepositories"
	opListTagsForResource  = "ListTagsForResource"
)

var errEmptyIdentifier = errors.New("empty identifier")

// Validator answers whether a repository exists and what it looks like,
// without ever failing. An empty result and a failed query are both
// reported as absent (nil); failures are logged at error level. Every call
// queries the API again.
type Validator struct {
	api API
	log logr.Logger
}

// NewValidator returns a Validator over api.
func NewValidator(api API, log logr.Logger) *Validator {
	return &Validator{
		api: api,
		log: log,
	}
}

// GetRepository returns the repository named name, or nil if it was not
// observed.
func (v *Validator) GetRepository(ctx context.Context, name string) *types.Repository {
	if name == "" {
		v.log.Error(errEmptyIdentifier, "Failed to describe repository", "repository", name)
		return nil
	}

	out, err := v.api.DescribeRepositories(ctx, &ecrpublic.DescribeRepositoriesInput{
		RepositoryNames: []string{name},
	})
	if err != nil {
		v.log.Error(err, "Failed to describe repository", "repository", name, "code", ErrorCode(err))
		metrics.RecordAPICall(opDescribeRepositories, resultFor(err))
		return nil
	}
	if len(out.Repositories) == 0 {
		metrics.RecordAPICall(opDescribeRepositories, metrics.ResultNotFound)
		return nil
	}
	metrics.RecordAPICall(opDescribeRepositories, metrics.ResultSuccess)
	repo := out.Repositories[0]
	return &repo
}

// RepositoryExists reports whether the repository named name was observed.
func (v *Validator) RepositoryExists(ctx context.Context, name string) bool {
	return v.GetRepository(ctx, name) != nil
}

// GetRepositoryTags returns the tags of the resource identified by arn, or
// nil if none were observed.
func (v *Validator) GetRepositoryTags(ctx context.Context, arn string) map[string]string {
	if arn == "" {
		v.log.Error(errEmptyIdentifier, "Failed to list tags", "arn", arn)
		return nil
	}

	out, err := v.api.ListTagsForResource(ctx, &ecrpublic.ListTagsForResourceInput{
		ResourceArn: aws.String(arn),
	})
	if err != nil {
		v.log.Error(err, "Failed to list tags", "arn", arn, "code", ErrorCode(err))
		metrics.RecordAPICall(opListTagsForResource, resultFor(err))
		return nil
	}
	if len(out.Tags) == 0 {
		metrics.RecordAPICall(opListTagsForResource, metrics.ResultNotFound)
		return nil
	}
	metrics.RecordAPICall(opListTagsForResource, metrics.ResultSuccess)
	return TagsToMap(out.Tags)
}

// WaitForRepository polls until the repository's existence equals exists.
func (v *Validator) WaitForRepository(ctx context.Context, name string, exists bool, opts converge.Options) error {
	err := converge.Until(ctx, opts, converge.Bool(func(ctx context.Context) bool {
		return v.RepositoryExists(ctx, name) == exists
	}))
	if err != nil {
		state := "exist"
		if !exists {
			state = "be deleted"
		}
		return fmt.Errorf("waiting for repository %q to %s: %w", name, state, err)
	}
	return nil
}

// WaitForRepositoryTags polls until match accepts the observed tags of arn
// and returns them. match receives nil while no tags are observed.
func (v *Validator) WaitForRepositoryTags(ctx context.Context, arn string,
	match func(map[string]string) bool, opts converge.Options) (map[string]string, error) {
	var tags map[string]string
	err := converge.Until(ctx, opts, converge.Bool(func(ctx context.Context) bool {
		tags = v.GetRepositoryTags(ctx, arn)
		return match(tags)
	}))
	if err != nil {
		return tags, fmt.Errorf("waiting for tags of %q (last observed %v): %w", arn, tags, err)
	}
	return tags, nil
}

func resultFor(err error) string {
	if IsRepositoryNotFound(err) {
		return metrics.ResultNotFound
	}
	return metrics.ResultError
}
