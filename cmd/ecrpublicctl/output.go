// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	"encoding/json"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecrpublic/types"
)

// repositoryOutput provides clean camelCase JSON serialization for
// repositories.
type repositoryOutput struct {
	Name       string     `json:"name"`
	ARN        string     `json:"arn"`
	URI        string     `json:"uri,omitempty"`
	RegistryID string     `json:"registryId,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

func newRepositoryOutput(r *types.Repository) repositoryOutput {
	return repositoryOutput{
		Name:       aws.ToString(r.RepositoryName),
		ARN:        aws.ToString(r.RepositoryArn),
		URI:        aws.ToString(r.RepositoryUri),
		RegistryID: aws.ToString(r.RegistryId),
		CreatedAt:  r.CreatedAt,
	}
}

// printJSON writes v as indented JSON to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
