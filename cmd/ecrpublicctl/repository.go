// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"

	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/converge"
)

func newRepositoryCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repository",
		Aliases: []string{"repo"},
		Short:   "Inspect ECR Public repositories",
	}
	cmd.AddCommand(
		newRepositoryGetCmd(flags),
		newRepositoryExistsCmd(flags),
		newRepositoryTagsCmd(flags),
		newRepositoryWaitCmd(flags),
		newRepositoryWatchCmd(flags),
	)
	return cmd
}

func newRepositoryGetCmd(flags *globalFlags) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Describe a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newValidator(cmd.Context(), flags)
			if err != nil {
				return err
			}
			repo := v.GetRepository(cmd.Context(), name)
			if repo == nil {
				return fmt.Errorf("repository %q not found", name)
			}
			return printJSON(cmd.OutOrStdout(), newRepositoryOutput(repo))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "repository name")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))
	return cmd
}

func newRepositoryExistsCmd(flags *globalFlags) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "exists",
		Short: "Report whether a repository exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newValidator(cmd.Context(), flags)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]bool{"exists": v.RepositoryExists(cmd.Context(), name)})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "repository name")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))
	return cmd
}

func newRepositoryTagsCmd(flags *globalFlags) *cobra.Command {
	var name, arn string
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the tags of a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newValidator(cmd.Context(), flags)
			if err != nil {
				return err
			}
			if arn == "" {
				repo := v.GetRepository(cmd.Context(), name)
				if repo == nil {
					return fmt.Errorf("repository %q not found", name)
				}
				arn = aws.ToString(repo.RepositoryArn)
			}
			tags := v.GetRepositoryTags(cmd.Context(), arn)
			if tags == nil {
				tags = map[string]string{}
			}
			return printJSON(cmd.OutOrStdout(), tags)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "repository name")
	cmd.Flags().StringVar(&arn, "arn", "", "repository ARN")
	cmd.MarkFlagsOneRequired("name", "arn")
	cmd.MarkFlagsMutuallyExclusive("name", "arn")
	return cmd
}

func newRepositoryWaitCmd(flags *globalFlags) *cobra.Command {
	var (
		name   string
		absent bool
		opts   converge.Options
	)
	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Wait until a repository exists, or is deleted with --absent",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newValidator(cmd.Context(), flags)
			if err != nil {
				return err
			}
			return v.WaitForRepository(cmd.Context(), name, !absent, opts)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "repository name")
	cmd.Flags().BoolVar(&absent, "absent", false, "wait for the repository to be deleted")
	cmd.Flags().DurationVar(&opts.Settle, "settle", 0, "fixed wait before the first check")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 5*time.Second, "interval between checks")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", converge.DefaultTimeout, "how long to wait")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))
	return cmd
}
