// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	"github.com/spf13/cobra"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/ecrpublic"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	credentialsFile string
	region          string
	endpoint        string
	debug           bool
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:           "ecrpublicctl",
		Short:         "CLI for inspecting ECR Public state managed by the ECR Public controller",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctrl.SetLogger(zap.New(zap.WriteTo(cmd.ErrOrStderr()), zap.UseDevMode(flags.debug)))
		},
	}

	cmd.PersistentFlags().StringVar(&flags.credentialsFile, "credentials-file", "",
		"path to credentials file (KEY=VALUE format with AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY)")
	cmd.PersistentFlags().StringVar(&flags.region, "region", "",
		"AWS region (defaults to AWS_REGION or "+ecrpublic.DefaultRegion+")")
	cmd.PersistentFlags().StringVar(&flags.endpoint, "endpoint", "",
		"override the ECR Public API endpoint")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newRepositoryCmd(&flags))

	return cmd
}
