// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/ecrpublic"
	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/metrics"
)

func newRepositoryWatchCmd(flags *globalFlags) *cobra.Command {
	var (
		names       []string
		schedule    string
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check repositories on a schedule and serve the results as Prometheus metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newValidator(cmd.Context(), flags)
			if err != nil {
				return err
			}
			log := ctrl.Log.WithName("watch")
			w := &watcher{validator: v, names: names, log: log}
			return w.run(cmd.Context(), schedule, metricsAddr)
		},
	}
	cmd.Flags().StringSliceVar(&names, "name", nil, "repository names to watch")
	cmd.Flags().StringVar(&schedule, "schedule", "@every 30s", "cron schedule of the checks")
	cmd.Flags().StringVar(&metricsAddr, "metrics-bind-address", ":8080",
		"address the metrics endpoint binds to, or 0 to disable")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))
	return cmd
}

// watcher records the existence of a set of repositories.
type watcher struct {
	validator *ecrpublic.Validator
	names     []string
	log       logr.Logger
}

// check observes every repository once.
func (w *watcher) check(ctx context.Context) {
	for _, name := range w.names {
		exists := w.validator.RepositoryExists(ctx, name)
		metrics.RecordRepositoryExists(name, exists)
		w.log.V(1).Info("Checked repository", "repository", name, "exists", exists)
	}
}

// run checks on schedule until ctx is done. Runs are never concurrent: a
// run still in progress when the next is due causes that one to be skipped.
func (w *watcher) run(ctx context.Context, schedule, metricsAddr string) error {
	c := cron.New(
		cron.WithLogger(w.log),
		cron.WithChain(cron.Recover(w.log), cron.SkipIfStillRunning(w.log)),
	)
	if _, err := c.AddFunc(schedule, func() { w.check(ctx) }); err != nil {
		return fmt.Errorf("parsing cron schedule: %w", err)
	}

	var server *http.Server
	errCh := make(chan error, 1)
	if metricsAddr != "0" {
		server = newMetricsServer(metricsAddr)
		go func() {
			w.log.Info("Starting metrics server", "addr", metricsAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	w.check(ctx)
	c.Start()

	var err error
	select {
	case <-ctx.Done():
	case err = <-errCh:
		err = fmt.Errorf("metrics server failed: %w", err)
	}

	<-c.Stop().Done()
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
	return err
}

func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
