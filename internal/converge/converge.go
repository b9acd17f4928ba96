// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

// Package converge polls a condition until an external system reflects the
// state declared by a resource, or a deadline passes.
package converge

import (
	"context"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

const (
	DefaultInterval = 2 * time.Second
	DefaultTimeout  = 2 * time.Minute
)

// Options bounds a convergence wait.
type Options struct {
	// Settle is a fixed wait before the first check, for controllers that
	// are known to need some time before any change can be observed.
	Settle time.Duration

	// Interval between checks. Defaults to DefaultInterval.
	Interval time.Duration

	// Timeout for the polling phase, excluding Settle. Defaults to
	// DefaultTimeout.
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// ConditionFunc reports whether the awaited state has been observed. A
// non-nil error aborts the wait.
type ConditionFunc func(ctx context.Context) (bool, error)

// Bool adapts a fail-soft check, which never errors, to a ConditionFunc.
func Bool(check func(ctx context.Context) bool) ConditionFunc {
	return func(ctx context.Context) (bool, error) {
		return check(ctx), nil
	}
}

// Until sleeps for opts.Settle, then checks cond immediately and every
// opts.Interval until it returns true, returns an error, or opts.Timeout
// elapses.
func Until(ctx context.Context, opts Options, cond ConditionFunc) error {
	opts = opts.withDefaults()

	if opts.Settle > 0 {
		timer := time.NewTimer(opts.Settle)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	err := wait.PollUntilContextTimeout(ctx, opts.Interval, opts.Timeout, true, wait.ConditionWithContextFunc(cond))
	if err != nil && wait.Interrupted(err) {
		return fmt.Errorf("condition not met within %s: %w", opts.Timeout, err)
	}
	return err
}
