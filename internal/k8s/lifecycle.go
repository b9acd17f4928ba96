// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package k8s

import (
	"context"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/conditions"
	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/converge"
)

// Lifecycle creates, observes, patches and deletes custom resources that a
// controller under test reconciles. Waits use the configured
// converge.Options.
type Lifecycle struct {
	client client.Client
	log    logr.Logger
	opts   converge.Options
}

// NewLifecycle returns a Lifecycle over c.
func NewLifecycle(c client.Client, log logr.Logger, opts converge.Options) *Lifecycle {
	return &Lifecycle{
		client: c,
		log:    log,
		opts:   opts,
	}
}

// WithOptions returns a copy of l that waits with opts.
func (l *Lifecycle) WithOptions(opts converge.Options) *Lifecycle {
	c := *l
	c.opts = opts
	return &c
}

// Create creates the resource from data, a full manifest. Name, namespace
// and GroupVersionKind are taken from ref.
func (l *Lifecycle) Create(ctx context.Context, ref Reference, data map[string]any) (*unstructured.Unstructured, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", ref, err)
	}
	obj := &unstructured.Unstructured{}
	if err := json.Unmarshal(raw, &obj.Object); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ref, err)
	}
	obj.SetGroupVersionKind(ref.GroupVersionKind())
	obj.SetName(ref.Name)
	obj.SetNamespace(ref.Namespace)
	if err := l.client.Create(ctx, obj); err != nil {
		return nil, fmt.Errorf("creating %s: %w", ref, err)
	}
	l.log.V(1).Info("Created resource", "ref", ref.String())
	return obj, nil
}

// Get returns the live resource.
func (l *Lifecycle) Get(ctx context.Context, ref Reference) (*unstructured.Unstructured, error) {
	obj := &unstructured.Unstructured{}
	obj.SetGroupVersionKind(ref.GroupVersionKind())
	if err := l.client.Get(ctx, ref.Key(), obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// Exists reports whether the resource is present. Errors other than
// NotFound are logged and reported as absent.
func (l *Lifecycle) Exists(ctx context.Context, ref Reference) bool {
	_, err := l.Get(ctx, ref)
	if err != nil && !apierrors.IsNotFound(err) {
		l.log.Error(err, "Failed to get resource", "ref", ref.String())
	}
	return err == nil
}

// WaitConsumedByController waits until the controller has written a status
// to the resource and returns it.
func (l *Lifecycle) WaitConsumedByController(ctx context.Context, ref Reference) (*unstructured.Unstructured, error) {
	var obj *unstructured.Unstructured
	err := converge.Until(ctx, l.opts, func(ctx context.Context) (bool, error) {
		var err error
		obj, err = l.Get(ctx, ref)
		if apierrors.IsNotFound(err) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		status, _, _ := unstructured.NestedMap(obj.Object, "status")
		return len(status) > 0, nil
	})
	if err != nil {
		return nil, fmt.Errorf("waiting for %s to be consumed by the controller: %w", ref, err)
	}
	return obj, nil
}

// WaitOnCondition waits until the resource carries a status condition of
// condType with the given status and returns it.
func (l *Lifecycle) WaitOnCondition(ctx context.Context, ref Reference,
	condType string, status corev1.ConditionStatus) (*unstructured.Unstructured, error) {
	var obj *unstructured.Unstructured
	err := converge.Until(ctx, l.opts, func(ctx context.Context) (bool, error) {
		var err error
		obj, err = l.Get(ctx, ref)
		if apierrors.IsNotFound(err) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return conditions.Has(conditions.FromUnstructured(obj), condType, status), nil
	})
	if err != nil {
		return nil, fmt.Errorf("waiting for %s condition %s=%s: %w", ref, condType, status, err)
	}
	return obj, nil
}

// Patch applies patch to the resource as a JSON merge patch and returns the
// resource as stored by the API server. Lists in patch replace the stored
// lists entirely.
func (l *Lifecycle) Patch(ctx context.Context, ref Reference, patch map[string]any) (*unstructured.Unstructured, error) {
	current, err := l.Get(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("getting %s for patch: %w", ref, err)
	}

	currentJSON, err := json.Marshal(current.Object)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", ref, err)
	}
	patchJSON, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("encoding patch for %s: %w", ref, err)
	}
	desiredJSON, err := jsonpatch.MergePatch(currentJSON, patchJSON)
	if err != nil {
		return nil, fmt.Errorf("applying patch to %s: %w", ref, err)
	}

	desired := &unstructured.Unstructured{}
	if err := desired.UnmarshalJSON(desiredJSON); err != nil {
		return nil, fmt.Errorf("decoding patched %s: %w", ref, err)
	}
	if err := l.client.Patch(ctx, desired, client.MergeFrom(current)); err != nil {
		return nil, fmt.Errorf("patching %s: %w", ref, err)
	}
	l.log.V(1).Info("Patched resource", "ref", ref.String(), "generation", desired.GetGeneration())
	return desired, nil
}

// Delete deletes the resource and waits until it is gone. It reports false
// with an error if the resource is still present when the wait ends.
func (l *Lifecycle) Delete(ctx context.Context, ref Reference) (bool, error) {
	obj := &unstructured.Unstructured{}
	obj.SetGroupVersionKind(ref.GroupVersionKind())
	obj.SetName(ref.Name)
	obj.SetNamespace(ref.Namespace)
	if err := l.client.Delete(ctx, obj); err != nil {
		if apierrors.IsNotFound(err) {
			return true, nil
		}
		return false, fmt.Errorf("deleting %s: %w", ref, err)
	}

	err := converge.Until(ctx, l.opts, converge.Bool(func(ctx context.Context) bool {
		return !l.Exists(ctx, ref)
	}))
	if err != nil {
		return false, fmt.Errorf("waiting for %s to be deleted: %w", ref, err)
	}
	l.log.V(1).Info("Deleted resource", "ref", ref.String())
	return true, nil
}
