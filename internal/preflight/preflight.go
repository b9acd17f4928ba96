// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

// Package preflight verifies that a cluster can run the end-to-end suite.
package preflight

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	appsv1 "k8s.io/api/apps/v1"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/matheuscscp/ecrpublic-controller-e2e/api/v1alpha1"
)

// Option configures the preflight checks.
type Option func(*options)

type options struct {
	crdName    string
	crdVersion string

	controllerNamespace  string
	controllerDeployment string
	minControllerVersion *semver.Version
}

// WithCRD sets the CustomResourceDefinition that must be installed and
// serve version. Defaults to the Repository CRD at v1alpha1.
func WithCRD(name, version string) Option {
	return func(opts *options) {
		opts.crdName = name
		opts.crdVersion = version
	}
}

// WithMinControllerVersion requires the image tag of the controller
// Deployment to be a semantic version not lower than minVersion.
func WithMinControllerVersion(namespace, deployment string, minVersion *semver.Version) Option {
	return func(opts *options) {
		opts.controllerNamespace = namespace
		opts.controllerDeployment = deployment
		opts.minControllerVersion = minVersion
	}
}

// Checks runs the configured checks against the cluster. The reader must
// know the apiextensions/v1 and apps/v1 types.
func Checks(ctx context.Context, c client.Reader, opts ...Option) error {
	o := options{
		crdName:    v1alpha1.CRDRepository,
		crdVersion: v1alpha1.Version,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkCRD(ctx, c, o.crdName, o.crdVersion); err != nil {
		return err
	}

	if o.minControllerVersion != nil {
		if err := checkControllerVersion(ctx, c, o); err != nil {
			return err
		}
	}

	return nil
}

func checkCRD(ctx context.Context, c client.Reader, name, version string) error {
	var crd apiextensionsv1.CustomResourceDefinition
	if err := c.Get(ctx, types.NamespacedName{Name: name}, &crd); err != nil {
		return fmt.Errorf("failed to get CRD %s: %w", name, err)
	}
	for _, v := range crd.Spec.Versions {
		if v.Name == version {
			if !v.Served {
				return fmt.Errorf("CRD %s does not serve version %s", name, version)
			}
			return nil
		}
	}
	return fmt.Errorf("CRD %s has no version %s", name, version)
}

func checkControllerVersion(ctx context.Context, c client.Reader, opts options) error {
	key := types.NamespacedName{Namespace: opts.controllerNamespace, Name: opts.controllerDeployment}
	var deploy appsv1.Deployment
	if err := c.Get(ctx, key, &deploy); err != nil {
		return fmt.Errorf("failed to get controller Deployment %s: %w", key, err)
	}
	if len(deploy.Spec.Template.Spec.Containers) == 0 {
		return fmt.Errorf("controller Deployment %s has no containers", key)
	}

	image := deploy.Spec.Template.Spec.Containers[0].Image
	tag, ok := ImageTag(image)
	if !ok {
		return fmt.Errorf("controller image %q has no tag", image)
	}
	version, err := semver.NewVersion(tag)
	if err != nil {
		return fmt.Errorf("failed to parse controller image tag %q: %w", tag, err)
	}
	if version.LessThan(opts.minControllerVersion) {
		return fmt.Errorf("controller version %q is lower than the minimum %q",
			version.Original(), opts.minControllerVersion.Original())
	}
	return nil
}

// ImageTag returns the tag of a container image reference, ignoring any
// digest.
func ImageTag(image string) (string, bool) {
	image, _, _ = strings.Cut(image, "@")
	i := strings.LastIndex(image, ":")
	// A colon before the last slash belongs to a registry port.
	if i < 0 || i < strings.LastIndex(image, "/") {
		return "", false
	}
	return image[i+1:], true
}
