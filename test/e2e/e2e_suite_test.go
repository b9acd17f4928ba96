//go:build e2e

// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package e2e

import (
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/converge"
	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/ecrpublic"
	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/k8s"
	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/preflight"
)

var (
	cfg       *Config
	k8sClient client.Client
	lifecycle *k8s.Lifecycle
	validator *ecrpublic.Validator
)

// TestE2E runs the suite against the cluster of the current kubeconfig
// context, where the ECR Public controller must be running, and against
// the ECR Public API with credentials from the AWS default chain.
func TestE2E(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ECR Public e2e suite")
}

var _ = BeforeSuite(func(ctx SpecContext) {
	ctrl.SetLogger(zap.New(zap.WriteTo(GinkgoWriter), zap.UseDevMode(true)))

	var err error
	cfg, err = LoadConfig(os.Getenv)
	Expect(err).NotTo(HaveOccurred())

	scheme := runtime.NewScheme()
	Expect(clientgoscheme.AddToScheme(scheme)).To(Succeed())
	Expect(apiextensionsv1.AddToScheme(scheme)).To(Succeed())

	restConfig, err := ctrl.GetConfig()
	Expect(err).NotTo(HaveOccurred())
	k8sClient, err = client.New(restConfig, client.Options{Scheme: scheme})
	Expect(err).NotTo(HaveOccurred())

	var checks []preflight.Option
	if cfg.MinControllerVersion != nil {
		checks = append(checks, preflight.WithMinControllerVersion(
			cfg.ControllerNamespace, cfg.ControllerDeployment, cfg.MinControllerVersion))
	}
	Expect(preflight.Checks(ctx, k8sClient, checks...)).To(Succeed())

	api, err := ecrpublic.NewClient(ctx, ecrpublic.ClientConfig{
		Region:   cfg.Region,
		Endpoint: cfg.Endpoint,
	})
	Expect(err).NotTo(HaveOccurred())
	validator = ecrpublic.NewValidator(api, ctrl.Log.WithName("validator"))

	lifecycle = k8s.NewLifecycle(k8sClient, ctrl.Log.WithName("lifecycle"), converge.Options{
		Timeout: cfg.Timeout,
	})
})
