//go:build e2e

// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package e2e

import (
	"maps"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/matheuscscp/ecrpublic-controller-e2e/api/v1alpha1"
	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/conditions"
	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/converge"
	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/k8s"
	"github.com/matheuscscp/ecrpublic-controller-e2e/internal/resources"
)

var _ = Describe("Repository", Ordered, Label("canary"), func() {
	var (
		name string
		ref  k8s.Reference
		cr   *unstructured.Unstructured
	)

	BeforeAll(func(ctx SpecContext) {
		name = resources.RandomSuffixName("ecr-repository", 24)

		manifest, err := resources.Load(resources.Repository, map[string]string{
			"REPOSITORY_NAME": name,
		})
		Expect(err).NotTo(HaveOccurred())
		GinkgoWriter.Printf("Creating Repository %s\n", name)

		ref = k8s.NewRepositoryReference(name, cfg.Namespace)
		_, err = lifecycle.Create(ctx, ref, manifest)
		Expect(err).NotTo(HaveOccurred())

		cr, err = lifecycle.WaitConsumedByController(ctx, ref)
		Expect(err).NotTo(HaveOccurred())
		Expect(cr).NotTo(BeNil())
		Expect(lifecycle.Exists(ctx, ref)).To(BeTrue())
	})

	AfterAll(func(ctx SpecContext) {
		if ref.Name == "" {
			return
		}
		deleted, err := lifecycle.Delete(ctx, ref)
		Expect(err).NotTo(HaveOccurred())
		Expect(deleted).To(BeTrue())

		Expect(validator.WaitForRepository(ctx, name, false, converge.Options{
			Settle:  cfg.DeleteWait,
			Timeout: cfg.Timeout,
		})).To(Succeed())
	})

	It("creates the repository with the spec tags plus the system tags", func(ctx SpecContext) {
		Expect(validator.WaitForRepository(ctx, name, true, converge.Options{
			Settle:  cfg.CreateWait,
			Timeout: cfg.Timeout,
		})).To(Succeed())

		repo, err := v1alpha1.FromUnstructured(cr)
		Expect(err).NotTo(HaveOccurred())
		msg, terminal := conditions.Terminal(repo)
		Expect(terminal).To(BeFalse(), msg)
		Expect(repo.Spec.Tags).To(HaveLen(1))
		Expect(repo.ARN()).NotTo(BeEmpty())

		specTags := v1alpha1.TagsToMap(repo.Spec.Tags)
		tags, err := validator.WaitForRepositoryTags(ctx, repo.ARN(), func(tags map[string]string) bool {
			return len(tags) == len(repo.Spec.Tags)+v1alpha1.SystemTagCount
		}, converge.Options{Timeout: cfg.Timeout})
		Expect(err).NotTo(HaveOccurred())
		Expect(v1alpha1.UserTags(tags)).To(Equal(specTags))
	})

	It("replaces the tags when the spec tags are patched", func(ctx SpecContext) {
		_, err := lifecycle.Patch(ctx, ref, map[string]any{
			"spec": map[string]any{
				"tags": []any{
					map[string]any{"key": "test", "value": "test"},
					map[string]any{"key": "key", "value": "value"},
				},
			},
		})
		Expect(err).NotTo(HaveOccurred())

		obj, err := lifecycle.Get(ctx, ref)
		Expect(err).NotTo(HaveOccurred())
		repo, err := v1alpha1.FromUnstructured(obj)
		Expect(err).NotTo(HaveOccurred())
		Expect(repo.Spec.Tags).To(HaveLen(2))

		// ResourceSynced is still True from the create, so convergence is
		// judged on the observed tags.
		specTags := v1alpha1.TagsToMap(repo.Spec.Tags)
		tags, err := validator.WaitForRepositoryTags(ctx, repo.ARN(), func(tags map[string]string) bool {
			return len(tags) == len(repo.Spec.Tags)+v1alpha1.SystemTagCount &&
				maps.Equal(v1alpha1.UserTags(tags), specTags)
		}, converge.Options{Settle: cfg.UpdateWait, Timeout: cfg.Timeout})
		Expect(err).NotTo(HaveOccurred())
		Expect(tags).To(HaveKeyWithValue("test", "test"))
		Expect(tags).To(HaveKeyWithValue("key", "value"))

		obj, err = lifecycle.WaitOnCondition(ctx, ref, v1alpha1.ConditionResourceSynced, corev1.ConditionTrue)
		Expect(err).NotTo(HaveOccurred())
		repo, err = v1alpha1.FromUnstructured(obj)
		Expect(err).NotTo(HaveOccurred())
		Expect(conditions.Synced(repo)).To(BeTrue())
		msg, terminal := conditions.Terminal(repo)
		Expect(terminal).To(BeFalse(), msg)
	})
})
