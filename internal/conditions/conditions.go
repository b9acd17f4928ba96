// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package conditions

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/matheuscscp/ecrpublic-controller-e2e/api/v1alpha1"
)

func Find(conditions []v1alpha1.Condition, conditionType string) *v1alpha1.Condition {
	for i := range conditions {
		if conditions[i].Type == conditionType {
			return &conditions[i]
		}
	}
	return nil
}

// Has reports whether the condition of the given type exists with the given
// status.
func Has(conditions []v1alpha1.Condition, conditionType string, status corev1.ConditionStatus) bool {
	c := Find(conditions, conditionType)
	return c != nil && c.Status == status
}

// Synced reports whether the controller considers the cloud resource in
// sync with the spec.
func Synced(repo *v1alpha1.Repository) bool {
	return Has(repo.Status.Conditions, v1alpha1.ConditionResourceSynced, corev1.ConditionTrue)
}

// Terminal returns the terminal condition message if the controller gave up
// on the resource, or "" and false otherwise.
func Terminal(repo *v1alpha1.Repository) (string, bool) {
	c := Find(repo.Status.Conditions, v1alpha1.ConditionTerminal)
	if c == nil || c.Status != corev1.ConditionTrue {
		return "", false
	}
	return c.Message, true
}

// FromUnstructured returns the status conditions of a live resource of any
// kind. Entries that do not decode as conditions are skipped.
func FromUnstructured(obj *unstructured.Unstructured) []v1alpha1.Condition {
	raw, _, _ := unstructured.NestedSlice(obj.Object, "status", "conditions")
	conds := make([]v1alpha1.Condition, 0, len(raw))
	for _, c := range raw {
		m, ok := c.(map[string]any)
		if !ok {
			continue
		}
		var cond v1alpha1.Condition
		if err := runtime.DefaultUnstructuredConverter.FromUnstructured(m, &cond); err != nil {
			continue
		}
		conds = append(conds, cond)
	}
	return conds
}
