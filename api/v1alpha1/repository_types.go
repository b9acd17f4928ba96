// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package v1alpha1

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
)

// Repository is the client-side view of the ECR Public Repository custom
// resource. The suite never writes typed objects; it decodes live
// unstructured objects into this shape for assertions.
type Repository struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              RepositorySpec   `json:"spec,omitempty"`
	Status            RepositoryStatus `json:"status,omitempty"`
}

// RepositorySpec defines the desired state of a public repository.
type RepositorySpec struct {
	// RepositoryName is the name of the repository in the public registry.
	RepositoryName string `json:"repositoryName"`

	// CatalogData is the metadata shown in the public gallery.
	// +optional
	CatalogData *RepositoryCatalogData `json:"catalogData,omitempty"`

	// Tags are the user-defined tags of the repository. Order is not
	// significant.
	// +optional
	Tags []Tag `json:"tags,omitempty"`
}

// RepositoryCatalogData is the gallery metadata of a repository.
type RepositoryCatalogData struct {
	AboutText        string   `json:"aboutText,omitempty"`
	Architectures    []string `json:"architectures,omitempty"`
	Description      string   `json:"description,omitempty"`
	OperatingSystems []string `json:"operatingSystems,omitempty"`
	UsageText        string   `json:"usageText,omitempty"`
}

// Tag is a key/value pair attached to a repository.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RepositoryStatus is the state reported by the controller.
type RepositoryStatus struct {
	// ACKResourceMetadata identifies the cloud resource backing this object.
	// +optional
	ACKResourceMetadata *ResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// +optional
	Conditions []Condition `json:"conditions,omitempty"`

	// +optional
	CreatedAt *metav1.Time `json:"createdAt,omitempty"`

	// +optional
	RegistryID string `json:"registryID,omitempty"`

	// +optional
	RepositoryURI string `json:"repositoryURI,omitempty"`
}

// ResourceMetadata is the cloud identity of a managed resource.
type ResourceMetadata struct {
	ARN            string `json:"arn,omitempty"`
	OwnerAccountID string `json:"ownerAccountID"`
	Region         string `json:"region"`
}

// Condition is a status condition in the controller's format. Unlike
// metav1.Condition it carries no observed generation and reason and message
// are optional.
type Condition struct {
	Type               string                 `json:"type"`
	Status             corev1.ConditionStatus `json:"status"`
	LastTransitionTime *metav1.Time           `json:"lastTransitionTime,omitempty"`
	Reason             string                 `json:"reason,omitempty"`
	Message            string                 `json:"message,omitempty"`
}

// ARN returns the ARN reported in status, or "" if the controller has not
// populated it yet.
func (r *Repository) ARN() string {
	if r.Status.ACKResourceMetadata == nil {
		return ""
	}
	return r.Status.ACKResourceMetadata.ARN
}

// FromUnstructured decodes a live Repository object.
func FromUnstructured(u *unstructured.Unstructured) (*Repository, error) {
	if gvk := u.GroupVersionKind(); gvk != RepositoryGVK() {
		return nil, fmt.Errorf("expected %s, got %s", RepositoryGVK(), gvk)
	}
	var repo Repository
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(u.Object, &repo); err != nil {
		return nil, fmt.Errorf("decoding %s %s/%s: %w", KindRepository, u.GetNamespace(), u.GetName(), err)
	}
	return &repo, nil
}
