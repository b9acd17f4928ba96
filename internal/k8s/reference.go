// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package k8s

import (
	"fmt"

	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/matheuscscp/ecrpublic-controller-e2e/api/v1alpha1"
)

// Reference identifies a custom resource in the cluster. It is immutable
// once built.
type Reference struct {
	Group     string
	Version   string
	Kind      string
	Name      string
	Namespace string
}

// NewRepositoryReference returns a Reference to a Repository.
func NewRepositoryReference(name, namespace string) Reference {
	return Reference{
		Group:     v1alpha1.Group,
		Version:   v1alpha1.Version,
		Kind:      v1alpha1.KindRepository,
		Name:      name,
		Namespace: namespace,
	}
}

func (r Reference) GroupVersionKind() schema.GroupVersionKind {
	return schema.GroupVersionKind{Group: r.Group, Version: r.Version, Kind: r.Kind}
}

func (r Reference) Key() client.ObjectKey {
	return client.ObjectKey{Namespace: r.Namespace, Name: r.Name}
}

func (r Reference) String() string {
	return fmt.Sprintf("%s %s/%s", r.Kind, r.Namespace, r.Name)
}
