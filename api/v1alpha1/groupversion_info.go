// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

// +groupName=ecrpublic.services.k8s.aws
package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Group is the API group served by the ECR Public controller.
const Group = "ecrpublic.services.k8s.aws"

// Version is the API version exercised by this suite.
const Version = "v1alpha1"

const (
	KindRepository = "Repository"

	// ResourceRepositories is the plural resource name of Repository.
	ResourceRepositories = "repositories"

	// CRDRepository is the name of the Repository CustomResourceDefinition.
	CRDRepository = ResourceRepositories + "." + Group
)

var (
	// GroupVersion is the group version used to address these objects.
	GroupVersion = schema.GroupVersion{Group: Group, Version: Version}
)

// RepositoryGVK returns the GroupVersionKind of Repository.
func RepositoryGVK() schema.GroupVersionKind {
	return GroupVersion.WithKind(KindRepository)
}
