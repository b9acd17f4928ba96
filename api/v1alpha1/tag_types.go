// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package v1alpha1

import "strings"

// SystemTagPrefix prefixes the tags the controller adds to every resource it
// creates, on top of the user-defined spec tags.
const SystemTagPrefix = "services.k8s.aws/"

const (
	SystemTagControllerVersion = SystemTagPrefix + "controller-version"
	SystemTagNamespace         = SystemTagPrefix + "namespace"
)

// SystemTagCount is the number of system tags on a managed repository.
const SystemTagCount = 2

// TagsToMap converts spec tags to a map. A later duplicate key wins.
func TagsToMap(tags []Tag) map[string]string {
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[t.Key] = t.Value
	}
	return m
}

// UserTags returns observed tags without the controller's system tags.
func UserTags(observed map[string]string) map[string]string {
	m := make(map[string]string, len(observed))
	for k, v := range observed {
		if strings.HasPrefix(k, SystemTagPrefix) {
			continue
		}
		m[k] = v
	}
	return m
}
