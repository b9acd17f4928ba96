// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

// Package resources renders the manifests applied by the end-to-end suite.
package resources

import (
	"embed"
	"fmt"
	"maps"
	"regexp"
	"strings"

	"k8s.io/apimachinery/pkg/util/rand"
	"sigs.k8s.io/yaml"
)

const (
	// Repository is the template for a single Repository resource.
	Repository = "repository"
)

//go:embed templates/*.yaml
var templates embed.FS

var placeholderPattern = regexp.MustCompile(`\$[A-Z][A-Z0-9_]*`)

// DefaultReplacements returns the values substituted into every template
// unless overridden.
func DefaultReplacements() map[string]string {
	return map[string]string{
		"CREATED_BY_KEY":   "k8s.io-created-by",
		"CREATED_BY_VALUE": "ecrpublic-e2e",
	}
}

// Load renders the named template with DefaultReplacements merged with
// replacements and parses it into a manifest. A placeholder without a
// value is an error.
func Load(name string, replacements map[string]string) (map[string]any, error) {
	b, err := templates.ReadFile("templates/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}

	values := DefaultReplacements()
	maps.Copy(values, replacements)

	var missing []string
	rendered := placeholderPattern.ReplaceAllStringFunc(string(b), func(p string) string {
		v, ok := values[strings.TrimPrefix(p, "$")]
		if !ok {
			missing = append(missing, p)
			return p
		}
		return v
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("template %s has no value for %s", name, strings.Join(missing, ", "))
	}

	var manifest map[string]any
	if err := yaml.Unmarshal([]byte(rendered), &manifest); err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	return manifest, nil
}

// RandomSuffixName returns prefix followed by a dash and a random suffix
// filling the name up to maxLen characters. If prefix leaves no room for a
// suffix it is truncated to maxLen. A negative maxLen counts as zero.
func RandomSuffixName(prefix string, maxLen int) string {
	maxLen = max(maxLen, 0)
	n := maxLen - len(prefix) - 1
	if n <= 0 {
		return prefix[:min(len(prefix), maxLen)]
	}
	return prefix + "-" + rand.String(n)
}
