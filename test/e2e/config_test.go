// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package e2e

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		g := NewWithT(t)
		cfg, err := LoadConfig(envMap(nil))
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(cfg.Region).To(Equal("us-east-1"))
		g.Expect(cfg.Namespace).To(Equal("default"))
		g.Expect(cfg.Endpoint).To(BeEmpty())
		g.Expect(cfg.CreateWait).To(Equal(10 * time.Second))
		g.Expect(cfg.UpdateWait).To(Equal(10 * time.Second))
		g.Expect(cfg.DeleteWait).To(Equal(10 * time.Second))
		g.Expect(cfg.Timeout).To(Equal(2 * time.Minute))
		g.Expect(cfg.MinControllerVersion).To(BeNil())
	})

	t.Run("overrides", func(t *testing.T) {
		g := NewWithT(t)
		cfg, err := LoadConfig(envMap(map[string]string{
			"AWS_REGION":                 "us-west-2",
			"ECRPUBLIC_ENDPOINT":         "http://localhost:4566",
			"E2E_NAMESPACE":              "e2e",
			"E2E_CREATE_WAIT":            "1s",
			"E2E_UPDATE_WAIT":            "0s",
			"E2E_DELETE_WAIT":            "3s",
			"E2E_TIMEOUT":                "5m",
			"E2E_MIN_CONTROLLER_VERSION": "1.0.0",
			"E2E_CONTROLLER_NAMESPACE":   "controllers",
			"E2E_CONTROLLER_DEPLOYMENT":  "ecrpublic",
		}))
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(cfg.Region).To(Equal("us-west-2"))
		g.Expect(cfg.Endpoint).To(Equal("http://localhost:4566"))
		g.Expect(cfg.Namespace).To(Equal("e2e"))
		g.Expect(cfg.CreateWait).To(Equal(time.Second))
		g.Expect(cfg.UpdateWait).To(BeZero())
		g.Expect(cfg.DeleteWait).To(Equal(3 * time.Second))
		g.Expect(cfg.Timeout).To(Equal(5 * time.Minute))
		g.Expect(cfg.MinControllerVersion.String()).To(Equal("1.0.0"))
		g.Expect(cfg.ControllerNamespace).To(Equal("controllers"))
		g.Expect(cfg.ControllerDeployment).To(Equal("ecrpublic"))
	})

	for _, tt := range []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "bad duration",
			env:     map[string]string{"E2E_CREATE_WAIT": "ten"},
			wantErr: "invalid E2E_CREATE_WAIT",
		},
		{
			name:    "negative duration",
			env:     map[string]string{"E2E_TIMEOUT": "-1s"},
			wantErr: "is negative",
		},
		{
			name:    "bad version",
			env:     map[string]string{"E2E_MIN_CONTROLLER_VERSION": "latest"},
			wantErr: "invalid E2E_MIN_CONTROLLER_VERSION",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			_, err := LoadConfig(envMap(tt.env))
			g.Expect(err).To(MatchError(ContainSubstring(tt.wantErr)))
		})
	}
}
