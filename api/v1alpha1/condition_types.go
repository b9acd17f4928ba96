// Copyright 2026 Matheus Pimenta.
// SPDX-License-Identifier: AGPL-3.0

package v1alpha1

// Condition types set by the controller on every managed resource.
const (
	// ConditionResourceSynced reports whether the cloud resource matches
	// the desired spec.
	ConditionResourceSynced = "ACK.ResourceSynced"

	// ConditionTerminal reports an error the controller will not retry
	// until the spec changes.
	ConditionTerminal = "ACK.Terminal"

	ConditionRecoverable = "ACK.Recoverable"
	ConditionAdopted     = "ACK.Adopted"
)
