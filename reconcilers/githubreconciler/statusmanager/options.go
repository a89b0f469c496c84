/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package statusmanager

// Option customizes the Manager.
type Option func(*Manager)

// WithAlwaysPost disables the comparison against the observed status and
// posts on every SetActualState call.
func WithAlwaysPost() Option {
	return func(m *Manager) { m.alwaysPost = true }
}
