/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package event resolves a GitHub webhook payload into the issue, pull
// request or comment that triggered a governance run.
//
// The payload is decoded once, at entry, into a Context whose Kind tells
// which of the three shapes it came from. Downstream code works from the
// Context only.
package event
