/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package governancereconciler runs every governance rule that applies to a
// webhook event.
//
// The rule set is chosen from the event: pull requests and comments on pull
// requests use the pull_request rules, issues and comments on issues use the
// issue rules. The labels are listed once and the same snapshot is handed to
// each prefix, so one prefix's changes never influence another's decisions.
// Prefixes run one after the other in configuration order and the run stops
// at the first failure.
//
//	rec := governancereconciler.New(client)
//	result, err := rec.Reconcile(ctx, evt, cfg)
package governancereconciler
