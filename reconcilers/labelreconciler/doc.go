/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package labelreconciler keeps the labels under one governed prefix in line
// with the slash commands found on an issue or pull request.
//
// Reconciliation happens in two steps. Compute is a pure function from the
// rule, the parsed commands and the labels currently attached to a Plan.
// Reconciler.Reconcile applies a Plan through a githubreconciler.Client:
//
//	rec := labelreconciler.New(client)
//	plan, err := rec.Reconcile(ctx, &labelreconciler.Request{
//		Resource: res,
//		Rule:     rule,
//		Commands: command.Parse(body),
//		Labels:   labels,
//		Opened:   evt.IsOpened(),
//	})
//
// Supported directives for a prefix such as "triage":
//
//	/triage accepted          attach triage/accepted
//	/triage-remove accepted   detach triage/accepted
//	/needs triage             attach needs/triage while nothing is governed
//
// Values outside the rule's list are ignored. The needs/<prefix> label and
// governed labels are never attached together, and a rule with multiple
// set to false keeps at most one governed label.
package labelreconciler
