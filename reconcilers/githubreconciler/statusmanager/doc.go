/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package statusmanager keeps a single commit status context in its desired
// state.
//
// A Session is bound to one commit and one status context. ObservedState
// returns the latest status GitHub holds for that context, and
// SetActualState posts a new status only when it differs, so re-running a
// reconciliation against an unchanged pull request makes no write calls:
//
//	mgr := statusmanager.New(client)
//	session := mgr.NewSession(res, sha, "Triage")
//	if _, err := session.SetActualState(ctx, &githubreconciler.CommitStatus{
//	    State: githubreconciler.StatePending,
//	}); err != nil {
//	    return err
//	}
//
// The Context field of the status passed to SetActualState is always set
// to the session's context.
package statusmanager
