/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package statusmanager_test

import (
	"context"
	"errors"
	"testing"

	"chainguard.dev/governance/reconcilers/githubreconciler"
	"chainguard.dev/governance/reconcilers/githubreconciler/statusmanager"
	githubtesting "chainguard.dev/governance/reconcilers/githubreconciler/testing"
	"github.com/stretchr/testify/require"
)

var res = &githubreconciler.Resource{Owner: "owner", Repo: "repo", Number: 1, Type: githubreconciler.ResourceTypePullRequest}

func TestSetActualStatePostsOnce(t *testing.T) {
	ctx := context.Background()
	client := githubtesting.NewFakeClient()
	session := statusmanager.New(client).NewSession(res, "abc", "Triage")

	observed, err := session.ObservedState(ctx)
	require.NoError(t, err)
	require.Nil(t, observed, "expected no status before write")

	posted, err := session.SetActualState(ctx, &githubreconciler.CommitStatus{State: githubreconciler.StatePending})
	require.NoError(t, err)
	require.True(t, posted)
	require.Equal(t, []githubreconciler.CommitStatus{{Context: "Triage", State: "pending"}}, client.Posted)
	require.Equal(t, []string{"abc"}, client.Refs)

	// Same desired state again: nothing to do.
	posted, err = session.SetActualState(ctx, &githubreconciler.CommitStatus{State: githubreconciler.StatePending})
	require.NoError(t, err)
	require.False(t, posted)
	require.Len(t, client.Posted, 1)

	// A transition is posted.
	posted, err = session.SetActualState(ctx, &githubreconciler.CommitStatus{State: githubreconciler.StateSuccess})
	require.NoError(t, err)
	require.True(t, posted)

	observed, err = session.ObservedState(ctx)
	require.NoError(t, err)
	require.Equal(t, githubreconciler.StateSuccess, observed.State)
}

func TestObservedStateIgnoresOtherContexts(t *testing.T) {
	client := githubtesting.NewFakeClient()
	client.Statuses = []githubreconciler.CommitStatus{
		{Context: "ci/build", State: "failure"},
		{Context: "Triage", State: "success"},
		{Context: "Triage", State: "pending"},
	}
	session := statusmanager.New(client).NewSession(res, "abc", "Triage")

	observed, err := session.ObservedState(context.Background())
	require.NoError(t, err)
	require.Equal(t, &githubreconciler.CommitStatus{Context: "Triage", State: "success"}, observed)
}

func TestWithAlwaysPost(t *testing.T) {
	ctx := context.Background()
	client := githubtesting.NewFakeClient()
	client.Errors = map[string]error{githubtesting.OpListStatuses: errors.New("should not be called")}
	session := statusmanager.New(client, statusmanager.WithAlwaysPost()).NewSession(res, "abc", "Triage")

	for range 2 {
		posted, err := session.SetActualState(ctx, &githubreconciler.CommitStatus{State: githubreconciler.StatePending})
		require.NoError(t, err)
		require.True(t, posted)
	}
	require.Len(t, client.Posted, 2)
}

func TestSetActualStateErrors(t *testing.T) {
	ctx := context.Background()
	client := githubtesting.NewFakeClient()

	_, err := statusmanager.New(client).NewSession(res, "abc", "Triage").SetActualState(ctx, nil)
	require.Error(t, err)

	_, err = statusmanager.New(client).NewSession(res, "", "Triage").SetActualState(ctx, &githubreconciler.CommitStatus{State: "pending"})
	require.Error(t, err)

	client.Errors = map[string]error{githubtesting.OpCreateStatus: errors.New("boom")}
	_, err = statusmanager.New(client).NewSession(res, "abc", "Triage").SetActualState(ctx, &githubreconciler.CommitStatus{State: "pending"})
	require.Error(t, err)
}
