/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chainguard.dev/governance/reconcilers/githubreconciler"
	githubtesting "chainguard.dev/governance/reconcilers/githubreconciler/testing"
	"chainguard.dev/governance/reconcilers/labelreconciler"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestClientCountsCalls(t *testing.T) {
	ctx := context.Background()
	m := New()
	res := &githubreconciler.Resource{Owner: "o", Repo: "r", Number: 1}
	c := m.Client(githubtesting.NewFakeClient())

	_, err := c.ListLabels(ctx, res)
	require.NoError(t, err)
	require.NoError(t, c.AddLabels(ctx, res, []string{"a"}))
	require.NoError(t, c.RemoveLabel(ctx, res, "a"))
	require.NoError(t, c.RemoveLabel(ctx, res, "b"))

	require.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("list_labels")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("add_labels")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.calls.WithLabelValues("remove_label")))
}

func TestObserve(t *testing.T) {
	m := New()
	m.Observe(&labelreconciler.Plan{Prefix: "triage", Add: []string{"triage/a", "triage/b"}, Remove: []string{"needs/triage"}, Comment: "hi"})

	require.Equal(t, 2.0, testutil.ToFloat64(m.changes.WithLabelValues("triage", "add")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.changes.WithLabelValues("triage", "remove")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.changes.WithLabelValues("triage", "comment")))
}

func TestTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	m := New()
	hc := &http.Client{Transport: m.Transport(nil)}
	resp, err := hc.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("404", "get")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.calls.WithLabelValues("add_labels").Inc()

	path := filepath.Join(t.TempDir(), "governance.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `governance_github_calls_total{operation="add_labels"} 1`), string(data))

	require.Error(t, m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")))
}
