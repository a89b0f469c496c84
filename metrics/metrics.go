/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics counts the GitHub calls and label changes of a governance
// run. A run is short lived, so the registry is written to a file in the
// Prometheus text format instead of being scraped.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"chainguard.dev/governance/reconcilers/githubreconciler"
	"chainguard.dev/governance/reconcilers/labelreconciler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one run.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	calls    *prometheus.CounterVec
	changes  *prometheus.CounterVec
}

var _ labelreconciler.Observer = (*Metrics)(nil)

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "governance_github_requests_total",
				Help: "HTTP requests sent to the GitHub API",
			},
			[]string{"code", "method"},
		),
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "governance_github_calls_total",
				Help: "GitHub client calls by operation",
			},
			[]string{"operation"},
		),
		changes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "governance_label_changes_total",
				Help: "Label changes applied by prefix",
			},
			[]string{"prefix", "change"},
		),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Transport counts every request sent through next.
func (m *Metrics) Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(m.requests, next)
}

// Observe implements labelreconciler.Observer.
func (m *Metrics) Observe(plan *labelreconciler.Plan) {
	m.changes.WithLabelValues(plan.Prefix, "add").Add(float64(len(plan.Add)))
	m.changes.WithLabelValues(plan.Prefix, "remove").Add(float64(len(plan.Remove)))
	if plan.Comment != "" {
		m.changes.WithLabelValues(plan.Prefix, "comment").Inc()
	}
}

// WriteTextfile writes the registry to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

// Client wraps c so that every call is counted.
func (m *Metrics) Client(c githubreconciler.Client) githubreconciler.Client {
	return &client{next: c, calls: m.calls}
}

type client struct {
	next  githubreconciler.Client
	calls *prometheus.CounterVec
}

func (c *client) ListLabels(ctx context.Context, res *githubreconciler.Resource) ([]string, error) {
	c.calls.WithLabelValues("list_labels").Inc()
	return c.next.ListLabels(ctx, res)
}

func (c *client) AddLabels(ctx context.Context, res *githubreconciler.Resource, names []string) error {
	c.calls.WithLabelValues("add_labels").Inc()
	return c.next.AddLabels(ctx, res, names)
}

func (c *client) RemoveLabel(ctx context.Context, res *githubreconciler.Resource, name string) error {
	c.calls.WithLabelValues("remove_label").Inc()
	return c.next.RemoveLabel(ctx, res, name)
}

func (c *client) CreateComment(ctx context.Context, res *githubreconciler.Resource, body string) error {
	c.calls.WithLabelValues("create_comment").Inc()
	return c.next.CreateComment(ctx, res, body)
}

func (c *client) ListStatuses(ctx context.Context, res *githubreconciler.Resource, ref string) ([]githubreconciler.CommitStatus, error) {
	c.calls.WithLabelValues("list_statuses").Inc()
	return c.next.ListStatuses(ctx, res, ref)
}

func (c *client) CreateStatus(ctx context.Context, res *githubreconciler.Resource, ref string, status githubreconciler.CommitStatus) error {
	c.calls.WithLabelValues("create_status").Inc()
	return c.next.CreateStatus(ctx, res, ref, status)
}

func (c *client) HeadSHA(ctx context.Context, res *githubreconciler.Resource) (string, error) {
	c.calls.WithLabelValues("head_sha").Inc()
	return c.next.HeadSHA(ctx, res)
}
