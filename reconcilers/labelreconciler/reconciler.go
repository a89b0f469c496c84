/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labelreconciler

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/governance/command"
	"chainguard.dev/governance/governance"
	"chainguard.dev/governance/reconcilers/githubreconciler"
	"chainguard.dev/governance/reconcilers/githubreconciler/statusmanager"
	"github.com/chainguard-dev/clog"
)

// Request describes one prefix reconciliation.
type Request struct {
	Resource *githubreconciler.Resource
	Rule     governance.Rule
	Commands command.Set

	// Labels is the snapshot taken when the run started.
	Labels []string

	Opened bool

	// HeadSHA is the pull request head commit. When empty and a status must
	// be posted, it is resolved through the client.
	HeadSHA string
}

// Observer is notified of every applied plan.
type Observer interface {
	Observe(plan *Plan)
}

// Reconciler applies plans through a GitHub client.
type Reconciler struct {
	client   githubreconciler.Client
	statuses *statusmanager.Manager
	observer Observer
	dryRun   bool
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithStatusManager overrides the status manager used for commit statuses.
func WithStatusManager(m *statusmanager.Manager) Option {
	return func(r *Reconciler) {
		r.statuses = m
	}
}

// WithObserver registers an observer for applied plans.
func WithObserver(o Observer) Option {
	return func(r *Reconciler) {
		r.observer = o
	}
}

// WithDryRun computes plans without calling any write endpoint.
func WithDryRun() Option {
	return func(r *Reconciler) {
		r.dryRun = true
	}
}

// New creates a Reconciler.
func New(client githubreconciler.Client, opts ...Option) *Reconciler {
	r := &Reconciler{client: client}
	for _, opt := range opts {
		opt(r)
	}
	if r.statuses == nil {
		r.statuses = statusmanager.New(client)
	}
	return r
}

// Reconcile computes and applies the plan for req. The first failing call
// aborts the reconciliation; calls already made are not rolled back.
func (r *Reconciler) Reconcile(ctx context.Context, req *Request) (*Plan, error) {
	if req == nil || req.Resource == nil {
		return nil, errors.New("request requires a resource")
	}
	log := clog.FromContext(ctx).With("prefix", req.Rule.Prefix)

	plan := Compute(Input{
		Rule:     req.Rule,
		Commands: req.Commands,
		Labels:   req.Labels,
		Opened:   req.Opened,
	})
	if plan.Empty() {
		log.Debug("Nothing to reconcile")
		return plan, nil
	}
	log.With("add", plan.Add, "remove", plan.Remove, "governed", plan.Governed).Info("Computed label plan")

	if r.dryRun {
		return plan, nil
	}

	if len(plan.Add) > 0 {
		if err := r.client.AddLabels(ctx, req.Resource, plan.Add); err != nil {
			return nil, fmt.Errorf("adding labels: %w", err)
		}
	}
	for _, name := range plan.Remove {
		if err := r.client.RemoveLabel(ctx, req.Resource, name); err != nil {
			return nil, fmt.Errorf("removing label %q: %w", name, err)
		}
	}
	if plan.Comment != "" {
		if err := r.client.CreateComment(ctx, req.Resource, plan.Comment); err != nil {
			return nil, fmt.Errorf("creating comment: %w", err)
		}
	}
	if err := r.postStatus(ctx, req, plan); err != nil {
		return nil, err
	}

	if r.observer != nil {
		r.observer.Observe(plan)
	}
	return plan, nil
}

func (r *Reconciler) postStatus(ctx context.Context, req *Request, plan *Plan) error {
	if plan.Status == nil {
		return nil
	}
	if !req.Resource.IsPullRequest() {
		clog.FromContext(ctx).With("context", plan.Status.Context).Debug("Skipping status for issue")
		return nil
	}

	sha := req.HeadSHA
	if sha == "" {
		var err error
		if sha, err = r.client.HeadSHA(ctx, req.Resource); err != nil {
			return fmt.Errorf("resolving head commit: %w", err)
		}
	}

	status := *plan.Status
	session := r.statuses.NewSession(req.Resource, sha, status.Context)
	if _, err := session.SetActualState(ctx, &status); err != nil {
		return fmt.Errorf("setting status %q: %w", status.Context, err)
	}
	return nil
}
