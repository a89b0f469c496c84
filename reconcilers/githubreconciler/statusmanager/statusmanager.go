/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package statusmanager

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/governance/reconcilers/githubreconciler"
	"github.com/chainguard-dev/clog"
)

// Manager creates status sessions against a GitHub client.
type Manager struct {
	client     githubreconciler.Client
	alwaysPost bool
}

// Session represents one status context on one commit.
type Session struct {
	manager  *Manager
	resource *githubreconciler.Resource
	sha      string
	context  string
}

// New constructs a Manager.
func New(client githubreconciler.Client, opts ...Option) *Manager {
	m := &Manager{client: client}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewSession starts a session for the status context on sha.
func (m *Manager) NewSession(res *githubreconciler.Resource, sha, statusContext string) *Session {
	return &Session{
		manager:  m,
		resource: res,
		sha:      sha,
		context:  statusContext,
	}
}

// ObservedState returns the newest status for the session's context, or nil
// if none has been posted.
func (s *Session) ObservedState(ctx context.Context) (*githubreconciler.CommitStatus, error) {
	statuses, err := s.manager.client.ListStatuses(ctx, s.resource, s.sha)
	if err != nil {
		return nil, fmt.Errorf("fetching observed status: %w", err)
	}
	for _, st := range statuses {
		if st.Context == s.context {
			return &st, nil
		}
	}
	return nil, nil
}

// SetActualState posts status unless the observed status already matches.
// It reports whether a status was posted.
func (s *Session) SetActualState(ctx context.Context, status *githubreconciler.CommitStatus) (bool, error) {
	if status == nil {
		return false, errors.New("status cannot be nil")
	}
	if s.sha == "" {
		return false, errors.New("status requires a commit")
	}
	status.Context = s.context

	log := clog.FromContext(ctx).With("context", s.context, "sha", s.sha)

	if !s.manager.alwaysPost {
		observed, err := s.ObservedState(ctx)
		if err != nil {
			return false, err
		}
		if observed != nil && *observed == *status {
			log.With("state", status.State).Debug("Status already up to date")
			return false, nil
		}
	}

	log.With("state", status.State).Info("Posting commit status")
	if err := s.manager.client.CreateStatus(ctx, s.resource, s.sha, *status); err != nil {
		return false, err
	}
	return true, nil
}
