/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package testing provides an in-memory githubreconciler.Client for tests.
package testing

import (
	"context"
	"slices"
	"sync"

	"chainguard.dev/governance/reconcilers/githubreconciler"
)

// Operation names recorded by FakeClient.
const (
	OpListLabels    = "ListLabels"
	OpAddLabels     = "AddLabels"
	OpRemoveLabel   = "RemoveLabel"
	OpCreateComment = "CreateComment"
	OpListStatuses  = "ListStatuses"
	OpCreateStatus  = "CreateStatus"
	OpHeadSHA       = "HeadSHA"
)

// FakeClient emulates the GitHub endpoints used by the reconcilers. Writes
// are applied to Labels and Statuses so consecutive runs observe them.
type FakeClient struct {
	mu sync.Mutex

	// Labels are the labels currently attached.
	Labels []string
	// Statuses holds posted statuses, newest first.
	Statuses []githubreconciler.CommitStatus
	// Head is returned by HeadSHA.
	Head string
	// Errors makes the named operation fail.
	Errors map[string]error

	// Added holds the names passed to each AddLabels call.
	Added [][]string
	// Removed holds the name passed to each RemoveLabel call.
	Removed []string
	// Comments holds every comment body posted.
	Comments []string
	// Posted holds every status posted.
	Posted []githubreconciler.CommitStatus
	// Refs holds the commit ref of every posted status.
	Refs []string
}

var _ githubreconciler.Client = (*FakeClient)(nil)

// NewFakeClient returns a FakeClient with labels attached.
func NewFakeClient(labels ...string) *FakeClient {
	return &FakeClient{Labels: labels}
}

func (f *FakeClient) err(op string) error {
	return f.Errors[op]
}

// ListLabels implements githubreconciler.Client.
func (f *FakeClient) ListLabels(context.Context, *githubreconciler.Resource) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err(OpListLabels); err != nil {
		return nil, err
	}
	var out []string
	for _, l := range f.Labels {
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out, nil
}

// AddLabels implements githubreconciler.Client.
func (f *FakeClient) AddLabels(_ context.Context, _ *githubreconciler.Resource, names []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err(OpAddLabels); err != nil {
		return err
	}
	f.Added = append(f.Added, slices.Clone(names))
	for _, n := range names {
		if !slices.Contains(f.Labels, n) {
			f.Labels = append(f.Labels, n)
		}
	}
	return nil
}

// RemoveLabel implements githubreconciler.Client.
func (f *FakeClient) RemoveLabel(_ context.Context, _ *githubreconciler.Resource, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err(OpRemoveLabel); err != nil {
		return err
	}
	f.Removed = append(f.Removed, name)
	f.Labels = slices.DeleteFunc(f.Labels, func(l string) bool { return l == name })
	return nil
}

// CreateComment implements githubreconciler.Client.
func (f *FakeClient) CreateComment(_ context.Context, _ *githubreconciler.Resource, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err(OpCreateComment); err != nil {
		return err
	}
	f.Comments = append(f.Comments, body)
	return nil
}

// ListStatuses implements githubreconciler.Client.
func (f *FakeClient) ListStatuses(context.Context, *githubreconciler.Resource, string) ([]githubreconciler.CommitStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err(OpListStatuses); err != nil {
		return nil, err
	}
	return slices.Clone(f.Statuses), nil
}

// CreateStatus implements githubreconciler.Client.
func (f *FakeClient) CreateStatus(_ context.Context, _ *githubreconciler.Resource, ref string, status githubreconciler.CommitStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err(OpCreateStatus); err != nil {
		return err
	}
	f.Posted = append(f.Posted, status)
	f.Refs = append(f.Refs, ref)
	f.Statuses = append([]githubreconciler.CommitStatus{status}, f.Statuses...)
	return nil
}

// HeadSHA implements githubreconciler.Client.
func (f *FakeClient) HeadSHA(context.Context, *githubreconciler.Resource) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.err(OpHeadSHA); err != nil {
		return "", err
	}
	return f.Head, nil
}

// Writes returns the number of write calls made so far.
func (f *FakeClient) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Added) + len(f.Removed) + len(f.Comments) + len(f.Posted)
}

// Reset forgets recorded calls but keeps Labels and Statuses.
func (f *FakeClient) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Added, f.Removed, f.Comments, f.Posted, f.Refs = nil, nil, nil, nil, nil
}
