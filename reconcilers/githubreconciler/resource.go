/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubreconciler

import "fmt"

// ResourceType distinguishes issues from pull requests.
type ResourceType int

const (
	// ResourceTypeIssue is a plain issue.
	ResourceTypeIssue ResourceType = iota + 1

	// ResourceTypePullRequest is a pull request. Pull requests share the
	// issue number space and the issue label endpoints.
	ResourceTypePullRequest
)

// String implements fmt.Stringer.
func (t ResourceType) String() string {
	switch t {
	case ResourceTypeIssue:
		return "issue"
	case ResourceTypePullRequest:
		return "pull_request"
	default:
		return fmt.Sprintf("ResourceType(%d)", int(t))
	}
}

// Resource identifies the issue or pull request being reconciled.
type Resource struct {
	Owner  string
	Repo   string
	Number int
	Type   ResourceType
}

// String returns the owner/repo#number form.
func (r *Resource) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// IsPullRequest reports whether the resource is a pull request.
func (r *Resource) IsPullRequest() bool {
	return r.Type == ResourceTypePullRequest
}
