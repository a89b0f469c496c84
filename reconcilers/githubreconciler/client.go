/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubreconciler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v75/github"
	"github.com/shurcooL/githubv4"
)

// Commit status states.
const (
	StatePending = "pending"
	StateSuccess = "success"
	StateFailure = "failure"
)

// CommitStatus is a commit status as posted to the statuses endpoint.
// Empty TargetURL and Description are omitted from the request.
type CommitStatus struct {
	Context     string
	State       string
	TargetURL   string
	Description string
}

// Client is the set of GitHub calls the reconcilers make.
type Client interface {
	// ListLabels returns the names of the labels attached to the resource,
	// without duplicates.
	ListLabels(ctx context.Context, res *Resource) ([]string, error)

	// AddLabels attaches names to the resource in a single call.
	AddLabels(ctx context.Context, res *Resource, names []string) error

	// RemoveLabel detaches a single label.
	RemoveLabel(ctx context.Context, res *Resource, name string) error

	// CreateComment posts a comment on the resource.
	CreateComment(ctx context.Context, res *Resource, body string) error

	// ListStatuses returns the statuses of ref, newest first.
	ListStatuses(ctx context.Context, res *Resource, ref string) ([]CommitStatus, error)

	// CreateStatus posts a commit status on ref.
	CreateStatus(ctx context.Context, res *Resource, ref string, status CommitStatus) error

	// HeadSHA returns the head commit of a pull request.
	HeadSHA(ctx context.Context, res *Resource) (string, error)
}

// GitHubClient implements Client on top of go-github.
type GitHubClient struct {
	gh  *github.Client
	gql *githubv4.Client
}

var _ Client = (*GitHubClient)(nil)

// ClientOption configures a GitHubClient.
type ClientOption func(*GitHubClient)

// WithGraphQLClient overrides the GraphQL client, e.g. for GitHub Enterprise.
func WithGraphQLClient(gql *githubv4.Client) ClientOption {
	return func(c *GitHubClient) {
		c.gql = gql
	}
}

// NewGitHubClient wraps gh. The GraphQL client shares gh's HTTP client
// unless overridden.
func NewGitHubClient(gh *github.Client, opts ...ClientOption) *GitHubClient {
	c := &GitHubClient{gh: gh}
	for _, opt := range opts {
		opt(c)
	}
	if c.gql == nil {
		c.gql = githubv4.NewClient(gh.Client())
	}
	return c
}

// ListLabels implements Client.
func (c *GitHubClient) ListLabels(ctx context.Context, res *Resource) ([]string, error) {
	var names []string
	seen := make(map[string]struct{})
	opts := &github.ListOptions{PerPage: 100}
	for {
		labels, resp, err := c.gh.Issues.ListLabelsByIssue(ctx, res.Owner, res.Repo, res.Number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing labels: %w", err)
		}
		for _, l := range labels {
			if _, ok := seen[l.GetName()]; ok {
				continue
			}
			seen[l.GetName()] = struct{}{}
			names = append(names, l.GetName())
		}
		if resp == nil || resp.NextPage == 0 {
			return names, nil
		}
		opts.Page = resp.NextPage
	}
}

// AddLabels implements Client.
func (c *GitHubClient) AddLabels(ctx context.Context, res *Resource, names []string) error {
	if _, _, err := c.gh.Issues.AddLabelsToIssue(ctx, res.Owner, res.Repo, res.Number, names); err != nil {
		return fmt.Errorf("adding labels: %w", err)
	}
	return nil
}

// RemoveLabel implements Client. A label that is already gone is not an error.
func (c *GitHubClient) RemoveLabel(ctx context.Context, res *Resource, name string) error {
	// go-github does not escape the name, and governed labels contain "/".
	resp, err := c.gh.Issues.RemoveLabelForIssue(ctx, res.Owner, res.Repo, res.Number, url.PathEscape(name))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			clog.FromContext(ctx).With("label", name).Warn("Label already removed")
			return nil
		}
		return fmt.Errorf("removing label %q: %w", name, err)
	}
	return nil
}

// CreateComment implements Client.
func (c *GitHubClient) CreateComment(ctx context.Context, res *Resource, body string) error {
	if _, _, err := c.gh.Issues.CreateComment(ctx, res.Owner, res.Repo, res.Number, &github.IssueComment{
		Body: github.Ptr(body),
	}); err != nil {
		return fmt.Errorf("posting comment: %w", err)
	}
	return nil
}

// ListStatuses implements Client. Only the first page is read; GitHub
// returns the newest statuses first.
func (c *GitHubClient) ListStatuses(ctx context.Context, res *Resource, ref string) ([]CommitStatus, error) {
	statuses, _, err := c.gh.Repositories.ListStatuses(ctx, res.Owner, res.Repo, ref, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, fmt.Errorf("listing statuses: %w", err)
	}
	out := make([]CommitStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, CommitStatus{
			Context:     s.GetContext(),
			State:       s.GetState(),
			TargetURL:   s.GetTargetURL(),
			Description: s.GetDescription(),
		})
	}
	return out, nil
}

// CreateStatus implements Client.
func (c *GitHubClient) CreateStatus(ctx context.Context, res *Resource, ref string, status CommitStatus) error {
	rs := &github.RepoStatus{
		Context: github.Ptr(status.Context),
		State:   github.Ptr(status.State),
	}
	if status.TargetURL != "" {
		rs.TargetURL = github.Ptr(status.TargetURL)
	}
	if status.Description != "" {
		rs.Description = github.Ptr(status.Description)
	}
	if _, _, err := c.gh.Repositories.CreateStatus(ctx, res.Owner, res.Repo, ref, rs); err != nil {
		return fmt.Errorf("creating status: %w", err)
	}
	return nil
}

// HeadSHA implements Client. Comment events do not carry the head commit,
// so it is looked up with a single GraphQL query.
func (c *GitHubClient) HeadSHA(ctx context.Context, res *Resource) (string, error) {
	if !res.IsPullRequest() {
		return "", errors.New("head commit requested for an issue")
	}

	var query struct {
		Repository struct {
			PullRequest struct {
				HeadRefOid string
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}
	variables := map[string]any{
		"owner":  githubv4.String(res.Owner),
		"repo":   githubv4.String(res.Repo),
		"number": githubv4.Int(res.Number),
	}
	if err := c.gql.Query(ctx, &query, variables); err != nil {
		return "", fmt.Errorf("graphql query: %w", err)
	}
	if query.Repository.PullRequest.HeadRefOid == "" {
		return "", fmt.Errorf("no head commit for %s", res)
	}
	return query.Repository.PullRequest.HeadRefOid, nil
}
