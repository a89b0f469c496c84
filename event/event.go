/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package event

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"chainguard.dev/governance/reconcilers/githubreconciler"
	"github.com/google/go-github/v75/github"
)

var (
	// ErrNoContext is returned when the payload carries neither an issue
	// nor a pull request.
	ErrNoContext = errors.New("could not get pull_request or issue from context")

	// ErrUnsupportedEvent is returned for event names other than issues,
	// pull_request, pull_request_target and issue_comment.
	ErrUnsupportedEvent = errors.New("unsupported event")
)

// Kind identifies the payload shape.
type Kind int

const (
	KindIssue Kind = iota + 1
	KindPullRequest
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindIssue:
		return "issue"
	case KindPullRequest:
		return "pull_request"
	case KindComment:
		return "comment"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Context is the resolved event.
type Context struct {
	Kind Kind

	// Name is the webhook event name, e.g. "issue_comment".
	Name   string
	Action string

	Owner  string
	Repo   string
	Number int

	// OnPullRequest is set for comments on pull requests.
	OnPullRequest bool

	// Body is the comment body for comments, otherwise the issue or pull
	// request description.
	Body string

	// HeadSHA is the pull request head commit. Comment payloads do not
	// carry it.
	HeadSHA string

	Sender     string
	SenderType string
}

var supported = map[string]bool{
	"issues":              true,
	"issue_comment":       true,
	"pull_request":        true,
	"pull_request_target": true,
}

// Parse decodes payload as the webhook event name.
func Parse(name string, payload []byte) (*Context, error) {
	if !supported[name] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEvent, name)
	}
	raw, err := github.ParseWebHook(name, payload)
	if err != nil {
		return nil, fmt.Errorf("parsing %s payload: %w", name, err)
	}

	switch e := raw.(type) {
	case *github.IssueCommentEvent:
		if e.Issue == nil {
			return nil, ErrNoContext
		}
		c := newContext(KindComment, name, e.GetAction(), e.Repo, e.Sender)
		c.Number = e.Issue.GetNumber()
		c.OnPullRequest = e.Issue.IsPullRequest()
		c.Body = e.GetComment().GetBody()
		return c, nil

	case *github.IssuesEvent:
		if e.Issue == nil {
			return nil, ErrNoContext
		}
		c := newContext(KindIssue, name, e.GetAction(), e.Repo, e.Sender)
		c.Number = e.Issue.GetNumber()
		c.Body = e.Issue.GetBody()
		return c, nil

	case *github.PullRequestEvent:
		return fromPullRequest(name, e.GetAction(), e.PullRequest, e.Repo, e.Sender)

	case *github.PullRequestTargetEvent:
		return fromPullRequest(name, e.GetAction(), e.PullRequest, e.Repo, e.Sender)

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedEvent, raw)
	}
}

// Load reads the payload at path, as GitHub Actions provides it through
// GITHUB_EVENT_PATH.
func Load(name, path string) (*Context, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event payload: %w", err)
	}
	return Parse(name, payload)
}

func fromPullRequest(name, action string, pr *github.PullRequest, repo *github.Repository, sender *github.User) (*Context, error) {
	if pr == nil {
		return nil, ErrNoContext
	}
	c := newContext(KindPullRequest, name, action, repo, sender)
	c.Number = pr.GetNumber()
	c.Body = pr.GetBody()
	c.HeadSHA = pr.GetHead().GetSHA()
	return c, nil
}

func newContext(kind Kind, name, action string, repo *github.Repository, sender *github.User) *Context {
	return &Context{
		Kind:       kind,
		Name:       name,
		Action:     action,
		Owner:      repo.GetOwner().GetLogin(),
		Repo:       repo.GetName(),
		Sender:     sender.GetLogin(),
		SenderType: sender.GetType(),
	}
}

// IsPullRequest reports whether the event concerns a pull request, directly
// or through a comment.
func (c *Context) IsPullRequest() bool {
	return c.Kind == KindPullRequest || (c.Kind == KindComment && c.OnPullRequest)
}

// IsOpened reports whether the issue or pull request was just opened.
func (c *Context) IsOpened() bool {
	return c.Action == "opened"
}

// Ignored reports whether the event carries nothing to govern: comments
// that were not created or edited, and comments written by bots, including
// this action's own. Issue and pull request events from bots are governed
// so that automated pull requests still get their needs label and status.
func (c *Context) Ignored() bool {
	if c.Kind != KindComment {
		return false
	}
	switch c.Action {
	case "created", "edited":
		return c.FromBot()
	default:
		return true
	}
}

// FromBot reports whether the sender is a bot account.
func (c *Context) FromBot() bool {
	return c.SenderType == "Bot" || strings.HasSuffix(c.Sender, "[bot]")
}

// Resource returns the issue or pull request the event concerns.
func (c *Context) Resource() *githubreconciler.Resource {
	t := githubreconciler.ResourceTypeIssue
	if c.IsPullRequest() {
		t = githubreconciler.ResourceTypePullRequest
	}
	return &githubreconciler.Resource{
		Owner:  c.Owner,
		Repo:   c.Repo,
		Number: c.Number,
		Type:   t,
	}
}
