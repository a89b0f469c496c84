/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package event

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chainguard.dev/governance/reconcilers/githubreconciler"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const repo = `"repository": {"name": "repo", "owner": {"login": "owner"}}`

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		event   string
		payload string
		want    *Context
		wantErr error
	}{{
		name:  "opened issue",
		event: "issues",
		payload: `{"action": "opened", ` + repo + `,
			"issue": {"number": 1, "body": "/triage accepted", "labels": [{"name": "needs/triage"}]},
			"sender": {"login": "octocat", "type": "User"}}`,
		want: &Context{
			Kind: KindIssue, Name: "issues", Action: "opened",
			Owner: "owner", Repo: "repo", Number: 1,
			Body:   "/triage accepted",
			Sender: "octocat", SenderType: "User",
		},
	}, {
		name:  "pull request",
		event: "pull_request",
		payload: `{"action": "edited", ` + repo + `,
			"pull_request": {"number": 7, "body": "fixes things", "head": {"sha": "abc"}, "labels": []},
			"sender": {"login": "octocat"}}`,
		want: &Context{
			Kind: KindPullRequest, Name: "pull_request", Action: "edited",
			Owner: "owner", Repo: "repo", Number: 7,
			Body: "fixes things", HeadSHA: "abc", Sender: "octocat",
		},
	}, {
		name:  "pull request target",
		event: "pull_request_target",
		payload: `{"action": "opened", ` + repo + `,
			"pull_request": {"number": 8, "head": {"sha": "def"}}}`,
		want: &Context{
			Kind: KindPullRequest, Name: "pull_request_target", Action: "opened",
			Owner: "owner", Repo: "repo", Number: 8, HeadSHA: "def",
		},
	}, {
		name:  "comment on pull request",
		event: "issue_comment",
		payload: `{"action": "created", ` + repo + `,
			"issue": {"number": 3, "body": "/kind chore", "pull_request": {"url": "https://api.github.com/repos/owner/repo/pulls/3"}, "labels": [{"name": "needs/kind"}]},
			"comment": {"id": 1, "body": "/kind fix"},
			"sender": {"login": "octocat", "type": "User"}}`,
		want: &Context{
			Kind: KindComment, Name: "issue_comment", Action: "created",
			Owner: "owner", Repo: "repo", Number: 3, OnPullRequest: true,
			Body:   "/kind fix",
			Sender: "octocat", SenderType: "User",
		},
	}, {
		name:  "comment on issue",
		event: "issue_comment",
		payload: `{"action": "created", ` + repo + `,
			"issue": {"number": 4},
			"comment": {"id": 1, "body": "/triage accepted"}}`,
		want: &Context{
			Kind: KindComment, Name: "issue_comment", Action: "created",
			Owner: "owner", Repo: "repo", Number: 4, Body: "/triage accepted",
		},
	}, {
		name:    "issue event without issue",
		event:   "issues",
		payload: `{"action": "opened", ` + repo + `}`,
		wantErr: ErrNoContext,
	}, {
		name:    "pull request event without pull request",
		event:   "pull_request",
		payload: `{"action": "opened", ` + repo + `}`,
		wantErr: ErrNoContext,
	}, {
		name:    "unsupported event",
		event:   "push",
		payload: `{}`,
		wantErr: ErrUnsupportedEvent,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.event, []byte(tt.payload))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse("issues", []byte("{")); err == nil {
		t.Error("Parse() expected error for malformed payload")
	}
}

func TestParseCommentActions(t *testing.T) {
	for action, wantIgnored := range map[string]bool{
		"created": false,
		"edited":  false,
		"deleted": true,
	} {
		t.Run(action, func(t *testing.T) {
			payload := `{"action": "` + action + `", ` + repo + `,
				"issue": {"number": 4},
				"comment": {"id": 1, "body": "/triage accepted"},
				"sender": {"login": "octocat", "type": "User"}}`
			got, err := Parse("issue_comment", []byte(payload))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got.Ignored() != wantIgnored {
				t.Errorf("Ignored() = %t, want %t", got.Ignored(), wantIgnored)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	payload := `{"action": "opened", ` + repo + `, "issue": {"number": 1}}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := Load("issues", path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Number != 1 || !got.IsOpened() {
		t.Errorf("Load() = %+v", got)
	}

	if _, err := Load("issues", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestContextHelpers(t *testing.T) {
	tests := []struct {
		name        string
		ctx         Context
		wantPR      bool
		wantOpened  bool
		wantBot     bool
		wantIgnored bool
	}{
		{name: "opened issue", ctx: Context{Kind: KindIssue, Action: "opened"}, wantOpened: true},
		{name: "edited issue", ctx: Context{Kind: KindIssue, Action: "edited"}},
		{name: "reopened pr", ctx: Context{Kind: KindPullRequest, Action: "reopened"}, wantPR: true},
		{name: "comment on issue", ctx: Context{Kind: KindComment, Action: "created"}},
		{name: "comment on pr", ctx: Context{Kind: KindComment, Action: "created", OnPullRequest: true}, wantPR: true},
		{name: "edited comment", ctx: Context{Kind: KindComment, Action: "edited"}},
		{name: "deleted comment", ctx: Context{Kind: KindComment, Action: "deleted"}, wantIgnored: true},
		{name: "comment without action", ctx: Context{Kind: KindComment}, wantIgnored: true},
		{name: "bot type", ctx: Context{Kind: KindComment, Action: "created", SenderType: "Bot"}, wantBot: true, wantIgnored: true},
		{name: "bot login", ctx: Context{Kind: KindComment, Action: "edited", Sender: "governance[bot]"}, wantBot: true, wantIgnored: true},
		{name: "pr opened by bot", ctx: Context{Kind: KindPullRequest, Action: "opened", Sender: "dependabot[bot]", SenderType: "Bot"}, wantPR: true, wantOpened: true, wantBot: true},
		{name: "issue labeled by bot", ctx: Context{Kind: KindIssue, Action: "labeled", SenderType: "Bot"}, wantBot: true},
		{name: "human", ctx: Context{Kind: KindComment, Action: "created", Sender: "robot", SenderType: "User"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ctx.IsPullRequest(); got != tt.wantPR {
				t.Errorf("IsPullRequest() = %t, want %t", got, tt.wantPR)
			}
			if got := tt.ctx.IsOpened(); got != tt.wantOpened {
				t.Errorf("IsOpened() = %t, want %t", got, tt.wantOpened)
			}
			if got := tt.ctx.FromBot(); got != tt.wantBot {
				t.Errorf("FromBot() = %t, want %t", got, tt.wantBot)
			}
			if got := tt.ctx.Ignored(); got != tt.wantIgnored {
				t.Errorf("Ignored() = %t, want %t", got, tt.wantIgnored)
			}
		})
	}
}

func TestResource(t *testing.T) {
	c := &Context{Kind: KindComment, OnPullRequest: true, Owner: "o", Repo: "r", Number: 5}
	want := &githubreconciler.Resource{Owner: "o", Repo: "r", Number: 5, Type: githubreconciler.ResourceTypePullRequest}
	if diff := cmp.Diff(want, c.Resource()); diff != "" {
		t.Errorf("Resource() mismatch (-want +got):\n%s", diff)
	}
	if got := (&Context{Kind: KindIssue}).Resource().Type; got != githubreconciler.ResourceTypeIssue {
		t.Errorf("Resource().Type = %v, want issue", got)
	}
}
