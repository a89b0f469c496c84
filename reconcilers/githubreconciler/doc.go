/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package githubreconciler holds the GitHub plumbing shared by the
// reconcilers: the Resource being reconciled, the Client interface the
// reconcilers call, and its go-github backed implementation.
//
// # Client
//
// Client covers the calls label governance makes: issue labels, comments and
// commit statuses. The testing subpackage provides an in-memory Client.
//
//	gh := github.NewClient(httpClient)
//	client := githubreconciler.NewGitHubClient(gh)
//	labels, err := client.ListLabels(ctx, res)
//
// # Authentication
//
// Auth builds the HTTP transport for either a token (GITHUB_TOKEN in
// Actions) or a GitHub App installation:
//
//	rt, err := githubreconciler.Auth{Token: token}.Transport(http.DefaultTransport)
//	gh := github.NewClient(&http.Client{Transport: rt})
package githubreconciler
