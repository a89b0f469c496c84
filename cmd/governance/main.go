/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the governance GitHub Action.
//
// The action reads the webhook event GitHub Actions hands to the step, loads
// the governance configuration and reconciles the labels, comment and commit
// status of the issue or pull request that triggered it.
//
// Subcommands:
//   - run (default): apply every matching rule
//   - plan: print what run would change without writing to GitHub
//   - schema: print the JSON schema of the configuration file
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		clog.FatalContextf(ctx, "governance: %v", err)
	}
}
