/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"chainguard.dev/governance/governance"
	"chainguard.dev/governance/reconcilers/governancereconciler"
	"chainguard.dev/governance/reconcilers/labelreconciler"
	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
)

func rootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "governance",
		Short: "Govern issue and pull request labels through slash commands",
		Long: `governance reconciles the labels of the issue or pull request that
triggered the current GitHub Actions run against the rules in the governance
configuration file.

Comments such as "/triage accepted" or "/kind-remove fix" add and remove
labels under a governed prefix; "needs/<prefix>" marks prefixes that still
need a value.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.ErrOrStderr(), f, false, nil)
		},
	}

	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "Governance configuration path (overrides INPUT_CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&f.eventName, "event-name", "", "Webhook event name (overrides GITHUB_EVENT_NAME)")
	cmd.PersistentFlags().StringVar(&f.eventPath, "event-path", "", "Webhook payload path (overrides GITHUB_EVENT_PATH)")
	cmd.PersistentFlags().BoolVar(&f.local, "local", false, "Read the configuration from the local checkout")

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Apply the governance rules to the triggering issue or pull request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.ErrOrStderr(), f, false, nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "plan",
		Short: "Print the changes run would make without applying them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.ErrOrStderr(), f, true, cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the governance configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeSchema(cmd.OutOrStdout())
		},
	})

	return cmd
}

func run(ctx context.Context, logOut io.Writer, f *flags, dryRun bool, out io.Writer) error {
	cfg, err := loadConfig(ctx, envconfig.OsLookuper(), f)
	if err != nil {
		return err
	}
	logger, err := newLogger(logOut, cfg.LogLevel, cfg.RunnerDebug)
	if err != nil {
		return err
	}
	ctx = clog.WithLogger(ctx, logger)

	rt, err := newRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.flush(ctx)

	opts := []labelreconciler.Option{labelreconciler.WithObserver(rt.metrics)}
	if dryRun {
		opts = append(opts, labelreconciler.WithDryRun())
	}
	result, err := governancereconciler.New(rt.client, governancereconciler.WithLabelOptions(opts...)).
		Reconcile(ctx, rt.event, rt.rules)
	if err != nil {
		return err
	}

	if out != nil {
		return renderPlans(out, result)
	}
	return nil
}

func writeSchema(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(governance.Schema()); err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	return nil
}
