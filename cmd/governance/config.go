/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"chainguard.dev/governance/event"
	"chainguard.dev/governance/governance"
	"chainguard.dev/governance/metrics"
	"chainguard.dev/governance/reconcilers/githubreconciler"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v75/github"
	"github.com/sethvargo/go-envconfig"
)

// Config source values.
const (
	sourceRepository = "repository"
	sourceLocal      = "local"
)

type config struct {
	Token          string `env:"GITHUB_TOKEN"`
	AppID          int64  `env:"GITHUB_APP_ID"`
	InstallationID int64  `env:"GITHUB_INSTALLATION_ID"`
	PrivateKey     string `env:"GITHUB_APP_PRIVATE_KEY"`

	EventName  string `env:"GITHUB_EVENT_NAME"`
	EventPath  string `env:"GITHUB_EVENT_PATH"`
	APIURL     string `env:"GITHUB_API_URL,default=https://api.github.com/"`
	GraphQLURL string `env:"GITHUB_GRAPHQL_URL"`

	// Action inputs.
	ConfigPath   string `env:"INPUT_CONFIG_PATH"`
	ConfigSource string `env:"INPUT_CONFIG_SOURCE,default=repository"`

	LogLevel        string `env:"LOG_LEVEL,default=info"`
	RunnerDebug     bool   `env:"RUNNER_DEBUG,default=false"`
	MetricsTextfile string `env:"METRICS_TEXTFILE"`
}

// flags override the environment when set.
type flags struct {
	configPath string
	eventName  string
	eventPath  string
	local      bool
}

func loadConfig(ctx context.Context, lookuper envconfig.Lookuper, f *flags) (*config, error) {
	var cfg config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	if f != nil {
		if f.configPath != "" {
			cfg.ConfigPath = f.configPath
		}
		if f.eventName != "" {
			cfg.EventName = f.eventName
		}
		if f.eventPath != "" {
			cfg.EventPath = f.eventPath
		}
		if f.local {
			cfg.ConfigSource = sourceLocal
		}
	}

	switch cfg.ConfigSource {
	case sourceRepository, sourceLocal:
	default:
		return nil, fmt.Errorf("unknown config source %q", cfg.ConfigSource)
	}
	if cfg.ConfigPath == "" {
		return nil, errors.New("config path is required (INPUT_CONFIG_PATH or --config)")
	}
	if cfg.EventName == "" || cfg.EventPath == "" {
		return nil, fmt.Errorf("event name and path are required (GITHUB_EVENT_NAME, GITHUB_EVENT_PATH)")
	}
	return &cfg, nil
}

func newLogger(w io.Writer, level string, debug bool) (*clog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	if debug {
		lvl = slog.LevelDebug
	}
	return clog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// runtime holds everything a subcommand needs.
type runtime struct {
	cfg     *config
	event   *event.Context
	rules   *governance.Config
	client  githubreconciler.Client
	metrics *metrics.Metrics
}

func newRuntime(ctx context.Context, cfg *config) (*runtime, error) {
	evt, err := event.Load(cfg.EventName, cfg.EventPath)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	tr, err := githubreconciler.Auth{
		Token:          cfg.Token,
		AppID:          cfg.AppID,
		InstallationID: cfg.InstallationID,
		PrivateKey:     []byte(cfg.PrivateKey),
	}.Transport(m.Transport(http.DefaultTransport))
	if err != nil {
		return nil, err
	}
	gh, gql, err := githubreconciler.NewClients(&http.Client{Transport: tr}, cfg.APIURL, cfg.GraphQLURL)
	if err != nil {
		return nil, err
	}

	rules, err := loadRules(ctx, cfg, gh, evt)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:     cfg,
		event:   evt,
		rules:   rules,
		client:  m.Client(githubreconciler.NewGitHubClient(gh, githubreconciler.WithGraphQLClient(gql))),
		metrics: m,
	}, nil
}

func loadRules(ctx context.Context, cfg *config, gh *github.Client, evt *event.Context) (*governance.Config, error) {
	if cfg.ConfigSource == sourceLocal {
		return governance.LoadFile(cfg.ConfigPath)
	}
	// Rules are always read from the default branch.
	return governance.LoadFromRepository(ctx, gh, evt.Owner, evt.Repo, cfg.ConfigPath, "")
}

// flush writes the metrics textfile when configured.
func (r *runtime) flush(ctx context.Context) {
	if r.cfg.MetricsTextfile == "" {
		return
	}
	if err := r.metrics.WriteTextfile(r.cfg.MetricsTextfile); err != nil {
		clog.FromContext(ctx).With("path", r.cfg.MetricsTextfile).Warnf("Failed to write metrics: %v", err)
	}
}
