/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package governance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v75/github"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the configuration lives when no path is given.
const DefaultPath = ".github/governance.yml"

// Parse decodes a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decoding yaml: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads the configuration from a local checkout.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// LoadFromRepository fetches the configuration through the contents API.
// An empty ref reads the default branch.
func LoadFromRepository(ctx context.Context, gh *github.Client, owner, repo, path, ref string) (*Config, error) {
	clog.FromContext(ctx).With("path", path, "ref", ref).Debug("Fetching governance config")

	var opts *github.RepositoryContentGetOptions
	if ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref}
	}
	file, _, _, err := gh.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidConfig, path)
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return Parse([]byte(content))
}
