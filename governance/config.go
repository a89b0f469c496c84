/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package governance

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration document cannot be used.
var ErrInvalidConfig = errors.New("invalid governance config")

// Config is the parsed governance document.
type Config struct {
	// Issue holds the rules applied to issues.
	Issue []Rule `yaml:"issue,omitempty" json:"issue,omitempty"`

	// PullRequest holds the rules applied to pull requests.
	PullRequest []Rule `yaml:"pull_request,omitempty" json:"pull_request,omitempty"`
}

// Rules returns the rule set for pull requests or issues.
func (c *Config) Rules(pullRequest bool) []Rule {
	if pullRequest {
		return c.PullRequest
	}
	return c.Issue
}

// Validate checks the fields every rule must carry.
func (c *Config) Validate() error {
	for i, r := range c.Issue {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%w: issue[%d]: %w", ErrInvalidConfig, i, err)
		}
	}
	for i, r := range c.PullRequest {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%w: pull_request[%d]: %w", ErrInvalidConfig, i, err)
		}
	}
	return nil
}

// Rule governs the labels under a single prefix.
type Rule struct {
	// Prefix is the label prefix, e.g. "triage" for "triage/accepted".
	Prefix string `yaml:"prefix" json:"prefix" jsonschema:"required"`

	// List holds the allowed values under Prefix.
	List []string `yaml:"list" json:"list" jsonschema:"required"`

	// Multiple controls whether more than one value may be attached at once.
	// Unset means true.
	Multiple *bool `yaml:"multiple,omitempty" json:"multiple,omitempty"`

	// Needs enables the needs/<prefix> marker label.
	Needs *Needs `yaml:"needs,omitempty" json:"needs,omitempty"`
}

// Validate checks the rule has a prefix, a list and a usable status config.
func (r Rule) Validate() error {
	if r.Prefix == "" {
		return errors.New("prefix is required")
	}
	if len(r.List) == 0 {
		return fmt.Errorf("prefix %q: list is required", r.Prefix)
	}
	if s := r.Status(); s != nil && s.Context == "" {
		return fmt.Errorf("prefix %q: needs.status.context is required", r.Prefix)
	}
	return nil
}

// AllowsMultiple reports whether several values may coexist under the prefix.
func (r Rule) AllowsMultiple() bool {
	return r.Multiple == nil || *r.Multiple
}

// Allows reports whether value is in the rule's list.
func (r Rule) Allows(value string) bool {
	return slices.Contains(r.List, value)
}

// Label returns the governed label name for value.
func (r Rule) Label(value string) string {
	return r.Prefix + "/" + value
}

// NeedsLabel returns the needs/<prefix> marker label name.
func (r Rule) NeedsLabel() string {
	return "needs/" + r.Prefix
}

// NeedsEnabled reports whether needs is configured as true or as an object.
func (r Rule) NeedsEnabled() bool {
	return r.Needs != nil && r.Needs.Enabled
}

// Comment returns the configured needs comment, or "".
func (r Rule) Comment() string {
	if !r.NeedsEnabled() {
		return ""
	}
	return r.Needs.Comment
}

// Status returns the configured needs status, or nil.
func (r Rule) Status() *StatusConfig {
	if !r.NeedsEnabled() {
		return nil
	}
	return r.Needs.Status
}

// Needs configures the needs/<prefix> marker label. In YAML it is either a
// boolean or an object with optional comment and status keys; an object
// always enables the marker.
type Needs struct {
	// Enabled is true for `needs: true` and for any object form.
	Enabled bool `yaml:"-" json:"-"`

	// Comment is posted when the marker is added to a freshly opened issue
	// or pull request.
	Comment string `yaml:"comment,omitempty" json:"comment,omitempty"`

	// Status configures a commit status reflecting whether a governed label
	// is present.
	Status *StatusConfig `yaml:"status,omitempty" json:"status,omitempty"`
}

// UnmarshalYAML accepts both the boolean and the object form.
func (n *Needs) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("needs: expected boolean or object: %w", err)
		}
		*n = Needs{Enabled: enabled}
		return nil

	case yaml.MappingNode:
		// Decode through an alias to avoid recursing into this method.
		type plain Needs
		var p plain
		if err := node.Decode(&p); err != nil {
			return fmt.Errorf("needs: %w", err)
		}
		*n = Needs(p)
		n.Enabled = true
		return nil

	default:
		return fmt.Errorf("needs: expected boolean or object at line %d", node.Line)
	}
}

// MarshalYAML emits the boolean form when only Enabled is set.
func (n Needs) MarshalYAML() (any, error) {
	if n.Comment == "" && n.Status == nil {
		return n.Enabled, nil
	}
	type plain Needs
	return plain(n), nil
}

// StatusConfig describes the commit status posted for a prefix.
type StatusConfig struct {
	// Context is the status context shown on the pull request.
	Context string `yaml:"context" json:"context" jsonschema:"required"`

	// URL is linked from the status when set.
	URL string `yaml:"url,omitempty" json:"url,omitempty"`

	// Description holds per-state descriptions. When present, an unresolved
	// prefix is reported as a failure instead of pending.
	Description *Descriptions `yaml:"description,omitempty" json:"description,omitempty"`
}

// Descriptions holds the status description for each resolved state.
type Descriptions struct {
	Success string `yaml:"success,omitempty" json:"success,omitempty"`
	Failure string `yaml:"failure,omitempty" json:"failure,omitempty"`
}
