/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labelreconciler

import (
	"slices"

	"chainguard.dev/governance/command"
	"chainguard.dev/governance/governance"
	"chainguard.dev/governance/reconcilers/githubreconciler"
)

// Input is everything Compute needs to plan one prefix.
type Input struct {
	Rule     governance.Rule
	Commands command.Set

	// Labels are the labels attached when the run started.
	Labels []string

	// Opened is true when the run was triggered by a freshly opened issue
	// or pull request.
	Opened bool
}

// Plan holds the side effects for one prefix.
type Plan struct {
	Prefix string

	// Add is sent as a single add-labels call when non-empty.
	Add []string

	// Remove holds one delete call per name.
	Remove []string

	// Comment is posted when non-empty.
	Comment string

	// Status is posted when non-nil. Context is always set.
	Status *githubreconciler.CommitStatus

	// Governed is true when a governed label remains after the plan is applied.
	Governed bool
}

// Empty reports whether the plan has no side effects.
func (p *Plan) Empty() bool {
	return len(p.Add) == 0 && len(p.Remove) == 0 && p.Comment == "" && p.Status == nil
}

// Result applies the plan to labels and returns the resulting set.
func (p *Plan) Result(labels []string) []string {
	out := make([]string, 0, len(labels)+len(p.Add))
	for _, l := range labels {
		if !slices.Contains(p.Remove, l) && !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	for _, l := range p.Add {
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

// Compute plans the reconciliation of in.Rule against in.Labels.
func Compute(in Input) *Plan {
	rule := in.Rule
	plan := &Plan{Prefix: rule.Prefix}

	attached := make(map[string]bool, len(in.Labels))
	for _, l := range in.Labels {
		attached[l] = true
	}

	// Governed labels currently attached, in list order.
	var current []string
	for _, v := range rule.List {
		if l := rule.Label(v); attached[l] && !slices.Contains(current, l) {
			current = append(current, l)
		}
	}
	hasNeeds := attached[rule.NeedsLabel()]

	remove := func(l string) {
		if !slices.Contains(plan.Remove, l) {
			plan.Remove = append(plan.Remove, l)
		}
	}

	// Removal directives.
	excluded := map[string]bool{}
	for _, cmd := range in.Commands.Prefix("/" + rule.Prefix + "-remove") {
		for _, v := range cmd.Args {
			if !rule.Allows(v) {
				continue
			}
			l := rule.Label(v)
			excluded[l] = true
			if attached[l] {
				remove(l)
			}
		}
	}

	// Apply directives, in order of appearance.
	var desired []string
	for _, cmd := range in.Commands.Prefix("/" + rule.Prefix) {
		for _, v := range cmd.Args {
			if !rule.Allows(v) {
				continue
			}
			if l := rule.Label(v); !excluded[l] && !slices.Contains(desired, l) {
				desired = append(desired, l)
			}
		}
	}

	if rule.AllowsMultiple() {
		for _, l := range desired {
			if !attached[l] {
				plan.Add = append(plan.Add, l)
			}
		}
	} else {
		keep := ""
		if len(desired) > 0 {
			// The most recent value wins.
			keep = desired[len(desired)-1]
			if !attached[keep] {
				plan.Add = append(plan.Add, keep)
			}
		} else {
			for _, l := range current {
				if !slices.Contains(plan.Remove, l) {
					keep = l
					break
				}
			}
		}
		for _, l := range current {
			if l != keep {
				remove(l)
			}
		}
	}

	plan.Governed = len(plan.Add) > 0
	for _, l := range current {
		if !slices.Contains(plan.Remove, l) {
			plan.Governed = true
			break
		}
	}

	newNeeds := false
	switch {
	case plan.Governed && hasNeeds:
		remove(rule.NeedsLabel())
	case !plan.Governed && !hasNeeds && (rule.NeedsEnabled() || needsRequested(in.Commands, rule.Prefix)):
		// Add is empty here: any governed addition sets Governed.
		plan.Add = append(plan.Add, rule.NeedsLabel())
		newNeeds = true
	}

	if c := rule.Comment(); c != "" && newNeeds && in.Opened {
		plan.Comment = c
	}

	if s := rule.Status(); s != nil {
		plan.Status = status(s, plan.Governed)
	}
	return plan
}

// needsRequested reports whether a "/needs <prefix>" directive names prefix.
func needsRequested(cmds command.Set, prefix string) bool {
	for _, cmd := range cmds.Prefix("/needs") {
		if slices.Contains(cmd.Args, prefix) {
			return true
		}
	}
	return false
}

func status(cfg *governance.StatusConfig, governed bool) *githubreconciler.CommitStatus {
	st := &githubreconciler.CommitStatus{
		Context:   cfg.Context,
		TargetURL: cfg.URL,
	}
	switch {
	case governed:
		st.State = githubreconciler.StateSuccess
		if cfg.Description != nil {
			st.Description = cfg.Description.Success
		}
	case cfg.Description != nil:
		st.State = githubreconciler.StateFailure
		st.Description = cfg.Description.Failure
	default:
		st.State = githubreconciler.StatePending
	}
	return st
}
