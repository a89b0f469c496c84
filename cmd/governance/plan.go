/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"io"
	"strings"

	"chainguard.dev/governance/reconcilers/governancereconciler"
	"chainguard.dev/governance/reconcilers/labelreconciler"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

func newPlanTable(w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader([]string{"Prefix", "Add", "Remove", "Comment", "Status"}),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// renderPlans writes the plans of result as a markdown table.
func renderPlans(w io.Writer, result *governancereconciler.Result) error {
	if result.Skipped {
		_, err := fmt.Fprintf(w, "No governance rules apply to %s\n", result.Resource)
		return err
	}
	if _, err := fmt.Fprintf(w, "## %s\n\n", result.Resource); err != nil {
		return err
	}

	table := newPlanTable(w)
	for _, plan := range result.Plans {
		if err := table.Append(planRow(plan)); err != nil {
			return fmt.Errorf("rendering plan: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering plan: %w", err)
	}
	return nil
}

func planRow(plan *labelreconciler.Plan) []string {
	row := []string{plan.Prefix, orDash(strings.Join(plan.Add, ", ")), orDash(strings.Join(plan.Remove, ", ")), orDash(plan.Comment), "-"}
	if st := plan.Status; st != nil {
		row[4] = fmt.Sprintf("%s: %s", st.Context, st.State)
		if st.Description != "" {
			row[4] += fmt.Sprintf(" (%s)", st.Description)
		}
	}
	return row
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
