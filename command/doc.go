/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package command extracts slash commands from issue, pull request and
// comment bodies.
//
// Extraction runs in three stages that can be used independently:
//
//  1. Text transforms: NormalizeNewlines and StripComments clean the raw body.
//     Anything inside an HTML comment (<!-- ... -->) is dropped, which lets
//     templates and quoted text carry commands without re-triggering them.
//  2. Lines splits the cleaned body into a lazy sequence of candidate lines.
//  3. Match turns a single line into a Command when it starts with exactly
//     one "/" followed by at least one character.
//
// Parse chains all three and returns a Set:
//
//	set := command.Parse(comment.GetBody())
//	for _, cmd := range set.Prefix("/triage") {
//	    fmt.Println(cmd.Text, cmd.Args)
//	}
//
// For a body containing "/triage accepted", the loop above prints
// "/triage accepted [accepted]".
package command
