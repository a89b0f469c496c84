/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package command

import (
	"iter"
	"slices"
	"strings"
)

// Command is a single slash command found in a body.
type Command struct {
	// Text is the full matched line, starting with "/".
	Text string

	// Args are the space separated tokens following the prefix the command
	// was looked up with. Commands returned by Parse have no args; Set.Prefix
	// derives them. Args is never nil.
	Args []string
}

// New returns a Command for text with args computed relative to prefix.
// When text does not continue with prefix followed by a space, Args is empty.
func New(text, prefix string) Command {
	cmd := Command{Text: text, Args: []string{}}
	rest, ok := strings.CutPrefix(text, prefix+" ")
	if !ok {
		return cmd
	}
	if rest = strings.TrimSpace(rest); rest != "" {
		cmd.Args = strings.Split(rest, " ")
	}
	return cmd
}

// Match reports whether line is a command and returns it. A line qualifies
// when it starts with exactly one "/" followed by at least one character.
func Match(line string) (Command, bool) {
	if len(line) < 2 || line[0] != '/' || line[1] == '/' {
		return Command{}, false
	}
	return Command{Text: line, Args: []string{}}, true
}

// Set is an ordered collection of commands, in order of appearance.
type Set struct {
	commands []Command
}

// NewSet returns a Set holding commands in the given order.
func NewSet(commands ...Command) Set {
	return Set{commands: slices.Clone(commands)}
}

// Parse extracts every command from body.
func Parse(body string) Set {
	return Scan(Lines(StripComments(NormalizeNewlines(body))))
}

// Scan matches every line of the sequence and collects the commands.
func Scan(lines iter.Seq[string]) Set {
	var cmds []Command
	for line := range lines {
		if cmd, ok := Match(line); ok {
			cmds = append(cmds, cmd)
		}
	}
	return Set{commands: cmds}
}

// Len returns the number of commands in the set.
func (s Set) Len() int {
	return len(s.commands)
}

// All returns the commands in order of appearance.
func (s Set) All() []Command {
	return slices.Clone(s.commands)
}

// Prefix returns every command whose text starts with start, with Args
// computed relative to start followed by a space. Matching is exact and
// case-sensitive.
func (s Set) Prefix(start string) []Command {
	var out []Command
	for _, cmd := range s.commands {
		if strings.HasPrefix(cmd.Text, start) {
			out = append(out, New(cmd.Text, start))
		}
	}
	return out
}

// Texts returns the raw text of every command.
func (s Set) Texts() []string {
	out := make([]string, 0, len(s.commands))
	for _, cmd := range s.commands {
		out = append(out, cmd.Text)
	}
	return out
}
