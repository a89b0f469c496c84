/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package command

import (
	"iter"
	"regexp"
	"strings"
)

// htmlComment matches <!-- ... --> regions, non-greedy and across newlines.
var htmlComment = regexp.MustCompile(`(?s)<!--.*?-->`)

// NormalizeNewlines rewrites "\r\n" and lone "\r" line endings to "\n".
func NormalizeNewlines(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.ReplaceAll(body, "\r", "\n")
}

// StripComments removes every HTML comment region from body.
func StripComments(body string) string {
	return htmlComment.ReplaceAllString(body, "")
}

// Lines returns the lines of body as a lazy sequence. The sequence can be
// ranged over any number of times.
func Lines(body string) iter.Seq[string] {
	return strings.SplitSeq(body, "\n")
}
