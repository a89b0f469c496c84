/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package governance holds the label governance configuration.
//
// A configuration document lists, separately for issues and pull requests,
// the label prefixes that are governed by slash commands:
//
//	issue:
//	  - prefix: triage
//	    list: [accepted, rejected]
//	    multiple: false
//	    needs:
//	      comment: Thanks for opening this issue! A maintainer will triage it soon.
//	pull_request:
//	  - prefix: kind
//	    list: [feature, fix, chore, docs]
//	    needs:
//	      status:
//	        context: Kind
//	        url: https://example.com/docs/kind
//	        description:
//	          success: Kind label present
//	          failure: Comment /kind <value> to label this PR
//
// The needs key accepts either a boolean or an object; see Needs.
package governance
