/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package governance

import (
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the configuration document. It documents
// the format for editors; Parse does not validate against it.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
	}
	s := r.Reflect(&Config{})
	s.Title = "Label governance configuration"
	return s
}

// JSONSchema describes the boolean-or-object form of needs.
func (Needs) JSONSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
		ExpandedStruct:             true,
	}
	type object struct {
		Comment string        `json:"comment,omitempty"`
		Status  *StatusConfig `json:"status,omitempty"`
	}
	obj := r.Reflect(&object{})
	obj.Version = ""
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "boolean"},
			obj,
		},
	}
}
