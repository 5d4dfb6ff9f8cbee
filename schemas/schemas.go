// Package schemas embeds the JSON Schemas that YAML inputs are validated
// against before use.
package schemas

import _ "embed"

// CaseSchemaJSON is the JSON Schema for case YAML files.
//
//go:embed case.schema.json
var CaseSchemaJSON string
