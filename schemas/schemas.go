// Package schemas embeds the JSON Schemas used to validate project files.
package schemas

import _ "embed"

//go:embed gavel-config.schema.json
var ConfigSchemaJSON string
