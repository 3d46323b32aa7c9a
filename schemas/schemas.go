// Package schemas embeds the JSON Schemas for documents the CLI reads from disk.
package schemas

import "embed"

// Schema file names.
const (
	Resume = "resume.schema.json"
	Job    = "job.schema.json"
)

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
