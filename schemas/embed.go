// Package schemas holds the JSON schemas for documents the CLI imports
// from disk.
package schemas

import "embed"

// Schema file names.
const (
	CVContent = "cv_content.schema.json"
	CreateCV  = "create_cv.schema.json"
	Job       = "job.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// All lists the schema file names.
func All() []string {
	return []string{CVContent, CreateCV, Job}
}
