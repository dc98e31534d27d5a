package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const courseSchemaURL = "schema://course.json"

// courseSchema describes the stored course document. Config ranges are not
// enforced here: out-of-range values are clamped on load instead.
const courseSchema = `{
	"type": "object",
	"required": ["id", "rootPath", "videos", "progress", "config"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"rootPath": {"type": "string", "minLength": 1},
		"scannedAt": {"type": "string"},
		"checkpoint": {"type": "string"},
		"videos": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "path", "relativePath", "filename", "duration", "order"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"path": {"type": "string"},
					"relativePath": {"type": "string"},
					"filename": {"type": "string"},
					"duration": {"type": "number", "minimum": 0},
					"size": {"type": "integer", "minimum": 0},
					"format": {"type": "string"},
					"lastModified": {"type": "string"},
					"section": {"type": "string"},
					"order": {"type": "integer", "minimum": 0}
				}
			}
		},
		"progress": {
			"type": ["object", "null"],
			"additionalProperties": {
				"type": "object",
				"required": ["watched"],
				"properties": {
					"watched": {"type": "boolean"},
					"watchedAt": {"type": "string"},
					"notes": {"type": "string"},
					"lastPosition": {"type": "number", "minimum": 0}
				}
			}
		},
		"config": {
			"type": "object",
			"required": ["playbackSpeed", "defaultPracticeMultiplier"],
			"properties": {
				"playbackSpeed": {"type": "number"},
				"defaultPracticeMultiplier": {"type": "number"},
				"folderMultipliers": {
					"type": ["object", "null"],
					"additionalProperties": {"type": "number"}
				}
			}
		}
	}
}`

var (
	compiledOnce sync.Once
	compiled     *jsonschema.Schema
	compileErr   error
)

// validateCourseDocument checks raw stored JSON against the course schema.
func validateCourseDocument(raw []byte) error {
	schema, err := courseDocumentSchema()
	if err != nil {
		return fmt.Errorf("compile course schema: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func courseDocumentSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not raw bytes.
		var def any
		if compileErr = json.Unmarshal([]byte(courseSchema), &def); compileErr != nil {
			return
		}
		c := jsonschema.NewCompiler()
		if compileErr = c.AddResource(courseSchemaURL, def); compileErr != nil {
			return
		}
		compiled, compileErr = c.Compile(courseSchemaURL)
	})
	return compiled, compileErr
}
