// internal/server/schema.go
package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// analysisRequestSchema describes the body of POST /api/v1/analyses.
// Document content is base64, as encoding/json emits []byte.
var analysisRequestSchema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]interface{}{
		"companyName": map[string]interface{}{"type": "string", "maxLength": 200},
		"documents": map[string]interface{}{
			"type":     "array",
			"maxItems": 20,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"name"},
				"properties": map[string]interface{}{
					"name":        map[string]interface{}{"type": "string", "minLength": 1},
					"contentType": map[string]interface{}{"type": "string"},
					"storageKey":  map[string]interface{}{"type": "string"},
					"content":     map[string]interface{}{"type": "string"},
				},
			},
		},
		"voiceData": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"duration":   map[string]interface{}{"type": "number", "minimum": 0},
				"transcript": map[string]interface{}{"type": "string"},
			},
		},
	},
}

var analysisRequestLoader = gojsonschema.NewGoLoader(analysisRequestSchema)

// validateAnalysisRequest checks a raw request body against the schema and
// returns a single message listing every violation.
func validateAnalysisRequest(body []byte) error {
	result, err := gojsonschema.Validate(analysisRequestLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("request body is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}
	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return errors.New(strings.Join(errs, "; "))
}
