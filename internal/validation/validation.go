// Package validation checks the structured parts of request payloads
// (workout exercises, history sets, completed-set snapshots) against
// embedded JSON schemas.
package validation

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kaptinlin/jsonschema"
)

// Schema names
const (
	Exercises     = "exercises"
	Sets          = "sets"
	CompletedSets = "completed_sets"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemas = mustCompile(Exercises, Sets, CompletedSets)

func mustCompile(names ...string) map[string]*jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiled := make(map[string]*jsonschema.Schema, len(names))

	for _, name := range names {
		data, err := schemaFS.ReadFile("schemas/" + name + ".json")
		if err != nil {
			panic(fmt.Sprintf("validation: missing schema %s: %v", name, err))
		}
		schema, err := compiler.Compile(data)
		if err != nil {
			panic(fmt.Sprintf("validation: failed to compile schema %s: %v", name, err))
		}
		compiled[name] = schema
	}
	return compiled
}

// Validate checks raw JSON against the named schema. The returned error
// lists every violation, sorted for stable messages.
func Validate(name string, raw json.RawMessage) error {
	schema, ok := schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema: %s", name)
	}

	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("%s is not valid JSON: %w", name, err)
	}

	result := schema.Validate(instance)
	if result.IsValid() {
		return nil
	}

	var errorMessages []string
	for field, evalErr := range result.Errors {
		errorMessages = append(errorMessages, fmt.Sprintf("%s: %s", field, evalErr.Error()))
	}
	sort.Strings(errorMessages)
	return fmt.Errorf("invalid %s: %s", name, strings.Join(errorMessages, "; "))
}
