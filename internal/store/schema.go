package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// stateSchema describes the persisted learner state. Every field is
// optional so that snapshots written by older builds still load (missing
// fields fall back to defaults during the merge), but a field that is
// present must have the right shape.
const stateSchema = `{
  "type": "object",
  "properties": {
    "xp": {"type": "integer", "minimum": 0},
    "level": {"type": "integer", "minimum": 1},
    "streak": {"type": "integer", "minimum": 0},
    "lastActiveDate": {"type": ["string", "null"]},
    "sourcesAwarded": {
      "type": "object",
      "additionalProperties": {"type": "boolean"}
    },
    "lessons": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "completed": {"type": "boolean"}
        }
      }
    }
  }
}`

var (
	compileOnce   sync.Once
	compiledState *jsonschema.Schema
	compileErr    error
)

// validateState checks raw JSON against the state schema. A non-nil error
// means the snapshot is corrupt and must be treated as absent.
func validateState(raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledStateSchema()
	if err != nil {
		return fmt.Errorf("compile state schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// compiledStateSchema compiles the state schema once and caches it.
func compiledStateSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(stateSchema)))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://state.json", doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}

		compiledState, compileErr = c.Compile("schema://state.json")
	})
	return compiledState, compileErr
}
