// Package evaluation checks the evaluation record attached to evaluated submissions.
package evaluation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrMissingEvaluation indicates an evaluation record was required but absent.
var ErrMissingEvaluation = errors.New("evaluation data missing")

const schemaURL = "elitebuilders://schemas/evaluation.json"

const schemaText = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["llm_evaluation", "repo_test_results", "scores", "feedback"],
  "properties": {
    "llm_evaluation": {"type": ["object", "null"]},
    "repo_test_results": {
      "type": ["object", "null"],
      "properties": {
        "passed": {"type": "boolean"},
        "tests_passed": {"type": "integer", "minimum": 0},
        "tests_failed": {"type": "integer", "minimum": 0}
      }
    },
    "scores": {
      "type": ["object", "null"],
      "additionalProperties": {
        "type": ["number", "object"],
        "properties": {
          "score": {"type": ["number", "null"]},
          "weight": {"type": ["number", "null"]},
          "justification": {"type": ["string", "null"]}
        }
      }
    },
    "feedback": {"type": ["string", "null"]}
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = jsonschema.CompileString(schemaURL, schemaText)
	})
	return compiled, compileErr
}

// Validate checks a raw evaluation_data value. Scores may be bare numbers or
// per-criterion objects carrying score, weight and justification. A null or empty value is accepted
// unless required is set.
func Validate(raw json.RawMessage, required bool) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		if required {
			return ErrMissingEvaluation
		}
		return nil
	}

	s, err := schema()
	if err != nil {
		return fmt.Errorf("compile evaluation schema: %w", err)
	}

	var document any
	if err := json.Unmarshal(trimmed, &document); err != nil {
		return fmt.Errorf("decode evaluation data: %w", err)
	}

	if err := s.Validate(document); err != nil {
		return fmt.Errorf("invalid evaluation data: %w", err)
	}
	return nil
}
