package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Validation checks a persisted snapshot beyond what restore tolerates.
// Restore stays permissive on purpose; validation is for the explicit
// `validate` command.

// bundledSchema describes the persisted snapshot layout: a JSON array
// of schedule records.
const bundledSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "ZenPlan Schedules",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "date", "priority", "checklist"],
    "properties": {
      "id": { "type": "string", "minLength": 1 },
      "title": { "type": "string", "minLength": 1 },
      "description": { "type": "string" },
      "notes": { "type": "string" },
      "date": { "type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$" },
      "priority": { "type": "string", "enum": ["low", "medium", "high"] },
      "checklist": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["id", "text", "isCompleted"],
          "properties": {
            "id": { "type": "string", "minLength": 1 },
            "text": { "type": "string" },
            "isCompleted": { "type": "boolean" }
          }
        }
      },
      "color": { "type": "string" },
      "createdAt": { "type": "integer" }
    }
  }
}`

// BundledSchema returns the embedded snapshot schema JSON.
func BundledSchema() []byte {
	return []byte(bundledSchema)
}

// ValidationError is a validation failure with a JSON path for context.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath overrides the bundled schema when set.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool
}

// Validate checks schedules against the snapshot schema, falling back
// to minimal structural checks when no schema can be compiled.
func Validate(schedules []Schedule, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	if schemaResult := validateWithSchema(schedules, opts.SchemaPath); schemaResult.UsedSchema {
		return schemaResult
	} else if len(schemaResult.Warnings) > 0 {
		result.Warnings = append(result.Warnings, schemaResult.Warnings...)
	}
	result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")

	validateMinimal(schedules, result)
	return result
}

// validateMinimal performs minimal validation without JSON Schema.
func validateMinimal(schedules []Schedule, result *ValidationResult) {
	seen := make(map[string]bool, len(schedules))
	for i, sched := range schedules {
		path := fmt.Sprintf("[%d]", i)
		if err := validateScheduleMinimal(&sched, path); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err)
			continue
		}
		if seen[sched.ID] {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".id",
				Err:  fmt.Errorf("duplicate id %q", sched.ID),
			})
		}
		seen[sched.ID] = true
	}
}

func validateScheduleMinimal(sched *Schedule, path string) *ValidationError {
	if sched.ID == "" {
		return &ValidationError{
			Path: path + ".id",
			Err:  fmt.Errorf("missing required field"),
		}
	}
	if sched.Title == "" {
		return &ValidationError{
			Path: path + ".title",
			Err:  fmt.Errorf("missing required field"),
		}
	}
	if _, err := ParseDate(sched.Date); err != nil {
		return &ValidationError{
			Path: path + ".date",
			Err:  fmt.Errorf("invalid date %q, want YYYY-MM-DD", sched.Date),
		}
	}
	switch sched.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return &ValidationError{
			Path: path + ".priority",
			Err:  fmt.Errorf("invalid priority %q, must be one of: low, medium, high", sched.Priority),
		}
	}
	itemIDs := make(map[string]bool, len(sched.Checklist))
	for i, item := range sched.Checklist {
		itemPath := fmt.Sprintf("%s.checklist[%d]", path, i)
		if item.ID == "" {
			return &ValidationError{
				Path: itemPath + ".id",
				Err:  fmt.Errorf("missing required field"),
			}
		}
		if itemIDs[item.ID] {
			return &ValidationError{
				Path: itemPath + ".id",
				Err:  fmt.Errorf("duplicate id %q", item.ID),
			}
		}
		itemIDs[item.ID] = true
	}
	return nil
}

// validateWithSchema attempts JSON Schema validation, using the
// bundled schema unless a path is given.
func validateWithSchema(schedules []Schedule, schemaPath string) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var schema *jsonschema.Schema
	if schemaPath != "" {
		absPath, err := filepath.Abs(schemaPath)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema path: %v", err))
			return result
		}
		if _, err := os.Stat(absPath); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("schema file not found: %s", absPath))
			return result
		}
		schema, err = compiler.Compile(absPath)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema file: %v", err))
			return result
		}
	} else {
		if err := compiler.AddResource("schedules.schema.json", strings.NewReader(bundledSchema)); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("bundled schema: %v", err))
			return result
		}
		var err error
		schema, err = compiler.Compile("schedules.schema.json")
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("bundled schema: %v", err))
			return result
		}
	}

	result.UsedSchema = true

	data, err := json.Marshal(schedules)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("marshal snapshot for validation: %w", err))
		return result
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("unmarshal snapshot for validation: %w", err))
		return result
	}

	if err := schema.Validate(obj); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
