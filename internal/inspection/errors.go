package inspection

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("history not found")

// FieldError is a message attached to one form field.
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) String() string {
	if f.Field == "" {
		return f.Message
	}
	return f.Field + ": " + f.Message
}

// ValidationError collects client-side field errors found before submit.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return joinFields(e.Fields)
}

// Message returns the first message recorded for field, if any.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// RemoteValidationError is the record service rejecting a payload. Each entry
// carries the offending property and its violated constraints joined by ", ".
type RemoteValidationError struct {
	Fields []FieldError
}

func (e *RemoteValidationError) Error() string {
	return joinFields(e.Fields)
}

// Lines renders one "property: constraint, constraint" line per field.
func (e *RemoteValidationError) Lines() []string {
	lines := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		lines[i] = f.String()
	}
	return lines
}

type remoteConstraint struct {
	Property    string            `json:"property"`
	Constraints map[string]string `json:"constraints"`
	Message     string            `json:"message"`
}

// ParseRemoteValidation decodes a validation failure body of the form
// [{"property": "...", "constraints": {"rule": "message"}}]. ok is false when
// body has any other shape.
func ParseRemoteValidation(body []byte) (*RemoteValidationError, bool) {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}
	var items []remoteConstraint
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil || len(items) == 0 {
		return nil, false
	}
	out := &RemoteValidationError{}
	for _, item := range items {
		msg := item.Message
		if len(item.Constraints) > 0 {
			rules := make([]string, 0, len(item.Constraints))
			for rule := range item.Constraints {
				rules = append(rules, rule)
			}
			sort.Strings(rules)
			msgs := make([]string, len(rules))
			for i, rule := range rules {
				msgs[i] = item.Constraints[rule]
			}
			msg = strings.Join(msgs, ", ")
		}
		out.Fields = append(out.Fields, FieldError{Field: item.Property, Message: msg})
	}
	return out, true
}

func joinFields(fields []FieldError) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, "; ")
}
