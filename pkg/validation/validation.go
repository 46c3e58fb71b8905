// Package validation collects field-level input problems so a request can be
// rejected with every problem reported at once.
package validation

import (
	"fmt"
	"strings"

	"github.com/smallbiznis/tradedesk/pkg/optional"
)

const (
	CodeRequired = "required"
	CodeInvalid  = "invalid"
)

// Violation is one rejected field.
type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error carries every violation found in a request.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "validation error"
	}
	messages := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		messages = append(messages, v.Message)
	}
	return strings.Join(messages, "; ")
}

// Collector accumulates violations.
type Collector struct {
	violations []Violation
}

func (c *Collector) Add(field, code, message string) {
	c.violations = append(c.violations, Violation{Field: field, Code: code, Message: message})
}

// Required flags a blank string.
func (c *Collector) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.Add(field, CodeRequired, fmt.Sprintf("%s is required", field))
	}
}

// RequiredPtr flags a nil or blank string pointer.
func (c *Collector) RequiredPtr(field string, value *string) {
	if value == nil {
		c.Add(field, CodeRequired, fmt.Sprintf("%s is required", field))
		return
	}
	c.Required(field, *value)
}

// RequiredIfSet rejects an explicit null or blank value for a field that
// may be omitted from a patch but never cleared.
func (c *Collector) RequiredIfSet(field string, v optional.Value[string]) {
	if !v.Set {
		return
	}
	if v.Null {
		c.Add(field, CodeRequired, fmt.Sprintf("%s is required", field))
		return
	}
	c.Required(field, v.Value)
}

// Err returns nil when nothing was collected.
func (c *Collector) Err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return &Error{Violations: c.violations}
}

// New builds a single-violation error.
func New(field, code, message string) error {
	return &Error{Violations: []Violation{{Field: field, Code: code, Message: message}}}
}
