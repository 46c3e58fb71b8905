package document

import (
	"strings"
	"time"

	"github.com/smallbiznis/tradedesk/pkg/optional"
	"github.com/smallbiznis/tradedesk/pkg/validation"
)

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate reads an ISO 8601 date or date-time. A blank value is nil.
func ParseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, validation.New(field, validation.CodeInvalid, field+" must be a valid ISO 8601 date string")
}

// ParseDatePtr is ParseDate for an optional request field.
func ParseDatePtr(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return ParseDate(field, *value)
}

// ApplyDate records a date patch under column. Null or blank clears it.
func ApplyDate(values map[string]any, column, field string, v optional.Value[string]) error {
	if !v.Set {
		return nil
	}
	if v.Null {
		values[column] = nil
		return nil
	}
	t, err := ParseDate(field, v.Value)
	if err != nil {
		return err
	}
	if t == nil {
		values[column] = nil
		return nil
	}
	values[column] = *t
	return nil
}
