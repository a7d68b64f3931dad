// Package validation provides field-keyed validation errors shared across features.
package validation

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors is a validation failure keyed by field name. It implements
// error so it can flow through the usual return path; handlers detect it
// with errors.As and render the map as-is.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
