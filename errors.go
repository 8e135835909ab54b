package invest

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidInput blocks a computation: empty deposit set, zero total
	// deposited, negative number of years, rates out of range.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingReferenceData means no CPI value could be resolved at all.
	ErrMissingReferenceData = errors.New("missing reference data")
	// ErrExternalFetch means a remote reference-data source failed.
	ErrExternalFetch = errors.New("external fetch failed")
)

// invalid returns an error wrapping ErrInvalidInput.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Reason }

// ValidationErrors collects all the field errors of an input.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errs
}

// add records a field error.
func (v *ValidationErrors) add(field, format string, args ...any) {
	*v = append(*v, &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)})
}

// Fields returns the reason per field name.
func (v ValidationErrors) Fields() map[string]string {
	m := make(map[string]string, len(v))
	for _, e := range v {
		m[e.Field] = e.Reason
	}
	return m
}

// err returns nil if there is no error, v otherwise, sorted by field.
func (v ValidationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	sort.SliceStable(v, func(i, j int) bool { return v[i].Field < v[j].Field })
	return v
}
