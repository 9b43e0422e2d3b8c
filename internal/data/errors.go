// Package data validates the JSON data file and turns its raw records into
// Birthday and TimeTag values. Validation never stops at the first problem:
// every error found in one pass is collected into an ordered Batch so the
// user sees the complete set of diagnostics at once.
package data

import (
	"fmt"
	"strings"

	"github.com/tartampluch/tagprompt/internal/config"
)

// Kind discriminates the validation error variants.
type Kind int

const (
	// KindIncorrectParameterType marks a constructor argument that is not a
	// string. This is a caller error for direct API use; for JSON input the
	// structural validator reports it first.
	KindIncorrectParameterType Kind = iota

	// KindIncorrectDateFormat marks a date string that is not YYYY-MM-DD or
	// MM-DD with numeric parts.
	KindIncorrectDateFormat

	// KindNullYear marks a date that spells out the reserved no-year
	// sentinel as a literal year.
	KindNullYear

	// KindDateDoesntExist marks numeric date parts that do not form a real
	// calendar date.
	KindDateDoesntExist

	// KindIncorrectTimeFormat marks a time string that is not H(H):M(M)
	// with numeric parts.
	KindIncorrectTimeFormat

	// KindTimeDoesntExist marks an hour outside 0-23 or a minute outside
	// 0-59.
	KindTimeDoesntExist

	// KindTimeOrderViolation marks a start time after the stop time when
	// the stop is not the midnight sentinel.
	KindTimeOrderViolation

	// KindStructuralJSON marks a shape problem in the decoded document,
	// detected before any per-record validation.
	KindStructuralJSON
)

// String returns the variant name, mainly for test failure output.
func (k Kind) String() string {
	switch k {
	case KindIncorrectParameterType:
		return "IncorrectParameterType"
	case KindIncorrectDateFormat:
		return "IncorrectDateFormat"
	case KindNullYear:
		return "NullYear"
	case KindDateDoesntExist:
		return "DateDoesntExist"
	case KindIncorrectTimeFormat:
		return "IncorrectTimeFormat"
	case KindTimeDoesntExist:
		return "TimeDoesntExist"
	case KindTimeOrderViolation:
		return "TimeOrderViolation"
	case KindStructuralJSON:
		return "StructuralJSON"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// FieldError is one validation finding. The populated context fields depend
// on the Kind; Error renders the stable user-facing message.
type FieldError struct {
	Kind Kind

	// Param is the parameter or field name ("date", "start", ...).
	Param string

	// TypeName is the JSON type of the offending value for parameter type
	// errors ("number", "array", "null", ...).
	TypeName string

	// Object describes the record kind ("birthday", "time tag").
	Object string

	// Value is the offending raw value.
	Value string

	// RawStop is the raw stop value for time order violations.
	RawStop string

	// Label is the record's own label: the birthday name or the tag text.
	// Empty when the label itself was invalid.
	Label string

	// Message is the prebuilt text for structural errors.
	Message string
}

func (e *FieldError) Error() string {
	switch e.Kind {
	case KindIncorrectParameterType:
		text := fmt.Sprintf("Incorrect '%s' parameter type '%s' for %s",
			e.Param, e.TypeName, e.Object)
		if e.Label != "" {
			text += fmt.Sprintf(" '%s'", e.Label)
		}
		return text + ". Expected string."
	case KindIncorrectDateFormat:
		return fmt.Sprintf("Incorrect birthday format '%s' for '%s'. Expected YYYY-MM-DD or MM-DD.",
			e.Value, e.Label)
	case KindNullYear:
		return fmt.Sprintf("Null year %d used in birthday '%s' for '%s'.",
			config.NullYear, e.Value, e.Label)
	case KindDateDoesntExist:
		return fmt.Sprintf("Incorrect numeric values in birthday '%s' for '%s'.",
			e.Value, e.Label)
	case KindIncorrectTimeFormat:
		return fmt.Sprintf("Incorrect %s time format '%s' for tag '%s'. Expected HH:MM.",
			e.Param, e.Value, e.Label)
	case KindTimeDoesntExist:
		return fmt.Sprintf("Incorrect numeric values in %s time '%s' for '%s'.",
			e.Param, e.Value, e.Label)
	case KindTimeOrderViolation:
		return fmt.Sprintf("Start time '%s' is after stop time '%s' for tag '%s'.",
			e.Value, e.RawStop, e.Label)
	case KindStructuralJSON:
		return e.Message
	default:
		return e.Message
	}
}

// Batch is an ordered collection of validation findings. It is returned, not
// panicked, and may hold a single error: callers check for a Batch whenever
// multiple independent items were validated in one pass.
type Batch struct {
	Errors []*FieldError
}

func (b *Batch) add(e *FieldError) {
	b.Errors = append(b.Errors, e)
}

func (b *Batch) extend(other *Batch) {
	if other != nil {
		b.Errors = append(b.Errors, other.Errors...)
	}
}

// orNil returns the batch as an error, or nil when nothing was collected.
func (b *Batch) orNil() error {
	if len(b.Errors) == 0 {
		return nil
	}
	return b
}

func (b *Batch) Error() string {
	return strings.Join(b.Messages(), "\n")
}

// Messages returns the rendered text of every finding, in input order.
func (b *Batch) Messages() []string {
	msgs := make([]string, 0, len(b.Errors))
	for _, e := range b.Errors {
		msgs = append(msgs, e.Error())
	}
	return msgs
}

// Has reports whether the batch contains a finding of the given kind.
func (b *Batch) Has(kind Kind) bool {
	for _, e := range b.Errors {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// AsBatch unwraps err into a *Batch when it is one.
func AsBatch(err error) (*Batch, bool) {
	b, ok := err.(*Batch)
	return b, ok
}

// CorruptFileGroup collects the structural problems of one data file, or a
// single JSON decoding failure. It renders with a header naming the file so
// diagnostics can be shown standalone.
type CorruptFileGroup struct {
	Path   string
	Errors []*FieldError
}

func (g *CorruptFileGroup) Error() string {
	return strings.Join(g.Messages(), "\n")
}

// Messages returns the header lines followed by every structural finding.
func (g *CorruptFileGroup) Messages() []string {
	msgs := []string{
		config.MsgDataFileErrors,
		fmt.Sprintf(config.MsgDataFilePath, g.Path),
	}
	for _, e := range g.Errors {
		msgs = append(msgs, e.Error())
	}
	return msgs
}

// typeName maps a decoded JSON value to its JSON type vocabulary.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
