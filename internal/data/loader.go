package data

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tartampluch/tagprompt/internal/config"
)

// Document is the structurally validated content of a data file. Raw records
// are kept as decoded JSON values; domain validation happens in the
// Construct methods so structural and field-level diagnostics stay in
// separate batches.
type Document struct {
	// Birthdays and TimeTags hold the raw records. They are nil when the
	// corresponding feature is disabled.
	Birthdays [][]any
	TimeTags  [][]any

	// BirthdaysDisabled and TimeTagsDisabled are set when the top-level
	// field was explicitly null. Null means "feature off"; a missing field
	// is a structural error instead.
	BirthdaysDisabled bool
	TimeTagsDisabled  bool
}

// Load decodes and structurally validates a data file. It returns a
// *CorruptFileGroup error carrying every shape problem found in one pass,
// or a single entry with the decoder's position when the bytes are not JSON
// at all. Field-level (per-record) validation is not attempted here.
func Load(raw []byte, path string) (*Document, error) {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, &CorruptFileGroup{
			Path:   path,
			Errors: []*FieldError{decodeError(raw, err)},
		}
	}

	doc := &Document{}
	group := &CorruptFileGroup{Path: path}

	doc.Birthdays, doc.BirthdaysDisabled = validateList(
		root, config.FieldBirthdays,
		[]string{config.DescBirthdayDate, config.DescName},
		group,
	)
	doc.TimeTags, doc.TimeTagsDisabled = validateList(
		root, config.FieldTimeTags,
		[]string{config.DescStartTime, config.DescStopTime, config.DescText},
		group,
	)

	if len(group.Errors) > 0 {
		return nil, group
	}
	return doc, nil
}

// validateList checks one top-level array: presence, array-or-null type,
// and the shape of every element. Elements must be arrays of strings with
// exactly len(fields) entries. All findings are appended to group in input
// order.
func validateList(root map[string]any, name string, fields []string, group *CorruptFileGroup) ([][]any, bool) {
	structural := func(format string, args ...any) {
		group.Errors = append(group.Errors, &FieldError{
			Kind:    KindStructuralJSON,
			Message: fmt.Sprintf(format, args...),
		})
	}

	value, present := root[name]
	if !present {
		structural("Field '%s' missing from root.", name)
		return nil, false
	}
	if value == nil {
		return nil, true
	}
	list, ok := value.([]any)
	if !ok {
		structural("Field '%s' is not of type array or null.", name)
		return nil, false
	}

	// The label field identifies the record in messages about its sibling
	// fields: the name for birthdays, the text for time tags.
	labelIdx := len(fields) - 1

	records := make([][]any, 0, len(list))
	for i, elem := range list {
		rec, ok := elem.([]any)
		if !ok {
			structural("Array '%s' index %d is not an array.", name, i)
			continue
		}
		if len(rec) != len(fields) {
			structural("Array '%s' index %d length is not %d.", name, i, len(fields))
		}

		for k, v := range rec {
			if k >= len(fields) {
				break
			}
			if _, ok := v.(string); ok {
				continue
			}
			msg := fmt.Sprintf("Array '%s' index %d ", name, i)
			// The label clause is omitted when the label field itself is
			// the one failing, and when a short record has no label.
			if k != labelIdx && labelIdx < len(rec) {
				msg += fmt.Sprintf("(%s %s) ", fields[labelIdx], reprValue(rec[labelIdx]))
			}
			msg += fmt.Sprintf("field[%d] %s is not a string.", k, fields[k])
			structural("%s", msg)
		}

		records = append(records, rec)
	}
	return records, false
}

// reprValue renders a JSON value for an error message: strings quoted,
// everything else as-is.
func reprValue(v any) string {
	if s, ok := v.(string); ok {
		return "'" + s + "'"
	}
	return fmt.Sprintf("%v", v)
}

// decodeError turns a json decoding failure into a structural finding whose
// message carries the row and column of the failure.
func decodeError(raw []byte, err error) *FieldError {
	var offset int64
	switch e := err.(type) {
	case *json.SyntaxError:
		offset = e.Offset
	case *json.UnmarshalTypeError:
		offset = e.Offset
	}
	line, col := position(raw, offset)
	return &FieldError{
		Kind:    KindStructuralJSON,
		Message: fmt.Sprintf(config.MsgCorruptJSON, err.Error(), line, col, offset),
	}
}

// position converts a byte offset into 1-based line and column numbers.
func position(raw []byte, offset int64) (int, int) {
	if offset > int64(len(raw)) {
		offset = int64(len(raw))
	}
	head := raw[:offset]
	line := bytes.Count(head, []byte("\n")) + 1
	col := int(offset)
	if idx := bytes.LastIndexByte(head, '\n'); idx >= 0 {
		col = int(offset) - idx - 1
	}
	if col == 0 {
		col = 1
	}
	return line, col
}

// ConstructBirthdays builds the Birthday list from the document's raw
// records, or nil when the feature is disabled.
func (d *Document) ConstructBirthdays() ([]Birthday, error) {
	if d.BirthdaysDisabled {
		return nil, nil
	}
	return ConstructBirthdays(d.Birthdays)
}

// ConstructTimeTags builds the TimeTag list from the document's raw records,
// or nil when the feature is disabled.
func (d *Document) ConstructTimeTags() ([]TimeTag, error) {
	if d.TimeTagsDisabled {
		return nil, nil
	}
	return ConstructTimeTags(d.TimeTags)
}

// File is the serialization shape of a data file. Nil slices marshal as
// null, which downstream readers treat as "feature disabled".
type File struct {
	Birthdays [][]string `json:"birthdays"`
	TimeTags  [][]string `json:"timeTags"`
}

// Encode renders a data file with stable two-space indentation.
func (f File) Encode() ([]byte, error) {
	out, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
