package data

import (
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/tagprompt/internal/config"
)

// Birthday is a validated recurring annual date. Dates are stored as UTC
// midnights so day arithmetic never crosses a DST boundary.
type Birthday struct {
	// RawDate preserves the input string for listings and error messages.
	RawDate string

	// Name may be empty; the formatter renders a placeholder then.
	Name string

	// Date is the resolved calendar date. Its year is config.NullYear when
	// the input omitted one.
	Date time.Time
}

// YearKnown reports whether the input carried an explicit birth year.
func (b Birthday) YearKnown() bool {
	return b.Date.Year() != config.NullYear
}

// DisplayDate renders the date for listings: YYYY-MM-DD, or MM-DD padded to
// the same width when the year is unknown.
func (b Birthday) DisplayDate() string {
	if b.YearKnown() {
		return b.Date.Format(config.DateFormatISO)
	}
	return strings.Repeat(" ", 5) + b.Date.Format(config.DateFormatNoYear)
}

// NewBirthday validates one raw [date, name] record. The arguments are
// untyped because they arrive from a decoded JSON tree.
//
// Type errors for both parameters are collected together and abort the
// record. A well-typed date string must be YYYY-MM-DD or MM-DD with numeric
// parts; the literal sentinel year is rejected, and the parts must form a
// real calendar date.
func NewBirthday(date, name any) (Birthday, error) {
	batch := &Batch{}

	label, _ := name.(string)
	if _, ok := date.(string); !ok {
		batch.add(&FieldError{
			Kind:     KindIncorrectParameterType,
			Param:    config.ParamDate,
			TypeName: typeName(date),
			Object:   config.ObjBirthday,
			Label:    label,
		})
	}
	if _, ok := name.(string); !ok {
		batch.add(&FieldError{
			Kind:     KindIncorrectParameterType,
			Param:    config.ParamName,
			TypeName: typeName(name),
			Object:   config.ObjBirthday,
		})
	}
	if err := batch.orNil(); err != nil {
		return Birthday{}, err
	}

	b := Birthday{
		RawDate: date.(string),
		Name:    name.(string),
	}

	formatErr := &FieldError{
		Kind:  KindIncorrectDateFormat,
		Value: b.RawDate,
		Label: b.Name,
	}

	textParts := strings.Split(b.RawDate, config.DateSeparator)
	parts := make([]int, 0, len(textParts))
	for _, p := range textParts {
		n, err := strconv.Atoi(p)
		if err != nil {
			batch.add(formatErr)
			return Birthday{}, batch
		}
		parts = append(parts, n)
	}

	switch len(parts) {
	case 3:
		if parts[0] == config.NullYear {
			batch.add(&FieldError{
				Kind:  KindNullYear,
				Value: b.RawDate,
				Label: b.Name,
			})
			return Birthday{}, batch
		}
	case 2:
		parts = append([]int{config.NullYear}, parts...)
	default:
		batch.add(formatErr)
		return Birthday{}, batch
	}

	year, month, day := parts[0], parts[1], parts[2]
	resolved := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (Feb 30 becomes Mar 2),
	// so a real date is one that round-trips unchanged.
	if resolved.Year() != year || resolved.Month() != time.Month(month) || resolved.Day() != day {
		batch.add(&FieldError{
			Kind:  KindDateDoesntExist,
			Value: b.RawDate,
			Label: b.Name,
		})
		return Birthday{}, batch
	}

	b.Date = resolved
	return b, nil
}

// ConstructBirthdays validates a list of raw records, keeping every valid
// birthday in input order. The returned Batch holds the findings of every
// invalid record, in input order, one entry per individual problem.
func ConstructBirthdays(records [][]any) ([]Birthday, error) {
	var bdays []Birthday
	batch := &Batch{}
	for _, rec := range records {
		b, err := NewBirthday(field(rec, 0), field(rec, 1))
		if err != nil {
			if eb, ok := AsBatch(err); ok {
				batch.extend(eb)
			}
			continue
		}
		bdays = append(bdays, b)
	}
	if err := batch.orNil(); err != nil {
		return bdays, err
	}
	return bdays, nil
}
