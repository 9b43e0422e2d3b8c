package data

import (
	"strconv"
	"strings"

	"github.com/tartampluch/tagprompt/internal/config"
)

// ClockTime is a wall-clock instant with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// After reports whether t is later in the day than other.
func (t ClockTime) After(other ClockTime) bool {
	if t.Hour != other.Hour {
		return t.Hour > other.Hour
	}
	return t.Minute > other.Minute
}

// IsMidnight reports whether t is exactly 00:00, the sentinel meaning
// "runs until the end of the day".
func (t ClockTime) IsMidnight() bool {
	return t.Hour == 0 && t.Minute == 0
}

// TimeTag is a validated recurring daily interval carrying a prompt label.
// The interval is half-open: active from Start up to but excluding Stop.
// A Stop of exactly 00:00 extends the window to the following midnight.
type TimeTag struct {
	// RawStart and RawStop preserve the input strings for listings and
	// error messages.
	RawStart string
	RawStop  string

	// Text is the label shown in the prompt.
	Text string

	Start ClockTime
	Stop  ClockTime
}

// NewTimeTag validates one raw [start, stop, text] record. The arguments are
// untyped because they arrive from a decoded JSON tree.
//
// Type errors for all three parameters are collected together and abort the
// record; with correct types, start and stop are parsed independently and
// may each contribute an error. The ordering rule is checked only once both
// endpoints are known-valid, so an order violation is always the sole error
// of its record.
func NewTimeTag(start, stop, text any) (TimeTag, error) {
	batch := &Batch{}

	label, _ := text.(string)
	for _, p := range []struct {
		name  string
		value any
	}{
		{config.ParamStart, start},
		{config.ParamStop, stop},
		{config.ParamText, text},
	} {
		if _, ok := p.value.(string); !ok {
			batch.add(&FieldError{
				Kind:     KindIncorrectParameterType,
				Param:    p.name,
				TypeName: typeName(p.value),
				Object:   config.ObjTimeTag,
				Label:    label,
			})
		}
	}
	if err := batch.orNil(); err != nil {
		return TimeTag{}, err
	}

	tag := TimeTag{
		RawStart: start.(string),
		RawStop:  stop.(string),
		Text:     text.(string),
	}

	startTime, startErr := parseTimeField(config.ParamStart, tag.RawStart, tag.Text)
	stopTime, stopErr := parseTimeField(config.ParamStop, tag.RawStop, tag.Text)
	if startErr != nil {
		batch.add(startErr)
	}
	if stopErr != nil {
		batch.add(stopErr)
	}
	if err := batch.orNil(); err != nil {
		return TimeTag{}, err
	}

	tag.Start = startTime
	tag.Stop = stopTime

	if tag.Start.After(tag.Stop) && !tag.Stop.IsMidnight() {
		batch.add(&FieldError{
			Kind:    KindTimeOrderViolation,
			Value:   tag.RawStart,
			RawStop: tag.RawStop,
			Label:   tag.Text,
		})
		return TimeTag{}, batch
	}

	return tag, nil
}

// parseTimeField parses one H(H):M(M) string. Zero padding is not required:
// "9:5" is hour 9, minute 5. The range check runs only when both sides
// parsed as integers, so a field yields at most one error.
func parseTimeField(field, value, label string) (ClockTime, *FieldError) {
	head, tail, found := strings.Cut(value, config.TimeSeparator)
	if !found {
		return ClockTime{}, &FieldError{
			Kind:  KindIncorrectTimeFormat,
			Param: field,
			Value: value,
			Label: label,
		}
	}

	hour, errH := strconv.Atoi(head)
	minute, errM := strconv.Atoi(tail)
	if errH != nil || errM != nil {
		return ClockTime{}, &FieldError{
			Kind:  KindIncorrectTimeFormat,
			Param: field,
			Value: value,
			Label: label,
		}
	}

	if hour < config.MinHour || hour > config.MaxHour ||
		minute < config.MinMinute || minute > config.MaxMinute {
		return ClockTime{}, &FieldError{
			Kind:  KindTimeDoesntExist,
			Param: field,
			Value: value,
			Label: label,
		}
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

// ConstructTimeTags validates a list of raw records, keeping every valid tag
// in declaration order. Declaration order is semantically significant: it is
// the precedence order when overlapping tags are resolved. The returned
// Batch holds the findings of every invalid record, in input order, with one
// entry per individual problem rather than one per record.
func ConstructTimeTags(records [][]any) ([]TimeTag, error) {
	var tags []TimeTag
	batch := &Batch{}
	for _, rec := range records {
		tag, err := NewTimeTag(field(rec, 0), field(rec, 1), field(rec, 2))
		if err != nil {
			if b, ok := AsBatch(err); ok {
				batch.extend(b)
			}
			continue
		}
		tags = append(tags, tag)
	}
	if err := batch.orNil(); err != nil {
		return tags, err
	}
	return tags, nil
}

// field returns rec[i], or nil when the record is too short. The structural
// validator rejects wrong arity before constructors run, but direct API
// callers get a type error instead of a panic.
func field(rec []any, i int) any {
	if i < len(rec) {
		return rec[i]
	}
	return nil
}
