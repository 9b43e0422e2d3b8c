package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewTimeTag_Valid verifies parsing of well-formed records, including the
// minute-precision boundaries and the unpadded digit forms.
func TestNewTimeTag_Valid(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		stop      string
		wantStart ClockTime
		wantStop  ClockTime
	}{
		{"Padded morning window", "09:00", "15:00", ClockTime{9, 0}, ClockTime{15, 0}},
		{"Unpadded digits", "9:5", "10:00", ClockTime{9, 5}, ClockTime{10, 0}},
		{"Runs to end of day", "22:00", "00:00", ClockTime{22, 0}, ClockTime{0, 0}},
		{"Whole day window", "00:00", "00:00", ClockTime{0, 0}, ClockTime{0, 0}},
		{"Last minute of day", "23:59", "00:00", ClockTime{23, 59}, ClockTime{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := NewTimeTag(tt.start, tt.stop, "work")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, tag.Start)
			assert.Equal(t, tt.wantStop, tag.Stop)
			assert.Equal(t, tt.start, tag.RawStart, "raw input must be preserved")
			assert.Equal(t, tt.stop, tag.RawStop)
			assert.Equal(t, "work", tag.Text)
		})
	}
}

// TestNewTimeTag_TypeErrors verifies that every non-string argument yields
// its own finding and that all findings of the record are reported together.
func TestNewTimeTag_TypeErrors(t *testing.T) {
	_, err := NewTimeTag(float64(9), nil, "night")
	require.Error(t, err)

	batch, ok := AsBatch(err)
	require.True(t, ok)
	require.Len(t, batch.Errors, 2, "both bad parameters must be reported at once")

	assert.Equal(t, KindIncorrectParameterType, batch.Errors[0].Kind)
	assert.Equal(t,
		"Incorrect 'start' parameter type 'number' for time tag 'night'. Expected string.",
		batch.Errors[0].Error())
	assert.Equal(t,
		"Incorrect 'stop' parameter type 'null' for time tag 'night'. Expected string.",
		batch.Errors[1].Error())
}

// TestNewTimeTag_TypeErrorWithoutLabel verifies that the label clause is
// dropped when the text field itself is not a string.
func TestNewTimeTag_TypeErrorWithoutLabel(t *testing.T) {
	_, err := NewTimeTag("09:00", "10:00", true)
	require.Error(t, err)

	batch, ok := AsBatch(err)
	require.True(t, ok)
	require.Len(t, batch.Errors, 1)
	assert.Equal(t,
		"Incorrect 'text' parameter type 'boolean' for time tag. Expected string.",
		batch.Errors[0].Error())
}

func TestNewTimeTag_FieldErrors(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		stop     string
		wantKind []Kind
		wantMsg  string
	}{
		{
			name:     "Missing colon",
			start:    "0900",
			stop:     "10:00",
			wantKind: []Kind{KindIncorrectTimeFormat},
			wantMsg:  "Incorrect start time format '0900' for tag 'work'. Expected HH:MM.",
		},
		{
			name:     "Non-numeric minute",
			start:    "09:00",
			stop:     "10:xx",
			wantKind: []Kind{KindIncorrectTimeFormat},
			wantMsg:  "Incorrect stop time format '10:xx' for tag 'work'. Expected HH:MM.",
		},
		{
			name:     "Hour out of range",
			start:    "24:00",
			stop:     "10:00",
			wantKind: []Kind{KindTimeDoesntExist},
			wantMsg:  "Incorrect numeric values in start time '24:00' for 'work'.",
		},
		{
			name:     "Minute out of range",
			start:    "09:00",
			stop:     "10:60",
			wantKind: []Kind{KindTimeDoesntExist},
			wantMsg:  "Incorrect numeric values in stop time '10:60' for 'work'.",
		},
		{
			name:     "Negative minute",
			start:    "09:00",
			stop:     "09:-1",
			wantKind: []Kind{KindTimeDoesntExist},
			wantMsg:  "Incorrect numeric values in stop time '09:-1' for 'work'.",
		},
		{
			name:     "Both endpoints out of range are both reported",
			start:    "25:00",
			stop:     "-1:00",
			wantKind: []Kind{KindTimeDoesntExist, KindTimeDoesntExist},
			wantMsg:  "Incorrect numeric values in start time '25:00' for 'work'.",
		},
		{
			name:     "Mixed endpoint failures are both reported",
			start:    "25:00",
			stop:     "banana",
			wantKind: []Kind{KindTimeDoesntExist, KindIncorrectTimeFormat},
			wantMsg:  "Incorrect numeric values in start time '25:00' for 'work'.",
		},
		{
			name:     "Start after stop",
			start:    "15:00",
			stop:     "09:00",
			wantKind: []Kind{KindTimeOrderViolation},
			wantMsg:  "Start time '15:00' is after stop time '09:00' for tag 'work'.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeTag(tt.start, tt.stop, "work")
			require.Error(t, err)

			batch, ok := AsBatch(err)
			require.True(t, ok)
			require.Len(t, batch.Errors, len(tt.wantKind))
			for i, kind := range tt.wantKind {
				assert.Equal(t, kind, batch.Errors[i].Kind)
			}
			assert.Equal(t, tt.wantMsg, batch.Errors[0].Error())
		})
	}
}

// TestNewTimeTag_OrderCheckedAfterParsing verifies that the ordering rule is
// not evaluated when an endpoint failed to parse, so a record never mixes a
// parse error with a phantom order error.
func TestNewTimeTag_OrderCheckedAfterParsing(t *testing.T) {
	_, err := NewTimeTag("15:00", "9x00", "work")
	require.Error(t, err)

	batch, ok := AsBatch(err)
	require.True(t, ok)
	assert.True(t, batch.Has(KindIncorrectTimeFormat))
	assert.False(t, batch.Has(KindTimeOrderViolation))
}

// TestConstructTimeTags verifies that valid records survive in declaration
// order while the findings of every invalid record accumulate, also in order.
func TestConstructTimeTags(t *testing.T) {
	records := [][]any{
		{"06:00", "08:30", "coffee time"},
		{"24:00", "10:00", "bad hour"},
		{"10:50", "11:50", "lunch"},
		{float64(1), "12:00", "bad type"},
		{"22:00", "00:00", "getting late"},
	}

	tags, err := ConstructTimeTags(records)

	require.Len(t, tags, 3, "valid records must survive invalid neighbors")
	assert.Equal(t, "coffee time", tags[0].Text)
	assert.Equal(t, "lunch", tags[1].Text)
	assert.Equal(t, "getting late", tags[2].Text)

	batch, ok := AsBatch(err)
	require.True(t, ok)
	require.Len(t, batch.Errors, 2)
	assert.Equal(t, KindTimeDoesntExist, batch.Errors[0].Kind, "findings keep input order")
	assert.Equal(t, KindIncorrectParameterType, batch.Errors[1].Kind)
}

func TestConstructTimeTags_AllValid(t *testing.T) {
	tags, err := ConstructTimeTags([][]any{{"00:00", "02:00", "fancy eye bags?"}})
	assert.NoError(t, err)
	assert.Len(t, tags, 1)
}

// TestConstructTimeTags_ShortRecord verifies that a record with too few
// fields degrades to type errors instead of panicking.
func TestConstructTimeTags_ShortRecord(t *testing.T) {
	_, err := ConstructTimeTags([][]any{{"09:00"}})

	batch, ok := AsBatch(err)
	require.True(t, ok)
	require.Len(t, batch.Errors, 2)
	assert.Equal(t, KindIncorrectParameterType, batch.Errors[0].Kind)
	assert.Equal(t, "stop", batch.Errors[0].Param)
	assert.Equal(t, "text", batch.Errors[1].Param)
}
