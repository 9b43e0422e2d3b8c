package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBirthday_Valid(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		wantDate  time.Time
		yearKnown bool
	}{
		{
			name:      "Full date",
			date:      "1969-12-28",
			wantDate:  time.Date(1969, 12, 28, 0, 0, 0, 0, time.UTC),
			yearKnown: true,
		},
		{
			name:      "Date without year",
			date:      "10-21",
			wantDate:  time.Date(1, 10, 21, 0, 0, 0, 0, time.UTC),
			yearKnown: false,
		},
		{
			name:      "Unpadded parts",
			date:      "1990-1-2",
			wantDate:  time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
			yearKnown: true,
		},
		{
			name:      "Leap day with year",
			date:      "2000-02-29",
			wantDate:  time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC),
			yearKnown: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBirthday(tt.date, "Somebody")
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, b.Date)
			assert.Equal(t, tt.yearKnown, b.YearKnown())
			assert.Equal(t, tt.date, b.RawDate, "raw input must be preserved")
		})
	}
}

// The sentinel year is not a leap year, so a year-less Feb 29 is rejected
// like any other date the sentinel calendar cannot hold.
func TestNewBirthday_LeapDayWithoutYear(t *testing.T) {
	_, err := NewBirthday("02-29", "Leapling")
	require.Error(t, err)

	batch, ok := AsBatch(err)
	require.True(t, ok)
	require.Len(t, batch.Errors, 1)
	assert.Equal(t, KindDateDoesntExist, batch.Errors[0].Kind)
}

func TestNewBirthday_TypeErrors(t *testing.T) {
	_, err := NewBirthday(float64(1990), []any{"x"})
	require.Error(t, err)

	batch, ok := AsBatch(err)
	require.True(t, ok)
	require.Len(t, batch.Errors, 2, "both bad parameters must be reported at once")
	assert.Equal(t,
		"Incorrect 'date' parameter type 'number' for birthday. Expected string.",
		batch.Errors[0].Error())
	assert.Equal(t,
		"Incorrect 'name' parameter type 'array' for birthday. Expected string.",
		batch.Errors[1].Error())
}

func TestNewBirthday_TypeErrorKeepsLabel(t *testing.T) {
	_, err := NewBirthday(nil, "Ada")
	require.Error(t, err)

	batch, ok := AsBatch(err)
	require.True(t, ok)
	require.Len(t, batch.Errors, 1)
	assert.Equal(t,
		"Incorrect 'date' parameter type 'null' for birthday 'Ada'. Expected string.",
		batch.Errors[0].Error())
}

func TestNewBirthday_FieldErrors(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "Non-numeric part",
			date:     "1990-XX-01",
			wantKind: KindIncorrectDateFormat,
			wantMsg:  "Incorrect birthday format '1990-XX-01' for 'Ada'. Expected YYYY-MM-DD or MM-DD.",
		},
		{
			name:     "Too few parts",
			date:     "1990",
			wantKind: KindIncorrectDateFormat,
			wantMsg:  "Incorrect birthday format '1990' for 'Ada'. Expected YYYY-MM-DD or MM-DD.",
		},
		{
			name:     "Too many parts",
			date:     "1990-01-02-03",
			wantKind: KindIncorrectDateFormat,
			wantMsg:  "Incorrect birthday format '1990-01-02-03' for 'Ada'. Expected YYYY-MM-DD or MM-DD.",
		},
		{
			name:     "Literal sentinel year",
			date:     "1-06-16",
			wantKind: KindNullYear,
			wantMsg:  "Null year 1 used in birthday '1-06-16' for 'Ada'.",
		},
		{
			name:     "Nonexistent date",
			date:     "1990-02-30",
			wantKind: KindDateDoesntExist,
			wantMsg:  "Incorrect numeric values in birthday '1990-02-30' for 'Ada'.",
		},
		{
			name:     "Leap day in non-leap year",
			date:     "1999-02-29",
			wantKind: KindDateDoesntExist,
			wantMsg:  "Incorrect numeric values in birthday '1999-02-29' for 'Ada'.",
		},
		{
			name:     "Month out of range",
			date:     "1990-13-01",
			wantKind: KindDateDoesntExist,
			wantMsg:  "Incorrect numeric values in birthday '1990-13-01' for 'Ada'.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBirthday(tt.date, "Ada")
			require.Error(t, err)

			batch, ok := AsBatch(err)
			require.True(t, ok)
			require.Len(t, batch.Errors, 1)
			assert.Equal(t, tt.wantKind, batch.Errors[0].Kind)
			assert.Equal(t, tt.wantMsg, batch.Errors[0].Error())
		})
	}
}

func TestConstructBirthdays(t *testing.T) {
	records := [][]any{
		{"1917-12-06", "Finland"},
		{"1990-02-30", "Impossible"},
		{"10-21", "Käärijä"},
		{float64(3), "Bad type"},
	}

	bdays, err := ConstructBirthdays(records)

	require.Len(t, bdays, 2, "valid records must survive invalid neighbors")
	assert.Equal(t, "Finland", bdays[0].Name)
	assert.Equal(t, "Käärijä", bdays[1].Name)

	batch, ok := AsBatch(err)
	require.True(t, ok)
	require.Len(t, batch.Errors, 2)
	assert.Equal(t, KindDateDoesntExist, batch.Errors[0].Kind, "findings keep input order")
	assert.Equal(t, KindIncorrectParameterType, batch.Errors[1].Kind)
}

func TestBirthday_DisplayDate(t *testing.T) {
	withYear, err := NewBirthday("1969-12-28", "Linus Torvalds")
	require.NoError(t, err)
	assert.Equal(t, "1969-12-28", withYear.DisplayDate())

	withoutYear, err := NewBirthday("10-21", "Käärijä")
	require.NoError(t, err)
	assert.Equal(t, "     10-21", withoutYear.DisplayDate(),
		"year-less dates align with full dates")
}
