package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/tagprompt/internal/data"
)

func mustBirthday(t *testing.T, date, name string) data.Birthday {
	t.Helper()
	b, err := data.NewBirthday(date, name)
	require.NoError(t, err)
	return b
}

// TestProximity verifies the next-occurrence arithmetic: month-first
// comparison, the today-counts-as-upcoming rule and the year rollover.
func TestProximity(t *testing.T) {
	// Reference "today": Saturday, June 10th 2023.
	today := time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     string
		wantDays int
		wantAge  int
		wantDesc string
		scenario string
	}{
		{
			name:     "Later this month",
			date:     "2008-06-16",
			wantDays: 6,
			wantAge:  15,
			wantDesc: " on Friday",
			scenario: "same ISO week boundary not crossed by more than one",
		},
		{
			name:     "Exactly a week out",
			date:     "2008-06-17",
			wantDays: 7,
			wantAge:  15,
			wantDesc: " on Saturday next week",
			scenario: "one week number ahead and at least seven days out",
		},
		{
			name:     "Too far for weekday phrasing",
			date:     "2008-06-19",
			wantDays: 9,
			wantAge:  15,
			wantDesc: "",
			scenario: "two week numbers ahead falls back to numeric phrasing",
		},
		{
			name:     "Today",
			date:     "2008-06-10",
			wantDays: 0,
			wantAge:  15,
			wantDesc: "",
			scenario: "today counts as not yet passed, and no weekday phrasing",
		},
		{
			name:     "Tomorrow",
			date:     "2008-06-11",
			wantDays: 1,
			wantAge:  15,
			wantDesc: "",
			scenario: "one day out never gets weekday phrasing",
		},
		{
			name:     "Passed this year rolls over",
			date:     "2008-06-09",
			wantDays: 365,
			wantAge:  16,
			wantDesc: "",
			scenario: "day earlier in the same month means next year",
		},
		{
			name:     "Earlier month rolls over",
			date:     "2008-01-15",
			wantDays: 219,
			wantAge:  16,
			wantDesc: "",
			scenario: "month comparison comes before day comparison",
		},
		{
			name:     "Later month, smaller day",
			date:     "2008-07-01",
			wantDays: 21,
			wantAge:  15,
			wantDesc: "",
			scenario: "day 1 < day 10 must not shadow the later month",
		},
		{
			name:     "Year unknown",
			date:     "06-16",
			wantDays: 6,
			wantAge:  0,
			wantDesc: " on Friday",
			scenario: "no birth year means no age",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := proximity(today, mustBirthday(t, tt.date, "Somebody"))
			assert.Equal(t, tt.wantDays, p.DaysUntil, tt.scenario)
			assert.Equal(t, tt.wantAge, p.Age, "Age mismatch")
			assert.Equal(t, tt.wantDesc, p.WeekdayDesc, tt.scenario)
		})
	}
}

// TestProximity_LeapDay verifies that a Feb 29 anniversary seen from a
// non-leap context resolves to a real date (Mar 1) without an off-by-one.
func TestProximity_LeapDay(t *testing.T) {
	leapling := mustBirthday(t, "2000-02-29", "Leapling")

	// Non-leap target year: Feb 29 2023 normalizes to Mar 1 2023.
	today := time.Date(2023, 2, 27, 0, 0, 0, 0, time.UTC)
	p := proximity(today, leapling)
	assert.Equal(t, 2, p.DaysUntil)
	assert.Equal(t, 23, p.Age)

	// Leap target year: the real Feb 29 is used.
	today = time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)
	p = proximity(today, leapling)
	assert.Equal(t, 2, p.DaysUntil)
	assert.Equal(t, 24, p.Age)
}

// TestProximity_YearEndWrap verifies weekday phrasing across the New Year
// boundary, where ISO week numbers wrap from 52 back to 1.
func TestProximity_YearEndWrap(t *testing.T) {
	// Saturday, December 27th 2025: ISO week 52 of 2025.
	today := time.Date(2025, 12, 27, 0, 0, 0, 0, time.UTC)

	// Exactly seven days out lands in ISO week 1 of 2026.
	p := proximity(today, mustBirthday(t, "01-03", "Janus"))
	assert.Equal(t, 7, p.DaysUntil)
	assert.Equal(t, " on Saturday next week", p.WeekdayDesc,
		"one week ahead across the year boundary keeps the suffix")

	// Still inside the following ISO week, but fewer than seven days out.
	p = proximity(today, mustBirthday(t, "12-29", "Sylvester"))
	assert.Equal(t, 2, p.DaysUntil)
	assert.Equal(t, " on Monday", p.WeekdayDesc)

	// Two ISO weeks ahead falls back to numeric phrasing.
	p = proximity(today, mustBirthday(t, "01-06", "Epiphany"))
	assert.Equal(t, 10, p.DaysUntil)
	assert.Equal(t, "", p.WeekdayDesc)
}

func TestProximityList_SortAndTruncate(t *testing.T) {
	today := time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC)
	bdays := []data.Birthday{
		mustBirthday(t, "2007-06-19", "Bacillus"),
		mustBirthday(t, "2008-06-16", "Abacus"),
		mustBirthday(t, "2008-06-19", "Abacus"),
		mustBirthday(t, "1990-12-24", "Too far"),
	}

	list := ProximityList(today, bdays, 30)

	require.Len(t, list, 3, "entries past the notify window are cut off")
	assert.Equal(t, "Abacus", list[0].Name, "closest first")
	assert.Equal(t, 6, list[0].DaysUntil)
	assert.Equal(t, "Abacus", list[1].Name, "same-day entries sort by name")
	assert.Equal(t, "Bacillus", list[2].Name)
	assert.Equal(t, 9, list[2].DaysUntil)
}

func TestProximityList_TimeOfDayIgnored(t *testing.T) {
	bday := []data.Birthday{mustBirthday(t, "2008-06-16", "Abacus")}

	morning := ProximityList(time.Date(2023, 6, 10, 0, 1, 0, 0, time.UTC), bday, 30)
	evening := ProximityList(time.Date(2023, 6, 10, 23, 59, 0, 0, time.UTC), bday, 30)

	require.Len(t, morning, 1)
	assert.Equal(t, morning, evening, "whole-day distances must not depend on the clock")
}

// TestProximityList_Idempotent guards against hidden state: two identical
// calls must produce identical results.
func TestProximityList_Idempotent(t *testing.T) {
	today := time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC)
	bdays := []data.Birthday{
		mustBirthday(t, "2008-06-16", "Abacus"),
		mustBirthday(t, "2007-06-19", "Bacillus"),
	}

	first := ProximityList(today, bdays, 30)
	second := ProximityList(today, bdays, 30)
	assert.Equal(t, first, second)
}
