package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/tagprompt/internal/config"
)

// ImportResult is the outcome of a vCard import: data-file birthday records
// ready for serialization, plus counts for reporting.
type ImportResult struct {
	// Records are [date, name] pairs in the JSON data file's format:
	// YYYY-MM-DD, or MM-DD when the card carried no birth year.
	Records [][]string

	// Processed is the number of cards decoded.
	Processed int

	// Skipped is the number of cards without a usable birthday.
	Skipped int
}

// ImportVCards reads a vCard stream and collects every contact that has a
// parseable BDAY field. Malformed cards are skipped with a log line rather
// than aborting the stream, to maximize data recovery.
func ImportVCards(ctx context.Context, r io.Reader) (*ImportResult, error) {
	decoder := vcard.NewDecoder(r)
	res := &ImportResult{}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyError, err)
			continue
		}

		res.Processed++
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			res.Skipped++
			continue
		}

		birthDate, yearKnown, err := parseVCardDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyValue, bday.Value)
			res.Skipped++
			continue
		}

		// Name strategy: FN (formatted) > N (structured) > fallback.
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}

		dateStr := birthDate.Format(config.DateFormatISO)
		if !yearKnown {
			// A year-less Feb 29 cannot be stored: the data file's no-year
			// sentinel is not a leap year.
			if birthDate.Month() == time.February && birthDate.Day() == 29 {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompImporter,
					config.LogKeyValue, bday.Value)
				res.Skipped++
				continue
			}
			dateStr = birthDate.Format(config.DateFormatNoYear)
		}
		res.Records = append(res.Records, []string{dateStr, name})
	}

	return res, nil
}

// ImportRemote fetches a vCard stream over HTTP and imports it. The fetcher
// is an interface so tests can run without a network.
func ImportRemote(ctx context.Context, fetcher VCardFetcher, url, user, pass string) (*ImportResult, error) {
	body, err := fetcher.Fetch(ctx, url, user, pass)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()
	return ImportVCards(ctx, body)
}

// parseVCardDate handles the date formats seen in the wild in BDAY fields.
// Year-less forms ("--MM-DD") resolve against a fixed leap year so Feb 29
// survives the round trip.
func parseVCardDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.VCardFormatFullDash,
		config.VCardFormatFullBasic,
		config.VCardFormatRFC3339,
		config.VCardFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	formatsWithoutYear := []string{config.VCardFormatNoYearD, config.VCardFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			safeDate := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return safeDate, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
