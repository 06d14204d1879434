// Package parser turns announcement bullet lines such as
//
//	Summer Fest (7/1 10:00 UTC - 7/10 23:59 UTC)
//	Summer Fest (7/1 10:00 - 7/10 23:59 UTC)
//	Maintenance (7/3/2024 4:00:00 UTC)
//
// into event drafts.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"neneka/src-server/model"
)

var (
	ErrUnrecognizedFormat = errors.New("unrecognized format")
	ErrMalformedDate      = errors.New("malformed date")
)

// ParseError ties a failure to the raw line that caused it.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s | line: %q", e.Err.Error(), e.Line)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

const dateLayout = "1/2/2006 15:04:05"

// Parse reads one line, assigning referenceYear to any date without a year.
// A yearless end date that would land before the start is moved to the next
// year.
func Parse(line string, referenceYear int) (model.EventDraft, error) {
	return parse(line, func(int) int { return referenceYear })
}

// ParseAt is Parse with the year picked relative to now: a yearless date more
// than six months behind now's month belongs to next year, one more than six
// months ahead belongs to last year.
func ParseAt(line string, now time.Time) (model.EventDraft, error) {
	now = now.UTC()
	return parse(line, func(month int) int {
		switch diff := int(now.Month()) - month; {
		case diff > 6:
			return now.Year() + 1
		case diff < -6:
			return now.Year() - 1
		default:
			return now.Year()
		}
	})
}

func parse(line string, yearOf func(month int) int) (model.EventDraft, error) {
	fail := func(kind error, format string, args ...any) (model.EventDraft, error) {
		return model.EventDraft{}, &ParseError{
			Line: line,
			Err:  fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
		}
	}

	// names may contain parentheses themselves
	open := strings.LastIndex(line, "(")
	if open < 0 {
		return fail(ErrUnrecognizedFormat, "no date in parentheses")
	}
	name := strings.TrimSpace(line[:open])
	if name == "" {
		return fail(ErrUnrecognizedFormat, "name is blank")
	}
	payload := strings.TrimSpace(strings.Trim(strings.TrimSpace(line[open:]), "()"))

	tokens := strings.Fields(payload)
	if len(tokens) < 3 {
		return fail(ErrUnrecognizedFormat, "expected at least 3 date tokens, got %d", len(tokens))
	}
	if slashes := strings.Count(tokens[0], "/"); slashes == 0 || slashes > 2 {
		return fail(ErrUnrecognizedFormat, "first token %q isn't a date", tokens[0])
	}

	start, _, err := parseDateTime(tokens[0], tokens[1], yearOf)
	if err != nil {
		return fail(ErrMalformedDate, "start: %s", err)
	}
	draft := model.EventDraft{Name: name, StartDate: start}

	sep := -1
	for i, token := range tokens {
		if token == "-" {
			sep = i
			break
		}
	}
	if sep < 0 {
		return draft, nil
	}

	// an end that isn't shaped like "M/D H:MM" is dropped, the event is kept
	// open-ended
	rest := tokens[sep+1:]
	if len(rest) < 2 || !strings.Contains(rest[0], "/") || !strings.Contains(rest[1], ":") {
		return draft, nil
	}
	end, endHasYear, err := parseDateTime(rest[0], rest[1], yearOf)
	if err != nil {
		return fail(ErrMalformedDate, "end: %s", err)
	}
	if end.Before(start) && !endHasYear {
		end = end.AddDate(1, 0, 0)
	}
	if end.Before(start) {
		return fail(ErrMalformedDate, "end %s is before start %s", end, start)
	}
	draft.EndDate = &end
	return draft, nil
}

// parseDateTime normalizes "M/D[/Y]" and "H:MM[:SS]" and parses them in UTC.
func parseDateTime(dateToken, timeToken string, yearOf func(month int) int) (time.Time, bool, error) {
	parts := strings.Split(dateToken, "/")
	hasYear := len(parts) == 3
	switch len(parts) {
	case 2:
		month, err := strconv.Atoi(parts[0])
		if err != nil {
			return time.Time{}, false, fmt.Errorf("month %q: %w", parts[0], err)
		}
		dateToken = fmt.Sprintf("%s/%d", dateToken, yearOf(month))
	case 3:
	default:
		return time.Time{}, false, fmt.Errorf("date %q", dateToken)
	}

	switch strings.Count(timeToken, ":") {
	case 1:
		timeToken += ":00"
	case 2:
	default:
		return time.Time{}, false, fmt.Errorf("time %q", timeToken)
	}

	t, err := time.ParseInLocation(dateLayout, dateToken+" "+timeToken, time.UTC)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, hasYear, nil
}

// ParseLines parses every line independently; a bad line is reported in errs
// and never stops the rest.
func ParseLines(lines []string, now time.Time) (drafts []model.EventDraft, errs []error) {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		draft, err := ParseAt(line, now)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts, errs
}
