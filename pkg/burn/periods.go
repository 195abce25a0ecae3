// Package burn builds the burn-statistics reports from the supply
// history feed: per-day burn amounts, cumulative burn since a day, and
// the period-expression grammar selecting which days to show.
package burn

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Mode selects between the two report flavors.
type Mode int

const (
	// ModeDaily shows how much was burned during each requested day.
	ModeDaily Mode = iota
	// ModeCumulative shows how much has burned since each requested
	// day, alongside the absolute supply on that day.
	ModeCumulative
)

// Period is one resolved day-offset with its display label.
type Period struct {
	Label string
	Days  int
}

// ParsePeriods expands a period expression into day-offsets.
//
// The grammar: comma-separated tokens, each either a bare integer
// (days), an integer with a d/w/m/y suffix (weeks are seven days,
// months and years subtract on the calendar), or a range A-B of two
// such values expanding to every single day in [A, B). A single bare
// integer N with no comma or dash is shorthand for the range [0, N).
//
// An empty expression yields the mode's default set. ModeCumulative
// rejects any zero-day token since "burnt since today" is undefined.
func ParsePeriods(expr string, mode Mode, now time.Time, maxDays int) ([]Period, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return defaultPeriods(mode), nil
	}

	tokens := strings.Split(strings.ToLower(expr), ",")

	var periods []Period
	if len(tokens) == 1 && isBareCount(tokens[0]) {
		n, err := strconv.Atoi(tokens[0])
		if err != nil || n < 0 {
			return nil, &UserError{Token: tokens[0], Reason: "invalid number format"}
		}
		if n > 0 {
			if n > maxDays {
				n = maxDays
			}
			for day := 0; day < n; day++ {
				periods = append(periods, Period{Label: dayLabel(day), Days: day})
			}
			return checkMode(periods, mode)
		}
		// A bare zero is just today, not a range.
	}

	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if start, end, ok := splitRange(token); ok {
			from, err := tokenDays(start, now)
			if err != nil {
				return nil, err
			}
			to, err := tokenDays(end, now)
			if err != nil {
				return nil, err
			}
			if from >= to {
				return nil, &UserError{Token: token, Reason: "start must be before end"}
			}
			if to-from > maxDays {
				to = from + maxDays
			}
			for day := from; day < to; day++ {
				periods = append(periods, Period{Label: dayLabel(day), Days: day})
			}
			continue
		}

		days, err := tokenDays(token, now)
		if err != nil {
			return nil, err
		}
		label := token
		if !strings.ContainsAny(token, "dwmy") {
			label = token + "d"
		}
		periods = append(periods, Period{Label: label, Days: days})
	}

	return checkMode(periods, mode)
}

func defaultPeriods(mode Mode) []Period {
	if mode == ModeCumulative {
		return []Period{
			{Label: "1d", Days: 1},
			{Label: "7d", Days: 7},
			{Label: "30d", Days: 30},
			{Label: "365d", Days: 365},
		}
	}
	periods := make([]Period, 0, 10)
	for day := 0; day < 10; day++ {
		periods = append(periods, Period{Label: dayLabel(day), Days: day})
	}
	return periods
}

func checkMode(periods []Period, mode Mode) ([]Period, error) {
	if mode == ModeCumulative {
		for _, p := range periods {
			if p.Days == 0 {
				return nil, &UserError{
					Token:  p.Label,
					Reason: "cannot show cumulative burn for 0 days; use the daily report for today's burn",
				}
			}
		}
	}
	return periods, nil
}

func dayLabel(day int) string {
	return strconv.Itoa(day) + "d"
}

// isBareCount reports whether the token is a plain unsigned integer
// with no range dash and no unit suffix.
func isBareCount(token string) bool {
	if token == "" || strings.Contains(token, "-") {
		return false
	}
	return !strings.ContainsAny(token[len(token)-1:], "dwmy")
}

// splitRange splits "A-B" into endpoints. A leading dash is not a
// range, it is a malformed negative number left for tokenDays to
// reject.
func splitRange(token string) (string, string, bool) {
	i := strings.Index(token, "-")
	if i <= 0 {
		return "", "", false
	}
	return token[:i], token[i+1:], true
}

// tokenDays resolves one endpoint or standalone token to a day-offset.
// Month and year suffixes walk the calendar backwards from now so
// "1m" in March covers fewer days than "1m" in August.
func tokenDays(token string, now time.Time) (int, error) {
	if token == "" {
		return 0, &UserError{Token: token, Reason: "invalid number format"}
	}

	suffix := token[len(token)-1]
	digits := token
	if suffix == 'd' || suffix == 'w' || suffix == 'm' || suffix == 'y' {
		digits = token[:len(token)-1]
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, &UserError{Token: token, Reason: "invalid number format"}
	}

	switch suffix {
	case 'w':
		return n * 7, nil
	case 'm':
		return civilDaysBetween(now.AddDate(0, -n, 0), now), nil
	case 'y':
		return civilDaysBetween(now.AddDate(-n, 0, 0), now), nil
	default:
		return n, nil
	}
}

// civilDaysBetween counts calendar days from then to now in UTC.
func civilDaysBetween(then, now time.Time) int {
	return int(civilMidnight(now).Sub(civilMidnight(then)).Hours() / 24)
}

func civilMidnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// UserError reports a period expression the caller got wrong, carrying
// the offending token for the reply.
type UserError struct {
	Token  string
	Reason string
}

func (e *UserError) Error() string {
	return fmt.Sprintf("invalid period %q: %s", e.Token, e.Reason)
}
