package burn

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/geneotech/GainsMUD/pkg/format"
	"github.com/geneotech/GainsMUD/pkg/gamecfg"
	"github.com/geneotech/GainsMUD/pkg/supply"
)

// Report column geometry, matching the panel bot's fixed-width output.
const (
	labelWidth = 5
	beforePct  = 5
	numWidth   = 10
	pctWidth   = 8 // "(xx.x%) "

	separator = "----------------------------"
)

// Aggregator renders burn reports from the supply history feed. It
// never touches the game state document, so it takes no part in the
// engine's locking.
type Aggregator struct {
	history supply.HistoryFetcher
	cfg     *gamecfg.Provider
}

// NewAggregator creates a burn report builder.
func NewAggregator(history supply.HistoryFetcher, cfg *gamecfg.Provider) *Aggregator {
	return &Aggregator{history: history, cfg: cfg}
}

// Report renders the burn report for a period expression. It returns
// a UserError for a malformed expression and a wrapped fetch error
// when the history feed is unavailable.
func (a *Aggregator) Report(ctx context.Context, expr string, mode Mode, now time.Time) (string, error) {
	bcfg := a.cfg.Snapshot().Burn

	periods, err := ParsePeriods(expr, mode, now, bcfg.MaxDays)
	if err != nil {
		return "", err
	}

	entries, err := a.history.History(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch supply history: %w", err)
	}
	currentSupply := entries[0].Supply

	header := a.header(expr, mode, periods, now)

	if mode == ModeCumulative {
		return a.cumulative(periods, entries, currentSupply, now, header, bcfg.MaxDisplayLines), nil
	}
	return a.daily(periods, entries, now, header, bcfg.MaxDisplayLines), nil
}

func (a *Aggregator) header(expr string, mode Mode, periods []Period, now time.Time) string {
	if mode == ModeDaily {
		return "  Burn each day (days ago):"
	}
	if strings.TrimSpace(expr) != "" && len(periods) == 1 {
		switch periods[0].Label {
		case "1d", "7d", "30d", "365d":
		default:
			since := civilMidnight(now).AddDate(0, 0, -periods[0].Days)
			return fmt.Sprintf("  Burn since %s:", since.Format("2006-01-02"))
		}
	}
	return "  Burnt over duration:"
}

func (a *Aggregator) cumulative(periods []Period, entries []supply.Entry,
	currentSupply int64, now time.Time, header string, maxLines int) string {

	burnBody := make([]string, 0, len(periods))
	supplyBody := make([]string, 0, len(periods))

	for _, p := range periods {
		entry, ok := entryAtOffset(entries, p.Days, now)
		if !ok {
			burnBody = append(burnBody, p.Label+": No data")
			supplyBody = append(supplyBody, p.Label+": No data")
			continue
		}

		burned := entry.Supply - currentSupply
		pct := 0.0
		if entry.Supply > 0 {
			pct = float64(burned) / float64(entry.Supply) * 100
		}
		burnBody = append(burnBody, burnLine(p.Label, burned, pct))
		supplyBody = append(supplyBody, supplyLine(p.Label, entry.Supply))
	}

	burnBody = truncateBody(burnBody, maxLines)
	supplyBody = truncateBody(supplyBody, maxLines)

	burnLines := append([]string{separator, header, separator}, burnBody...)
	supplyLines := append([]string{
		separator,
		"  Supply:" + strings.Repeat(" ", 9) + format.PadLeft(format.CommaNumber(currentSupply), numWidth),
		separator,
	}, supplyBody...)

	all := append(burnLines, "")
	all = append(all, supplyLines...)
	return strings.Join(all, "\n")
}

func (a *Aggregator) daily(periods []Period, entries []supply.Entry,
	now time.Time, header string, maxLines int) string {

	body := make([]string, 0, len(periods))

	var (
		totalBurned int64
		totalPct    float64
		resolved    int

		maxBurned int64
		maxPct    float64
		maxDate   time.Time
	)

	for _, p := range periods {
		label := p.Label
		switch label {
		case "0d":
			label = "Today"
		case "1d":
			label = "Ystdy"
		}

		day, okDay := entryAtOffset(entries, p.Days, now)
		dayBefore, okBefore := entryAtOffset(entries, p.Days+1, now)
		if !okDay || !okBefore {
			body = append(body, label+": No data")
			continue
		}

		burned := dayBefore.Supply - day.Supply
		pct := 0.0
		if dayBefore.Supply > 0 {
			pct = float64(burned) / float64(dayBefore.Supply) * 100
		}
		body = append(body, burnLine(label, burned, pct))

		if burned > maxBurned {
			maxBurned = burned
			maxPct = pct
			maxDate = civilMidnight(now).AddDate(0, 0, -p.Days)
		}
		totalBurned += burned
		totalPct += pct
		resolved++
	}

	lines := append([]string{separator, header, separator}, truncateBody(body, maxLines)...)

	if resolved > 0 {
		lines = append(lines, "")
		lines = append(lines, burnLine("Avg", totalBurned/int64(resolved), totalPct/float64(resolved)))
		lines = append(lines, burnLine("Tot", totalBurned, totalPct))
		lines = append(lines, rightAligned(fmt.Sprintf("(over %d days)", resolved)))
		if maxBurned > 0 {
			lines = append(lines, burnLine("Max", maxBurned, maxPct))
			lines = append(lines, rightAligned(fmt.Sprintf("(on %s)", maxDate.Format("2006-01-02"))))
		}
	}

	return strings.Join(lines, "\n")
}

// entryAtOffset finds the history entry whose UTC calendar date is
// exactly offset days before now, picking the latest timestamp when a
// date has several entries.
func entryAtOffset(entries []supply.Entry, offset int, now time.Time) (supply.Entry, bool) {
	target := civilMidnight(now).AddDate(0, 0, -offset)

	var best supply.Entry
	found := false
	for _, e := range entries {
		if !civilMidnight(e.Date).Equal(target) {
			continue
		}
		if !found || e.Date.After(best.Date) {
			best = e
			found = true
		}
	}
	return best, found
}

// truncateBody caps the body at maxLines by keeping an even head and
// tail split around an ellipsis marker.
func truncateBody(body []string, maxLines int) []string {
	if len(body) <= maxLines {
		return body
	}
	head := maxLines / 2
	tail := maxLines - head

	out := make([]string, 0, maxLines+1)
	out = append(out, body[:head]...)
	out = append(out, "  (...)")
	out = append(out, body[len(body)-tail:]...)
	return out
}

func burnLine(label string, burned int64, pct float64) string {
	return format.PadLeft(label, labelWidth) +
		strings.Repeat(" ", beforePct) +
		fmt.Sprintf("(%s) ", pctString(pct)) +
		format.PadLeft(format.CommaNumber(burned), numWidth)
}

func supplyLine(label string, supplyOnDay int64) string {
	return format.PadLeft(label, labelWidth) + " ago" +
		strings.Repeat(" ", 9) +
		format.PadLeft(format.CommaNumber(supplyOnDay), numWidth)
}

// pctString formats a percentage with adaptive precision: two decimals
// under 10, one decimal from 10 up, and one fewer decimal when
// negative so the sign does not widen the column.
func pctString(pct float64) string {
	switch {
	case pct < 0 && pct > -10:
		return fmt.Sprintf("%.1f%%", pct)
	case pct < 0:
		return fmt.Sprintf("%4.0f%%", pct)
	case pct < 10:
		return fmt.Sprintf("%.2f%%", pct)
	default:
		return fmt.Sprintf("%4.1f%%", pct)
	}
}

// rightAligned pads a parenthetical note so it ends flush with the
// number column above it.
func rightAligned(text string) string {
	padding := labelWidth + beforePct + pctWidth + numWidth - len(text)
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat(" ", padding) + text
}
