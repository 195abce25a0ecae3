// Package format provides the text formatting primitives shared by the
// panel renderer and the burn report: nickname sanitization, grouped
// number formatting, progress bars and cooldown durations.
package format

import (
	"strings"
	"time"
)

const (
	// MillionStep is the HP span covered by one full progress bar.
	MillionStep = 1_000_000

	ellipsis  = ".."
	barFilled = '█'
	barEmpty  = '-'
)

// CleanString removes code points outside the basic multilingual plane,
// which covers emojis and other pictographic characters that break
// fixed-width panel alignment.
func CleanString(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return -1
		}
		return r
	}, s)
}

// TruncateNickname sanitizes a nickname and truncates it to maxLength
// runes, appending a two-character ellipsis marker when truncation
// occurred. The result never exceeds maxLength runes.
func TruncateNickname(nickname string, maxLength int) string {
	cleaned := []rune(CleanString(nickname))
	if len(cleaned) <= maxLength {
		return string(cleaned)
	}
	return string(cleaned[:maxLength-len(ellipsis)]) + ellipsis
}

// GroupedNumber formats n with a space as the thousands separator,
// preserving the sign.
func GroupedNumber(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}

	var groups []string
	for {
		rem := n % 1000
		n /= 1000
		if n == 0 {
			groups = append([]string{itoa(rem, 0)}, groups...)
			break
		}
		groups = append([]string{itoa(rem, 3)}, groups...)
	}

	s := strings.Join(groups, " ")
	if neg {
		return "-" + s
	}
	return s
}

// CommaNumber formats n with a comma as the thousands separator,
// preserving the sign. Panels group with spaces; the burn report
// groups with commas.
func CommaNumber(n int64) string {
	return strings.ReplaceAll(GroupedNumber(n), " ", ",")
}

func itoa(n int64, width int) string {
	digits := []byte{}
	for {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
		if n == 0 {
			break
		}
	}
	for len(digits) < width {
		digits = append([]byte{'0'}, digits...)
	}
	return string(digits)
}

// ProgressBar renders a fixed-width bar of progress toward the next
// round-million boundary. A reading sitting exactly on a boundary
// yields an all-empty bar; any nonzero progress shows at least one
// filled cell.
func ProgressBar(current int64, length int) string {
	progress := current % MillionStep
	if progress < 0 {
		progress += MillionStep
	}
	filled := int(float64(progress) / MillionStep * float64(length))
	if progress > 0 {
		filled++
		if filled > length {
			filled = length
		}
	} else {
		filled = 0
	}

	return strings.Repeat(string(barFilled), filled) +
		strings.Repeat(string(barEmpty), length-filled)
}

// Duration renders a remaining-cooldown duration as "1h 30m 5s",
// omitting zero components. Non-positive durations render as "0s".
func Duration(d time.Duration) string {
	secs := int64(d.Seconds())
	if secs <= 0 {
		return "0s"
	}

	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, itoa(hours, 0)+"h")
	}
	if minutes > 0 {
		parts = append(parts, itoa(minutes, 0)+"m")
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, itoa(seconds, 0)+"s")
	}

	return strings.Join(parts, " ")
}

// CodeBlock wraps text in a pre-formatted chat block, escaping
// backslashes and backticks so the payload survives markdown parsing.
func CodeBlock(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, "`", "\\`")
	return "```\n" + text + "\n```"
}

// PadLeft right-aligns s in a field of width runes.
func PadLeft(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

// PadRight left-aligns s in a field of width runes.
func PadRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
