// Package render turns engine results into the fixed-width ASCII
// panels the chat bot replies with. Every function here is a pure
// function of its inputs so panels can be asserted byte-for-byte.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/geneotech/GainsMUD/pkg/format"
	"github.com/geneotech/GainsMUD/pkg/game"
	"github.com/geneotech/GainsMUD/pkg/gamecfg"
	"github.com/geneotech/GainsMUD/pkg/state"
)

// Panel renders the battle panel for an engine result.
func Panel(res *game.Result, vcfg *gamecfg.VariantConfig) string {
	a := artFor(vcfg.Stage(res.Reading))

	lines := []string{
		border,
		a.banner,
		bannerFiller,
		supplyLine(res.Reading, vcfg.MaxSupply),
		".[" + format.ProgressBar(res.Reading, 25) + "].",
		blankRow,
	}

	lines = append(lines, eventLines(res.RecentEvents, vcfg.RecentEvents)...)

	switch {
	case res.Defeated:
		lines = append(lines, victoryArt...)
	case res.Milestone:
		lines = append(lines, milestoneArt...)
	case res.ShowFull:
		lines = append(lines, a.body...)
	case res.LastMagnitude > 0:
		// Heavier hits peel back more of the boss. A miss reveals
		// nothing.
		visible := 1 + int(res.LastMagnitude/vcfg.RevealDivisor)
		if visible > len(a.body) {
			visible = len(a.body)
		}
		lines = append(lines, a.body[:visible]...)
	}

	lines = append(lines, border)
	return strings.Join(lines, "\n")
}

// supplyLine renders `.[    current /    maximum ].` with both numbers
// right-aligned in eleven-character columns.
func supplyLine(current, maximum int64) string {
	return fmt.Sprintf(".[%s /%s ].",
		format.PadLeft(format.GroupedNumber(current), 11),
		format.PadLeft(format.GroupedNumber(maximum), 11))
}

// eventLines renders the most recent events, newest first. Damage is a
// right-aligned negative number with the attacker's nickname, healing
// a right-aligned positive number with a blank actor field, and a miss
// a fixed marker with the attacker's nickname.
func eventLines(events []state.Event, limit int) []string {
	if len(events) > limit {
		events = events[len(events)-limit:]
	}

	lines := make([]string, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		var body string
		switch {
		case ev.IsMiss():
			nick := format.TruncateNickname(ev.Actor, 12)
			body = format.PadRight("      <miss>  "+format.PadRight(nick, 12)+" ", bodyWidth)
		case ev.IsHeal():
			body = format.PadLeft("+"+format.GroupedNumber(ev.Magnitude)+strings.Repeat(" ", 15), bodyWidth)
		default:
			nick := format.TruncateNickname(ev.Actor, 12)
			body = format.PadLeft("-"+format.GroupedNumber(ev.Magnitude)+"  "+format.PadRight(nick, 12)+" ", bodyWidth)
		}
		lines = append(lines, "."+body+".")
	}
	return lines
}

// Leaderboard renders every player sorted by descending cumulative
// damage. Ties break alphabetically so the output is stable.
func Leaderboard(players map[string]state.PlayerRecord) string {
	type entry struct {
		name   string
		damage int64
	}
	sorted := make([]entry, 0, len(players))
	for name, p := range players {
		sorted = append(sorted, entry{name, p.Damage})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].damage != sorted[j].damage {
			return sorted[i].damage > sorted[j].damage
		}
		return sorted[i].name < sorted[j].name
	})

	lines := []string{
		strings.Repeat("-", leaderboardWidth),
		".    GMUD LEADERBOARDS    .",
		strings.Repeat("-", leaderboardWidth),
	}
	for _, e := range sorted {
		nick := format.TruncateNickname(e.name, 12)
		body := fmt.Sprintf(" %s %s ",
			format.PadRight(nick, 12),
			format.PadLeft(format.GroupedNumber(e.damage), 10))
		lines = append(lines, "."+body+".")
	}
	lines = append(lines, strings.Repeat("-", leaderboardWidth))
	return strings.Join(lines, "\n")
}

// InitializedMessage is the plain reply sent when a command observes
// the very first supply reading and there is no battle to render yet.
func InitializedMessage(res *game.Result) string {
	if res.FromStatus {
		return fmt.Sprintf("🎮 BOSS BATTLE STATUS\n\n🐉 HP: %s", format.GroupedNumber(res.Reading))
	}
	return fmt.Sprintf("🎮 BOSS BATTLE INITIALIZED!\n\n🐉 HP: %s\nAttack again to deal damage!", format.GroupedNumber(res.Reading))
}
