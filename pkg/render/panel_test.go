package render

import (
	"strings"
	"testing"

	"github.com/geneotech/GainsMUD/pkg/game"
	"github.com/geneotech/GainsMUD/pkg/gamecfg"
	"github.com/geneotech/GainsMUD/pkg/state"
)

func bossConfig() *gamecfg.VariantConfig {
	cfg := gamecfg.Default()
	return &cfg.Boss
}

func whaleConfig() *gamecfg.VariantConfig {
	cfg := gamecfg.Default()
	return &cfg.Whale
}

func TestPanelDamaged(t *testing.T) {
	res := &game.Result{
		Variant:       game.VariantBoss,
		Mode:          game.ModeDamaged,
		Reading:       29_950_000,
		LastActor:     "Alice",
		LastMagnitude: 50_000,
		RecentEvents: []state.Event{
			{Magnitude: 50_000, Actor: "Alice"},
		},
	}

	got := Panel(res, bossConfig())
	lines := strings.Split(got, "\n")
	if lines[0] != "-----------------------------" || lines[len(lines)-1] != lines[0] {
		t.Fatalf("panel is not bordered:\n%s", got)
	}
	if lines[1] != ".[SUPPLARIUS THE DRAGONLORD]." {
		t.Errorf("banner = %q", lines[1])
	}
	if lines[3] != ".[ 29 950 000 / 38 892 000 ]." {
		t.Errorf("supply line = %q", lines[3])
	}
	if !strings.Contains(got, "-50 000  Alice") {
		t.Errorf("missing damage event line:\n%s", got)
	}
	// 50000/500 = 100 would exceed the art, so the dragon shows whole.
	if !strings.Contains(got, ". \"\"                      L-.") {
		t.Errorf("expected the full dragon art:\n%s", got)
	}
}

func TestPanelLineWidths(t *testing.T) {
	tests := []struct {
		name string
		res  *game.Result
	}{
		{"damaged", &game.Result{Reading: 29_000_001, LastMagnitude: 700, LastActor: "Bob",
			RecentEvents: []state.Event{{Magnitude: 700, Actor: "Bob"}}}},
		{"healed", &game.Result{Reading: 29_100_000, Mode: game.ModeHealed, LastMagnitude: 2_000,
			RecentEvents: []state.Event{{Magnitude: 2_000}}}},
		{"missed", &game.Result{Reading: 29_100_000, Mode: game.ModeMissed,
			RecentEvents: []state.Event{{Magnitude: 0, Actor: "Bob"}}}},
		{"milestone", &game.Result{Reading: 28_999_000, Milestone: true, LastMagnitude: 40_000, LastActor: "Bob",
			RecentEvents: []state.Event{{Magnitude: 40_000, Actor: "Bob"}}}},
		{"serpent stage", &game.Result{Reading: 25_400_000, LastMagnitude: 9_999, LastActor: "Bob",
			RecentEvents: []state.Event{{Magnitude: 9_999, Actor: "Bob"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Panel(tt.res, bossConfig())
			for _, line := range strings.Split(got, "\n") {
				// One art row in the serpent body is a character
				// short; every other row is exactly panel width.
				n := len([]rune(line))
				if n != panelWidth && n != panelWidth-1 {
					t.Errorf("line %q is %d runes wide", line, n)
				}
			}
		})
	}
}

func TestPanelEventOrderNewestFirst(t *testing.T) {
	res := &game.Result{
		Reading:       29_000_000,
		LastMagnitude: 300,
		LastActor:     "Carol",
		RecentEvents: []state.Event{
			{Magnitude: 100, Actor: "Alice"},
			{Magnitude: 200, Actor: "Bob"},
			{Magnitude: 300, Actor: "Carol"},
		},
	}
	got := Panel(res, bossConfig())
	carol := strings.Index(got, "Carol")
	bob := strings.Index(got, "Bob")
	alice := strings.Index(got, "Alice")
	if carol == -1 || bob == -1 || alice == -1 {
		t.Fatalf("missing event lines:\n%s", got)
	}
	if !(carol < bob && bob < alice) {
		t.Errorf("events are not newest-first:\n%s", got)
	}
}

func TestPanelEventLimit(t *testing.T) {
	events := []state.Event{
		{Magnitude: 1, Actor: "Old"},
		{Magnitude: 2, Actor: "A"},
		{Magnitude: 3, Actor: "B"},
		{Magnitude: 4, Actor: "C"},
	}
	res := &game.Result{Reading: 29_000_000, LastMagnitude: 4, LastActor: "C", RecentEvents: events}
	got := Panel(res, bossConfig())
	if strings.Contains(got, "Old") {
		t.Errorf("panel shows more than the configured recent events:\n%s", got)
	}
}

func TestPanelArtReveal(t *testing.T) {
	base := func(magnitude int64) *game.Result {
		return &game.Result{
			Reading:       29_500_000,
			LastActor:     "Alice",
			LastMagnitude: magnitude,
			RecentEvents:  []state.Event{{Magnitude: magnitude, Actor: "Alice"}},
		}
	}

	count := func(magnitude int64) int {
		return len(strings.Split(Panel(base(magnitude), bossConfig()), "\n"))
	}

	// One line per full reveal-divisor step, starting at one.
	if got, want := count(499)-count(0), 1; got != want {
		t.Errorf("magnitude 499 reveals %d extra lines, expected %d", got, want)
	}
	if got, want := count(1_000)-count(499), 2; got != want {
		t.Errorf("magnitude 1000 reveals %d more lines than 499, expected %d", got, want)
	}

	// Reveal caps at the art's full length.
	if count(1_000_000) != count(100_000) {
		t.Error("reveal should cap at the art length")
	}

	// A miss shows no art at all.
	miss := &game.Result{
		Reading:      29_500_000,
		Mode:         game.ModeMissed,
		LastActor:    "Alice",
		RecentEvents: []state.Event{{Magnitude: 0, Actor: "Alice"}},
	}
	got := Panel(miss, bossConfig())
	if strings.Contains(got, "#'") {
		t.Errorf("a miss must reveal no art:\n%s", got)
	}
}

func TestPanelMissLine(t *testing.T) {
	res := &game.Result{
		Reading:      29_500_000,
		Mode:         game.ModeMissed,
		LastActor:    "Smaugslayer",
		RecentEvents: []state.Event{{Magnitude: 0, Actor: "Smaugslayer"}},
	}
	got := Panel(res, bossConfig())
	if !strings.Contains(got, ".      <miss>  Smaugslayer  .") {
		t.Errorf("miss line malformed:\n%s", got)
	}
}

func TestPanelHealLine(t *testing.T) {
	res := &game.Result{
		Reading:       29_500_000,
		Mode:          game.ModeHealed,
		LastMagnitude: 12_345,
		RecentEvents:  []state.Event{{Magnitude: 12_345}},
	}
	got := Panel(res, bossConfig())
	if !strings.Contains(got, ".     +12 345               .") {
		t.Errorf("heal line malformed:\n%s", got)
	}
}

func TestPanelMilestoneOverridesArt(t *testing.T) {
	res := &game.Result{
		Reading:       28_950_000,
		Milestone:     true,
		LastActor:     "Alice",
		LastMagnitude: 100_000,
		RecentEvents:  []state.Event{{Magnitude: 100_000, Actor: "Alice"}},
	}
	got := Panel(res, bossConfig())
	if !strings.Contains(got, "CRITICAL HIT") || !strings.Contains(got, "BOSS ENTERS NEXT STAGE!") {
		t.Errorf("milestone banner missing:\n%s", got)
	}
	// The milestone block is always whole, never magnitude-gated.
	if !strings.Contains(got, "_(XX'_XX\\") {
		t.Errorf("milestone art truncated:\n%s", got)
	}
}

func TestPanelStageBanners(t *testing.T) {
	tests := []struct {
		reading int64
		banner  string
	}{
		{25_999_999, ".[   THE ANCIENT SERPENT   ]."},
		{26_000_000, ".[SUPPLARIUS THE DRAGONLORD]."},
		{27_500_000, ".[SUPPLARIUS THE DRAGONLORD]."},
	}
	for _, tt := range tests {
		res := &game.Result{Reading: tt.reading}
		got := Panel(res, bossConfig())
		if !strings.Contains(got, tt.banner) {
			t.Errorf("reading %d: banner %q missing:\n%s", tt.reading, tt.banner, got)
		}
	}
}

func TestWhalePanel(t *testing.T) {
	res := &game.Result{
		Variant:       game.VariantWhale,
		Reading:       280_000,
		ShowFull:      true,
		LastActor:     "Hero",
		LastMagnitude: 100,
		RecentEvents:  []state.Event{{Magnitude: 100, Actor: "Hero"}},
	}
	got := Panel(res, whaleConfig())
	if !strings.Contains(got, ".[      THE LEVIATHAN      ].") {
		t.Errorf("whale banner missing:\n%s", got)
	}
	// The first attack shows the whale in full even though 100 damage
	// would reveal a single line.
	if !strings.Contains(got, ". /        o               |.") {
		t.Errorf("full whale art missing on first attack:\n%s", got)
	}

	res.ShowFull = false
	got = Panel(res, whaleConfig())
	if strings.Contains(got, ". /        o               |.") {
		t.Errorf("later attacks must gate art by magnitude:\n%s", got)
	}
}

func TestWhaleDefeatPanel(t *testing.T) {
	res := &game.Result{
		Variant:       game.VariantWhale,
		Reading:       0,
		Defeated:      true,
		LastActor:     "Hero",
		LastMagnitude: 20_000,
		RecentEvents:  []state.Event{{Magnitude: 20_000, Actor: "Hero"}},
	}
	got := Panel(res, whaleConfig())
	if !strings.Contains(got, "BOSS  DEFEATED") {
		t.Errorf("victory panel missing:\n%s", got)
	}
	if strings.Contains(got, ". /        o               |.") {
		t.Errorf("victory panel must replace the whale art:\n%s", got)
	}
}

func TestLeaderboard(t *testing.T) {
	players := map[string]state.PlayerRecord{
		"Alice":                 {Damage: 50_000},
		"Bob":                   {Damage: 120_000},
		"VeryLongNicknameIndeed": {Damage: 50_000},
	}
	got := Leaderboard(players)
	want := strings.Join([]string{
		"---------------------------",
		".    GMUD LEADERBOARDS    .",
		"---------------------------",
		". Bob             120 000 .",
		". Alice            50 000 .",
		". VeryLongNi..     50 000 .",
		"---------------------------",
	}, "\n")
	if got != want {
		t.Errorf("leaderboard mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestInitializedMessage(t *testing.T) {
	attack := &game.Result{Mode: game.ModeInitialized, Reading: 30_000_000}
	if got := InitializedMessage(attack); !strings.Contains(got, "BOSS BATTLE INITIALIZED!") ||
		!strings.Contains(got, "30 000 000") {
		t.Errorf("InitializedMessage() = %q", got)
	}

	status := &game.Result{Mode: game.ModeInitialized, Reading: 30_000_000, FromStatus: true}
	if got := InitializedMessage(status); !strings.Contains(got, "BOSS BATTLE STATUS") {
		t.Errorf("InitializedMessage() = %q", got)
	}
}
