package game

import (
	"github.com/geneotech/GainsMUD/pkg/state"
)

// Variant selects one of the two parallel boss games.
type Variant string

const (
	// VariantBoss is the primary supply boss.
	VariantBoss Variant = "boss"
	// VariantWhale is the secondary boss tracking the whale wallet.
	VariantWhale Variant = "whale"
)

// Mode classifies what a command invocation did.
type Mode int

const (
	// ModeInitialized is the first-ever observation for a variant.
	ModeInitialized Mode = iota
	// ModeDamaged is an attack that dealt nonzero damage.
	ModeDamaged
	// ModeMissed is an attack whose delta was exactly zero.
	ModeMissed
	// ModeHealed is an observation where the reading went up.
	ModeHealed
	// ModeStatus is a read-mostly status view.
	ModeStatus
)

// Result bundles the post-update state a renderer needs. All slices
// and maps are snapshots owned by the caller.
type Result struct {
	Variant Variant
	Mode    Mode

	// Reading is the fetched supply value the panel displays.
	Reading int64

	// Milestone is set when the reading crossed a whole-million
	// boundary downward.
	Milestone bool

	// Defeated is set for variants that die at zero reading.
	Defeated bool

	// ShowFull requests the one-time full-detail art.
	ShowFull bool

	// FromStatus marks a panel requested by the status command.
	FromStatus bool

	LastActor     string
	LastMagnitude int64
	RecentEvents  []state.Event
	Players       map[string]state.PlayerRecord
}

func snapshotPlayers(players map[string]*state.PlayerRecord) map[string]state.PlayerRecord {
	out := make(map[string]state.PlayerRecord, len(players))
	for name, p := range players {
		out[name] = *p
	}
	return out
}
