// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"time"
)

// GameState is the complete persisted game document. It holds one
// BossState per boss variant; the two variants never share fields.
type GameState struct {
	Boss  BossState `json:"boss"`
	Whale BossState `json:"whale"`
}

// BossState tracks everything one boss variant needs between commands.
type BossState struct {
	// LastReading is the supply value observed on the previous
	// successful command. Nil means the variant is uninitialized.
	LastReading *int64 `json:"last_reading"`

	// Players maps player identity to lifetime damage and the
	// per-actor cooldown anchor.
	Players map[string]*PlayerRecord `json:"players"`

	// RecentEvents is append-only between milestone crossings. The
	// renderer trims to the display constant; the full history is
	// kept so a milestone reset can clear it wholesale.
	RecentEvents []Event `json:"recent_events"`

	LastActor     string `json:"last_actor"`
	LastMagnitude int64  `json:"last_magnitude"`

	// LastAttackAt anchors the global cooldown shared by all actors.
	LastAttackAt *time.Time `json:"last_attack_at"`

	// FullArtShown records that the one-time full-detail rendering
	// has been consumed. Only the whale variant reads it.
	FullArtShown bool `json:"full_art_shown"`
}

// PlayerRecord holds per-player totals for one boss variant.
type PlayerRecord struct {
	// Damage is the sum of all positive magnitudes ever attributed
	// to this player. It never decreases and is never reset.
	Damage int64 `json:"damage"`

	// LastAttackAt anchors the per-actor cooldown consulted by the
	// status-check command.
	LastAttackAt *time.Time `json:"last_attack_at"`
}

// Event is one entry in a variant's recent history. An empty Actor
// denotes a healing event; a zero Magnitude denotes a miss.
type Event struct {
	Magnitude int64  `json:"magnitude"`
	Actor     string `json:"actor"`
}

// IsHeal reports whether the event recorded the boss regaining HP.
func (e Event) IsHeal() bool {
	return e.Actor == "" && e.Magnitude > 0
}

// IsMiss reports whether the event recorded an attack with no effect.
func (e Event) IsMiss() bool {
	return e.Magnitude == 0
}

// NewGameState returns a fully-defaulted document.
func NewGameState() *GameState {
	return &GameState{
		Boss:  newBossState(),
		Whale: newBossState(),
	}
}

func newBossState() BossState {
	return BossState{
		Players:      make(map[string]*PlayerRecord),
		RecentEvents: []Event{},
	}
}

// applyDefaults backfills fields absent from older documents so that
// schema evolution never fails a load.
func (s *GameState) applyDefaults() {
	s.Boss.applyDefaults()
	s.Whale.applyDefaults()
}

func (b *BossState) applyDefaults() {
	if b.Players == nil {
		b.Players = make(map[string]*PlayerRecord)
	}
	if b.RecentEvents == nil {
		b.RecentEvents = []Event{}
	}
}

// Player returns the record for identity, creating a zero record on
// first interaction.
func (b *BossState) Player(identity string) *PlayerRecord {
	if p, ok := b.Players[identity]; ok {
		return p
	}
	p := &PlayerRecord{}
	b.Players[identity] = p
	return p
}
