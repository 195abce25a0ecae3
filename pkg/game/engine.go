// Package game implements the supply-delta boss engine: each supply
// reading is compared to the previous one and the difference becomes
// damage dealt to (or healing of) a fictional boss.
package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/geneotech/GainsMUD/pkg/format"
	"github.com/geneotech/GainsMUD/pkg/gamecfg"
	"github.com/geneotech/GainsMUD/pkg/state"
	"github.com/geneotech/GainsMUD/pkg/supply"
)

// Engine runs the boss state machine for both variants. A single
// mutex covers every read-modify-write cycle over the shared
// document, including the fetch suspension point, so two concurrent
// attacks can never both pass the cooldown check.
type Engine struct {
	mu       sync.Mutex
	store    state.Store
	cfg      *gamecfg.Provider
	fetchers map[Variant]supply.Fetcher
}

// NewEngine creates an engine over the given store and fetchers.
func NewEngine(store state.Store, cfg *gamecfg.Provider, boss, whale supply.Fetcher) *Engine {
	return &Engine{
		store: store,
		cfg:   cfg,
		fetchers: map[Variant]supply.Fetcher{
			VariantBoss:  boss,
			VariantWhale: whale,
		},
	}
}

// ProcessAttack runs one attack command against a boss variant.
// It returns CooldownError while the variant's global cooldown is
// active and FetchError when the supply source is unavailable; in
// both cases no state is persisted.
func (e *Engine) ProcessAttack(ctx context.Context, variant Variant, actor string, now time.Time) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	vcfg, fetcher, err := e.variant(variant)
	if err != nil {
		return nil, err
	}

	st, err := e.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load game state: %w", err)
	}
	bs := bossStateOf(st, variant)

	// The global cooldown gates all actors collectively.
	if bs.LastAttackAt != nil {
		remaining := vcfg.GlobalCooldown.Std() - now.Sub(*bs.LastAttackAt)
		if remaining > 0 {
			return nil, &CooldownError{Remaining: remaining}
		}
	}

	player := bs.Player(actor)

	reading, err := fetcher.CurrentSupply(ctx)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	// First-ever observation: record the starting health, nothing
	// else runs.
	if bs.LastReading == nil {
		bs.LastReading = &reading
		if err := e.store.Save(st); err != nil {
			return nil, fmt.Errorf("failed to persist game state: %w", err)
		}
		logrus.Infof("%s battle initialized at reading %s", variant, format.GroupedNumber(reading))
		return &Result{
			Variant: variant,
			Mode:    ModeInitialized,
			Reading: reading,
			Players: snapshotPlayers(bs.Players),
		}, nil
	}

	delta := *bs.LastReading - reading

	if delta < 0 {
		return e.applyHeal(st, bs, variant, reading, -delta, now)
	}
	return e.applyAttack(st, bs, variant, vcfg, player, actor, reading, delta, now)
}

// applyHeal records the boss regaining HP. Healing still consumes the
// global cooldown so it cannot be chained to dodge gating, but it
// never touches per-actor cooldowns.
func (e *Engine) applyHeal(st *state.GameState, bs *state.BossState, variant Variant,
	reading, healed int64, now time.Time) (*Result, error) {

	bs.RecentEvents = append(bs.RecentEvents, state.Event{Magnitude: healed})
	bs.LastActor = ""
	bs.LastMagnitude = healed
	bs.LastAttackAt = &now
	bs.LastReading = &reading

	showFull := e.consumeFullArt(bs, variant)

	if err := e.store.Save(st); err != nil {
		return nil, fmt.Errorf("failed to persist game state: %w", err)
	}
	logrus.Infof("%s healed %s HP, reading now %s",
		variant, format.GroupedNumber(healed), format.GroupedNumber(reading))

	return &Result{
		Variant:       variant,
		Mode:          ModeHealed,
		Reading:       reading,
		ShowFull:      showFull,
		LastActor:     "",
		LastMagnitude: healed,
		RecentEvents:  bs.RecentEvents,
		Players:       snapshotPlayers(bs.Players),
	}, nil
}

func (e *Engine) applyAttack(st *state.GameState, bs *state.BossState, variant Variant,
	vcfg *gamecfg.VariantConfig, player *state.PlayerRecord, actor string,
	reading, delta int64, now time.Time) (*Result, error) {

	milestone := millionBucket(reading) < millionBucket(*bs.LastReading)

	bs.RecentEvents = append(bs.RecentEvents, state.Event{Magnitude: delta, Actor: actor})
	bs.LastActor = actor
	bs.LastMagnitude = delta
	bs.LastAttackAt = &now
	if vcfg.TracksActorCooldown {
		attackedAt := now
		player.LastAttackAt = &attackedAt
	}
	if delta > 0 {
		player.Damage += delta
	}
	bs.LastReading = &reading

	showFull := e.consumeFullArt(bs, variant)

	if err := e.store.Save(st); err != nil {
		return nil, fmt.Errorf("failed to persist game state: %w", err)
	}

	mode := ModeDamaged
	if delta == 0 {
		mode = ModeMissed
	}

	res := &Result{
		Variant:       variant,
		Mode:          mode,
		Reading:       reading,
		Milestone:     milestone,
		Defeated:      vcfg.DefeatAtZero && reading <= 0,
		ShowFull:      showFull,
		LastActor:     actor,
		LastMagnitude: delta,
		RecentEvents:  bs.RecentEvents,
		Players:       snapshotPlayers(bs.Players),
	}

	logrus.Infof("%s attacked by %s for %s (milestone=%v)",
		variant, actor, format.GroupedNumber(delta), milestone)

	// A milestone resets the event history, but the triggering
	// render still shows everything leading up to it: the result
	// keeps the old slice.
	if milestone {
		bs.RecentEvents = []state.Event{}
		if err := e.store.Save(st); err != nil {
			return nil, fmt.Errorf("failed to persist milestone reset: %w", err)
		}
	}

	return res, nil
}

// ProcessStatus runs the passive status check. It consults only the
// caller's per-actor cooldown, never the global one, and mutates
// nothing beyond that cooldown anchor (and first-observation
// initialization).
func (e *Engine) ProcessStatus(ctx context.Context, actor string, now time.Time) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	vcfg, fetcher, err := e.variant(VariantBoss)
	if err != nil {
		return nil, err
	}

	st, err := e.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load game state: %w", err)
	}
	bs := &st.Boss

	player := bs.Player(actor)
	if player.LastAttackAt != nil {
		remaining := vcfg.StatusCooldown.Std() - now.Sub(*player.LastAttackAt)
		if remaining > 0 {
			return nil, &CooldownError{Remaining: remaining}
		}
	}

	reading, err := fetcher.CurrentSupply(ctx)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	checkedAt := now
	player.LastAttackAt = &checkedAt

	if bs.LastReading == nil {
		bs.LastReading = &reading
		if err := e.store.Save(st); err != nil {
			return nil, fmt.Errorf("failed to persist game state: %w", err)
		}
		return &Result{
			Variant:    VariantBoss,
			Mode:       ModeInitialized,
			Reading:    reading,
			FromStatus: true,
			Players:    snapshotPlayers(bs.Players),
		}, nil
	}

	if err := e.store.Save(st); err != nil {
		return nil, fmt.Errorf("failed to persist game state: %w", err)
	}

	return &Result{
		Variant:       VariantBoss,
		Mode:          ModeStatus,
		Reading:       reading,
		FromStatus:    true,
		LastActor:     bs.LastActor,
		LastMagnitude: bs.LastMagnitude,
		RecentEvents:  bs.RecentEvents,
		Players:       snapshotPlayers(bs.Players),
	}, nil
}

// Leaderboard returns a snapshot of all player records for a variant.
func (e *Engine) Leaderboard(ctx context.Context, variant Variant) (map[string]state.PlayerRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := e.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load game state: %w", err)
	}
	return snapshotPlayers(bossStateOf(st, variant).Players), nil
}

func (e *Engine) variant(v Variant) (*gamecfg.VariantConfig, supply.Fetcher, error) {
	cfg := e.cfg.Snapshot()

	var vcfg *gamecfg.VariantConfig
	switch v {
	case VariantBoss:
		vcfg = &cfg.Boss
	case VariantWhale:
		vcfg = &cfg.Whale
	default:
		return nil, nil, fmt.Errorf("unknown boss variant %q", v)
	}

	fetcher := e.fetchers[v]
	if fetcher == nil {
		return nil, nil, fmt.Errorf("no supply fetcher configured for variant %q", v)
	}
	return vcfg, fetcher, nil
}

// consumeFullArt flips the whale's one-time full-detail rendering
// flag and reports whether this invocation gets it.
func (e *Engine) consumeFullArt(bs *state.BossState, variant Variant) bool {
	if variant != VariantWhale || bs.FullArtShown {
		return false
	}
	bs.FullArtShown = true
	return true
}

func bossStateOf(st *state.GameState, v Variant) *state.BossState {
	if v == VariantWhale {
		return &st.Whale
	}
	return &st.Boss
}

func millionBucket(reading int64) int64 {
	return reading / 1_000_000
}
