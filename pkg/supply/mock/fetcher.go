// Package mock provides in-memory implementations of the supply
// fetcher interfaces for testing.
package mock

import (
	"context"

	"github.com/geneotech/GainsMUD/pkg/supply"
)

// Fetcher is a mock implementation of supply.Fetcher.
type Fetcher struct {
	// CurrentSupplyFunc is called when CurrentSupply is invoked. If
	// nil, Readings is consumed instead.
	CurrentSupplyFunc func(ctx context.Context) (int64, error)

	// Readings is returned in order; the last value repeats once the
	// list is exhausted.
	Readings []int64

	// Err is returned instead of a reading when set.
	Err error

	// Calls counts CurrentSupply invocations.
	Calls int
}

// CurrentSupply returns the next configured reading.
func (m *Fetcher) CurrentSupply(ctx context.Context) (int64, error) {
	m.Calls++
	if m.CurrentSupplyFunc != nil {
		return m.CurrentSupplyFunc(ctx)
	}
	if m.Err != nil {
		return 0, m.Err
	}
	if len(m.Readings) == 0 {
		return 0, supply.ErrNoData
	}
	idx := m.Calls - 1
	if idx >= len(m.Readings) {
		idx = len(m.Readings) - 1
	}
	return m.Readings[idx], nil
}

// HistoryFetcher is a mock implementation of supply.HistoryFetcher.
type HistoryFetcher struct {
	// HistoryFunc is called when History is invoked. If nil, Entries
	// and Err are used.
	HistoryFunc func(ctx context.Context) ([]supply.Entry, error)

	Entries []supply.Entry
	Err     error

	// Calls counts History invocations.
	Calls int
}

// History returns the configured entries.
func (m *HistoryFetcher) History(ctx context.Context) ([]supply.Entry, error) {
	m.Calls++
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Entries, nil
}
