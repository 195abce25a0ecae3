package game

import (
	"fmt"
	"time"
)

// CooldownError reports that a command was gated by an active
// cooldown. Remaining is how long the caller has to wait.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("on cooldown for another %s", e.Remaining)
}

// FetchError reports that the upstream supply source was unavailable
// after retries. No state was mutated.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("supply fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
