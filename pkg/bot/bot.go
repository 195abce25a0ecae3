// Package bot exposes the chat command surface: a registry of named
// handlers the transport dispatches into, plus the handlers themselves
// bridging commands to the game engine and the burn aggregator.
package bot

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/geneotech/GainsMUD/pkg/common"
)

// Command is one inbound chat command.
type Command struct {
	// Caller is the display identity of whoever issued the command.
	Caller string
	// Args is the raw argument text after the command name.
	Args string
	// Timestamp is when the message was originally sent, used for the
	// staleness guard.
	Timestamp time.Time
}

// Reply is the text payload sent back to the chat.
type Reply struct {
	Text string
	// Preformatted replies must be wrapped in a code block by the
	// transport so fixed-width panels keep their alignment.
	Preformatted bool
}

// Handler processes one command. A nil reply with a nil error means
// the command produces no response.
type Handler func(scope *common.Scope, cmd Command) (*Reply, error)

// Registry manages the available commands.
// It provides thread-safe registration and dispatch.
type Registry struct {
	handlers map[string]Handler
	start    time.Time
	mu       sync.RWMutex
}

// NewRegistry creates a new empty command registry. Commands older
// than start are silently dropped on dispatch, so a restart does not
// replay the backlog of messages sent while the process was down.
func NewRegistry(start time.Time) *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		start:    start,
	}
}

// Register adds a command to the registry.
// Returns an error if the command name is already taken.
func (r *Registry) Register(name string, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}

	r.handlers[name] = handler
	return nil
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch routes one command to its handler inside a fresh tracing
// scope. Stale commands are dropped without a reply.
func (r *Registry) Dispatch(ctx context.Context, name string, cmd Command) (*Reply, error) {
	r.mu.RLock()
	handler, ok := r.handlers[name]
	start := r.start
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown command %q", name)
	}

	if cmd.Timestamp.Before(start) {
		staleCommandsTotal.Inc()
		return nil, nil
	}

	scope := common.NewScope(ctx, "command."+name)
	defer scope.Finish()
	scope.AddBaggage("command", name)
	scope.AddBaggage("caller", cmd.Caller)

	reply, err := handler(scope, cmd)
	if err != nil {
		scope.TraceError(err)
		commandsTotal.WithLabelValues(name, "error").Inc()
		scope.Log.Errorf("command %s failed: %v", name, err)
		return &Reply{Text: "❌ Something went wrong. Try again later."}, nil
	}

	commandsTotal.WithLabelValues(name, "ok").Inc()
	return reply, nil
}
