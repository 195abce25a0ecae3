// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/geneotech/GainsMUD/pkg/bot"
	"github.com/geneotech/GainsMUD/pkg/common"
)

func testRegistry(t *testing.T) *bot.Registry {
	t.Helper()
	registry := bot.NewRegistry(time.Now().Add(-time.Minute))
	err := registry.Register("ping", func(scope *common.Scope, cmd bot.Command) (*bot.Reply, error) {
		return &bot.Reply{Text: "pong " + cmd.Args}, nil
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return registry
}

func TestConsoleDispatchesCommands(t *testing.T) {
	var out bytes.Buffer
	c := NewWithIO(testRegistry(t), "dev", strings.NewReader("/ping hello\n"), &out)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "pong hello") {
		t.Errorf("output = %q, expected reply", out.String())
	}
}

func TestConsoleWrapsPreformattedReplies(t *testing.T) {
	registry := bot.NewRegistry(time.Now().Add(-time.Minute))
	err := registry.Register("panel", func(scope *common.Scope, cmd bot.Command) (*bot.Reply, error) {
		return &bot.Reply{Text: "art", Preformatted: true}, nil
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	var out bytes.Buffer
	c := NewWithIO(registry, "dev", strings.NewReader("/panel\n"), &out)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "```\nart\n```") {
		t.Errorf("output = %q, expected code block", out.String())
	}
}

func TestConsoleRejectsNonCommands(t *testing.T) {
	var out bytes.Buffer
	c := NewWithIO(testRegistry(t), "dev", strings.NewReader("hello\n"), &out)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "commands start with a slash") {
		t.Errorf("output = %q, expected usage hint", out.String())
	}
}

func TestConsoleUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	c := NewWithIO(testRegistry(t), "dev", strings.NewReader("/nope\n"), &out)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("output = %q, expected unknown-command notice", out.String())
	}
}

func TestConsoleStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	c := NewWithIO(testRegistry(t), "dev", blockingReader{}, &out)
	if err := c.Run(ctx); err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

// blockingReader never returns, like an idle stdin.
type blockingReader struct{}

func (blockingReader) Read(p []byte) (int, error) {
	select {}
}
