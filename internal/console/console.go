// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package console is the local transport: it reads slash commands from
// an input stream and prints the replies, standing in for a chat
// integration during development and in tests.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/geneotech/GainsMUD/pkg/bot"
	"github.com/geneotech/GainsMUD/pkg/format"
)

// Console dispatches slash commands from a reader into the command
// registry and writes replies to a writer.
type Console struct {
	registry *bot.Registry
	caller   string
	in       io.Reader
	out      io.Writer
}

// New creates a console bound to stdin and stdout.
func New(registry *bot.Registry, caller string) *Console {
	return &Console{
		registry: registry,
		caller:   caller,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// NewWithIO creates a console over explicit streams.
func NewWithIO(registry *bot.Registry, caller string, in io.Reader, out io.Writer) *Console {
	return &Console{registry: registry, caller: caller, in: in, out: out}
}

// Run reads commands until the input closes or the context is
// canceled. Lines must look like "/name args"; anything else prints a
// usage hint.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errs <- err
		}
	}()

	fmt.Fprintf(c.out, "commands: /%s\n", strings.Join(c.registry.Names(), " /"))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errs:
			return fmt.Errorf("console input failed: %w", err)
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			c.handleLine(ctx, line)
		}
	}
}

func (c *Console) handleLine(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if !strings.HasPrefix(line, "/") {
		fmt.Fprintln(c.out, "commands start with a slash, e.g. /sup")
		return
	}

	name, args, _ := strings.Cut(line[1:], " ")
	reply, err := c.registry.Dispatch(ctx, name, bot.Command{
		Caller:    c.caller,
		Args:      strings.TrimSpace(args),
		Timestamp: time.Now(),
	})
	if err != nil {
		fmt.Fprintf(c.out, "%v\n", err)
		return
	}
	if reply == nil {
		return
	}

	text := reply.Text
	if reply.Preformatted {
		// Render the payload the way the chat platform would receive it.
		text = format.CodeBlock(text)
	}
	if _, werr := fmt.Fprintln(c.out, text); werr != nil {
		logrus.Errorf("console write failed: %v", werr)
	}
}
