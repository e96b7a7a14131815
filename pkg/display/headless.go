package display

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// RunHeadless runs the loop without a window, one frame per tick at cfg.TPS.
// Lines read from input are parsed with ParseCommand. It returns when the loop
// is done or ctx is cancelled.
func RunHeadless(ctx context.Context, cfg Config, loop *Loop, input io.Reader) error {
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	d := time.Second / time.Duration(cfg.TPS)
	if d <= 0 {
		return fmt.Errorf("invalid headless tps: %d", cfg.TPS)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	commands := make(chan Command, 16)
	g, ctx := errgroup.WithContext(ctx)
	lines := scanLines(ctx, input)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				if line.err != nil {
					return fmt.Errorf("failed to read commands: %w", line.err)
				}
				if cmd := ParseCommand(line.text); cmd != CommandNone {
					select {
					case commands <- cmd:
					case <-ctx.Done():
						return nil
					}
				}
			}
		}
	})

	g.Go(func() error {
		defer cancel()

		t := time.NewTicker(d)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				loop.Handle(CommandQuit)
				return nil
			case cmd := <-commands:
				loop.Handle(cmd)
			case <-t.C:
				loop.Step(time.Now())
			}
			if loop.Done() {
				return nil
			}
		}
	})

	return g.Wait()
}

type inputLine struct {
	text string
	err  error
}

// scanLines reads input on its own goroutine, which exits at EOF, on a read error
// or once ctx is done. A Read that never returns keeps it alive until the process exits.
func scanLines(ctx context.Context, input io.Reader) <-chan inputLine {
	lines := make(chan inputLine)
	if input == nil {
		close(lines)
		return lines
	}

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(input)
		send := func(line inputLine) bool {
			select {
			case lines <- line:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for scanner.Scan() {
			text := scanner.Text()
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				text = strings.ToLower(trimmed)
			}
			if !send(inputLine{text: text}) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			send(inputLine{err: err})
		}
	}()
	return lines
}
