//go:build cgo

package display

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/df07/go-live-raytracer/internal/buildinfo"
)

// RunWindow opens a desktop window showing the loop's frames and blocks until
// the window closes, Escape is pressed, the frame limit is reached or ctx is done.
func RunWindow(ctx context.Context, cfg Config, loop *Loop) error {
	fb := loop.Framebuffer()
	g := &windowGame{
		ctx:    ctx,
		loop:   loop,
		fb:     fb,
		pixels: make([]byte, fb.Width()*fb.Height()*4),
	}

	ebiten.SetWindowTitle(fmt.Sprintf("%s (%s)", cfg.Title, buildinfo.Short()))
	ebiten.SetWindowSize(fb.Width()*cfg.Scale, fb.Height()*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)

	err := ebiten.RunGame(g)
	if g.img != nil {
		g.img.Deallocate()
	}
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("window failed: %w", err)
	}

	// Closing the window ends RunGame without a quit command
	loop.Handle(CommandQuit)
	return nil
}

type windowGame struct {
	ctx    context.Context
	loop   *Loop
	fb     *Framebuffer
	img    *ebiten.Image
	pixels []byte
	dirty  bool
}

func (g *windowGame) Update() error {
	loopStart := time.Now()

	// Keys are polled every tick, paused or not
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.loop.Handle(CommandQuit)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.loop.Handle(CommandTogglePause)
	}
	if g.loop.Done() {
		return ebiten.Termination
	}

	if _, rendered := g.loop.Step(loopStart); rendered {
		g.dirty = true
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(g.fb.Width(), g.fb.Height())
		g.dirty = true
	}
	if g.dirty {
		g.fb.SnapshotRGBA(g.pixels)
		g.img.WritePixels(g.pixels)
		g.dirty = false
	}
	screen.DrawImage(g.img, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width(), g.fb.Height()
}
