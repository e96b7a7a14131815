package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/df07/go-live-raytracer/internal/buildinfo"
	"github.com/df07/go-live-raytracer/pkg/core"
	"github.com/df07/go-live-raytracer/pkg/display"
	"github.com/df07/go-live-raytracer/pkg/dither"
	"github.com/df07/go-live-raytracer/pkg/renderer"
	"github.com/df07/go-live-raytracer/pkg/scene"
)

// options holds everything set from the command line
type options struct {
	sceneName string
	samples   int
	dither    string
	render    renderer.Config
	display   display.Config
	version   bool
	help      bool
}

func newOptions() *options {
	return &options{
		render:  renderer.DefaultConfig(),
		display: display.DefaultConfig(),
	}
}

// newFlagSet binds the command line flags to opts
func newFlagSet(opts *options, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.sceneName, "scene", "default", "Scene to render: "+strings.Join(scene.Names(), ", "))
	fs.IntVar(&opts.display.Width, "width", 0, "Frame width (0 = scene default)")
	fs.IntVar(&opts.display.Height, "height", 0, "Frame height (0 = scene default)")
	fs.IntVar(&opts.display.Scale, "scale", opts.display.Scale, "Window pixels per frame pixel")
	fs.IntVar(&opts.display.TPS, "tps", opts.display.TPS, "Frames per second to attempt")
	fs.IntVar(&opts.display.Frames, "frames", 0, "Stop after N frames (0 = run until quit)")
	fs.BoolVar(&opts.display.Headless, "headless", false, "Run without a window, reading p/q commands from stdin")
	fs.StringVar(&opts.display.SnapshotPath, "snapshot", "", "Write the last frame to this file on exit (.png, .bmp, .tif)")
	fs.IntVar(&opts.render.Bits, "bits", opts.render.Bits, "Bits per color channel (1-8)")
	fs.StringVar(&opts.dither, "dither", opts.render.Dither.String(), "Quantization: ordered, plain or none")
	fs.IntVar(&opts.render.Workers, "workers", opts.render.Workers, "Render goroutines (0 = one per CPU, 1 = sequential)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel with -jitter (0 = scene default)")
	fs.BoolVar(&opts.render.Jitter, "jitter", false, "Average jittered samples within each pixel")
	fs.Int64Var(&opts.render.Seed, "seed", 0, "Random seed for jitter (0 = time based)")
	fs.BoolVar(&opts.version, "version", false, "Print version information")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	return fs
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	opts := newOptions()
	fs := newFlagSet(opts, output)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	mode, err := dither.ParseMode(opts.dither)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", renderer.ErrInvalidConfig, err)
	}
	opts.render.Dither = mode

	if err := opts.render.Validate(); err != nil {
		return nil, err
	}
	if err := opts.display.Validate(); err != nil {
		return nil, err
	}
	if opts.samples < 0 {
		return nil, fmt.Errorf("%w: samples must not be negative, got %d", renderer.ErrInvalidConfig, opts.samples)
	}
	return opts, nil
}

// createScene builds the named scene at the requested size; zero values keep the scene's defaults
func createScene(name string, width, height, samples int) (*scene.Scene, error) {
	return scene.New(name, scene.SamplingConfig{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samples,
	})
}

func run(ctx context.Context, opts *options, input io.Reader, logger core.Logger) error {
	selectedScene, err := createScene(opts.sceneName, opts.display.Width, opts.display.Height, opts.samples)
	if err != nil {
		return err
	}

	camera := selectedScene.NewCamera()
	rt := renderer.NewRaytracer(camera, selectedScene.World, opts.render)
	rt.SetShader(selectedScene.Shader)
	fr := renderer.WithWorkers(rt)

	logger.Printf("Rendering scene %q at %dx%d, %d-bit %s (%s)\n",
		selectedScene.Name, camera.Width, camera.Height, opts.render.Bits, opts.render.Dither, buildinfo.Short())

	fb := display.NewFramebuffer(camera.Width, camera.Height)
	loop := display.NewLoop(fr, fb, logger, opts.display.Frames)
	defer loop.Close()

	if opts.display.Headless {
		err = display.RunHeadless(ctx, opts.display, loop, input)
	} else {
		err = display.RunWindow(ctx, opts.display, loop)
	}
	if err != nil {
		return err
	}

	if opts.display.SnapshotPath != "" {
		if err := display.SaveSnapshot(opts.display.SnapshotPath, fb); err != nil {
			return err
		}
		logger.Printf("Snapshot saved as %s\n", opts.display.SnapshotPath)
	}
	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Live Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	newFlagSet(newOptions(), w).PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(w, "  %-12s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Keys: Space pauses and resumes, Escape quits.")
	fmt.Fprintln(w, "Headless commands (stdin): p pauses and resumes, q quits.")
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if opts.help {
		printHelp(os.Stdout)
		return
	}
	if opts.version {
		fmt.Println(buildinfo.String())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdin, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
