// Command oxyfx runs the capture-effects demo in a window, or renders it headless to a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-fx/demo"
	"github.com/Carmen-Shannon/oxy-fx/engine"
	"github.com/Carmen-Shannon/oxy-fx/engine/params"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fx/engine/window"
	"github.com/pkg/profile"
	xdraw "golang.org/x/image/draw"
)

func main() {
	if err := run(); err != nil {
		log.Printf("[Engine] %v", err)
		os.Exit(1)
	}
}

// run parses flags and drives the demo. Deferred cleanup, including a running profile,
// happens before main exits on error.
func run() error {
	var (
		width      = flag.Int("width", 1280, "framebuffer width")
		height     = flag.Int("height", 720, "framebuffer height")
		workers    = flag.Int("workers", 0, "rasterizer workers (0 = NumCPU-1)")
		paramsPath = flag.String("params", "", "TOML tunables file, hot reloaded while running")
		headless   = flag.Bool("headless", false, "render without a window and write a PNG")
		frames     = flag.Int("frames", 1, "frames to simulate before writing the PNG (headless)")
		output     = flag.String("out", "oxyfx.png", "PNG output path (headless)")
		scale      = flag.Float64("scale", 1, "PNG scale factor (headless)")
		vsync      = flag.Bool("vsync", true, "wait for vertical blank when presenting")
		stats      = flag.Bool("stats", false, "log frame rate and render stats every second")
		profMode   = flag.String("profile", "", "write a pprof profile: cpu, mem or trace")
	)
	flag.Parse()

	stop, err := startProfile(*profMode)
	if err != nil {
		return err
	}
	if stop != nil {
		defer stop()
	}

	store, err := params.NewStore(*paramsPath)
	if err != nil {
		return fmt.Errorf("failed to load params: %w", err)
	}
	defer store.Close()

	var rendererOptions []renderer.RendererBuilderOption
	if *workers > 0 {
		rendererOptions = append(rendererOptions, renderer.WithWorkers(*workers))
	}

	if *headless {
		r := renderer.NewRenderer(append(rendererOptions, renderer.WithSize(*width, *height))...)
		d := demo.New(r, store.Get(), demo.WithEngineOptions(engine.WithProfiling(*stats)))
		if err := renderHeadless(d, *frames, *output, *scale); err != nil {
			return fmt.Errorf("failed to render: %w", err)
		}
		log.Printf("[Engine] wrote %s", *output)
		return nil
	}

	if err := store.Watch(); err != nil {
		log.Printf("[Params] hot reload disabled: %v", err)
	}

	win := window.NewWindow(
		window.WithTitle("oxy-fx"),
		window.WithSize(*width, *height),
	)

	presenter, err := renderer.NewWGPUPresenter(win.SurfaceDescriptor(), false)
	if err != nil {
		win.Close()
		return fmt.Errorf("failed to create presenter: %w", err)
	}

	mode := renderer.PresentModeVSync
	if !*vsync {
		mode = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(append(rendererOptions,
		renderer.WithSize(win.Width(), win.Height()),
		renderer.WithPresenter(presenter),
		renderer.WithPresentMode(mode),
	)...)
	defer r.Release()

	d := demo.New(r, store.Get(), demo.WithEngineOptions(
		engine.WithWindow(win),
		engine.WithProfiling(*stats),
	))
	d.BindInput(win)
	d.Engine().SetTickCallback(func(float32) {
		d.Apply(store.Get())
	})

	fmt.Println("oxy-fx: drag=orbit  scroll=zoom  WASD=step  space=pause  1/2/3=contact/floor/mirror  esc=quit")
	d.Engine().Run()
	return nil
}

// renderHeadless simulates frames at 60Hz and writes the last one as a PNG.
func renderHeadless(d *demo.Demo, frames int, path string, scale float64) error {
	for i := 0; i < max(frames, 1); i++ {
		if err := d.Engine().Frame(1.0 / 60); err != nil {
			return err
		}
	}

	var img image.Image = d.Engine().Renderer().Framebuffer().Image()
	if scale > 0 && scale != 1 {
		b := img.Bounds()
		scaled := image.NewNRGBA(image.Rect(0, 0, max(int(float64(b.Dx())*scale), 1), max(int(float64(b.Dy())*scale), 1)))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, xdraw.Src, nil)
		img = scaled
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// startProfile starts a pprof profile in the working directory and returns its stop func.
func startProfile(mode string) (func(), error) {
	var m func(*profile.Profile)
	switch mode {
	case "":
		return nil, nil
	case "cpu":
		m = profile.CPUProfile
	case "mem":
		m = profile.MemProfile
	case "trace":
		m = profile.TraceProfile
	default:
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}
	return profile.Start(m, profile.ProfilePath("."), profile.NoShutdownHook).Stop, nil
}
