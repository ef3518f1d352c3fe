// Command bubbleframes replays one drag of a bubble without opening a window
// and writes every frame as a PNG, rendered on the CPU.
//
//	bubbleframes -to 60,0 -out frames
//
// The element is a square of -size pixels centered in a -w×-h canvas. The
// drag starts on its center and moves by the -to offset over -frames frames,
// then the pointer is released and the spring-back or dismiss plays out.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phanxgames/dropbubble"
	"github.com/pkg/errors"
)

type opts struct {
	out     string
	config  string
	width   int
	height  int
	size    float64
	toX     float64
	toY     float64
	frames  int
	verbose bool
}

func parseOpts() opts {
	var o opts
	var to string
	flag.StringVar(&o.out, "out", "frames", "Directory for PNG frames")
	flag.StringVar(&o.config, "config", "", "TOML config file")
	flag.IntVar(&o.width, "w", 240, "Canvas width")
	flag.IntVar(&o.height, "h", 240, "Canvas height")
	flag.Float64Var(&o.size, "size", 48, "Element size")
	flag.StringVar(&to, "to", "30,0", "Drag offset from the element center, as x,y")
	flag.IntVar(&o.frames, "frames", 10, "Frames spent dragging")
	flag.BoolVar(&o.verbose, "v", false, "Log session events to stderr")
	flag.Parse()

	if _, err := fmt.Sscanf(to, "%g,%g", &o.toX, &o.toY); err != nil {
		fmt.Fprintf(os.Stderr, "Bad -to %q: %v\n", to, err)
		os.Exit(2)
	}
	return o
}

func main() {
	o := parseOpts()
	if o.verbose {
		dropbubble.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "bubbleframes: %v\n", err)
		os.Exit(1)
	}
}

func run(o opts) error {
	cfg := dropbubble.DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = dropbubble.LoadConfig(o.config); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(o.out, 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}

	el := dropbubble.NewWidget("element", dropbubble.Rect{
		X:      float64(o.width)/2 - o.size/2,
		Y:      float64(o.height)/2 - o.size/2,
		Width:  o.size,
		Height: o.size,
	})
	el.Color = dropbubble.Color{R: 0.2, G: 0.5, B: 0.9, A: 1}

	var overlay dropbubble.OverlayLayer
	var outcome string
	a := dropbubble.NewGestureAdapter(el, cfg, &overlay, dropbubble.ListenerFuncs{
		Dismiss:    func(dropbubble.Element) { outcome = "dismissed" },
		SpringBack: func(dropbubble.Element) { outcome = "sprang back" },
	}, dropbubble.WithSnapshot(dropbubble.WidgetSnapshot))
	e := a.Engine()

	const dt = float32(1.0 / 60)
	frame := 0
	write := func() error {
		path := filepath.Join(o.out, fmt.Sprintf("frame_%03d.png", frame))
		frame++
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "create %s", path)
		}
		if err := dropbubble.EncodeFramePNG(f, e, o.width, o.height); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	c := el.Bounds().Center()
	a.PointerDown(c.X, c.Y)
	for i := 1; i <= o.frames; i++ {
		t := float64(i) / float64(o.frames)
		a.PointerMove(c.X+o.toX*t, c.Y+o.toY*t)
		e.Update(dt)
		if err := write(); err != nil {
			return err
		}
	}
	a.PointerUp()

	// Play out the spring-back or dismiss; give up after ten seconds.
	for i := 0; e.State() != dropbubble.StateIdle && i < 600; i++ {
		e.Update(dt)
		if err := write(); err != nil {
			return err
		}
	}

	fmt.Printf("%d frames written to %s; element %s\n", frame, o.out, outcome)
	return nil
}
