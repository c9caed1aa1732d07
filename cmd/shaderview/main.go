// Command shaderview renders a built-in sample to the terminal or to an
// image file.
//
//	shaderview -list
//	shaderview -sample triangle -display term
//	shaderview -sample 1002 -size 640x480 -frames 30 -snapshot cube.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/size"

	"github.com/gogpu/shaderview"
	"github.com/gogpu/shaderview/display"
	"github.com/gogpu/shaderview/host"
	"github.com/gogpu/shaderview/native"
	"github.com/gogpu/shaderview/sample"
	"github.com/gogpu/shaderview/samples"
	"github.com/gogpu/shaderview/screen"
)

type config struct {
	selector string
	width    int32
	height   int32
	fixed    bool
	frames   int
	fps      int
	display  string
	snapshot string
	format   string
	caption  bool
}

func main() {
	var (
		list     = flag.Bool("list", false, "list samples and exit")
		selector = flag.String("sample", "Triangle", "sample id or title")
		sizeFlag = flag.String("size", "", "surface size WxH (default 320x240, or the terminal size)")
		frames   = flag.Int("frames", 60, "frames to render; 0 runs until q or Esc in the terminal")
		fps      = flag.Int("fps", 60, "frame rate")
		disp     = flag.String("display", "none", "display: none or term")
		snapshot = flag.String("snapshot", "", "write the last frame to this file")
		format   = flag.String("format", "", "snapshot format: png, bmp or tiff (default from extension)")
		caption  = flag.Bool("caption", false, "draw the sample title over the frame")
		prof     = flag.String("profile", "", "profile mode: cpu or mem")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		shaderview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *list {
		for _, s := range sample.Default().All() {
			fmt.Printf("%d\t%s\t%s\n", s.ID, s.Title, s.Body)
		}
		return
	}

	cfg := config{
		selector: *selector,
		width:    320,
		height:   240,
		frames:   *frames,
		fps:      *fps,
		display:  *disp,
		snapshot: *snapshot,
		format:   *format,
		caption:  *caption,
	}
	if *sizeFlag != "" {
		if _, err := fmt.Sscanf(*sizeFlag, "%dx%d", &cfg.width, &cfg.height); err != nil || cfg.width <= 0 || cfg.height <= 0 {
			log.Fatalf("invalid -size %q, want WxH", *sizeFlag)
		}
		cfg.fixed = true
	}
	if cfg.fps <= 0 {
		log.Fatalf("invalid -fps %d", cfg.fps)
	}

	var stop func()
	switch *prof {
	case "":
		stop = func() {}
	case "cpu":
		stop = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop
	case "mem":
		stop = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop
	default:
		log.Fatalf("invalid -profile %q, want cpu or mem", *prof)
	}

	err := run(cfg)
	stop()
	if err != nil {
		log.Fatalf("shaderview: %v", err)
	}
}

func run(cfg config) error {
	rt := native.NewRuntime()
	defer func() { _ = rt.Close() }()
	if err := samples.Install(rt); err != nil {
		return err
	}

	var selected sample.Sample
	list := screen.NewList(sample.Default(), func(s sample.Sample) { selected = s })
	if err := list.SelectTitle(cfg.selector); err != nil {
		return err
	}

	var presenters []host.Presenter

	var snap *display.Snapshot
	if cfg.snapshot != "" {
		f, ok := display.FormatFromPath(cfg.snapshot)
		if cfg.format != "" {
			var err error
			if f, err = display.ParseFormat(cfg.format); err != nil {
				return err
			}
		} else if !ok {
			f = display.FormatPNG
		}
		snap = display.NewSnapshot(f)
		presenters = append(presenters, snap)
	}

	var (
		scr  tcell.Screen
		term *display.Terminal
	)
	switch cfg.display {
	case "none":
	case "term":
		var err error
		if scr, err = tcell.NewScreen(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := scr.Init(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		defer scr.Fini()

		term = display.NewTerminal(scr)
		presenters = append(presenters, term)
		if !cfg.fixed {
			w, h := term.PixelSize()
			cfg.width, cfg.height = int32(w), int32(h)
		}
	default:
		return fmt.Errorf("invalid -display %q, want none or term", cfg.display)
	}

	var p host.Presenter
	if len(presenters) > 0 {
		p = display.Tee(presenters...)
		if cfg.caption {
			p = display.NewCaption(p, selected.Title)
		}
	}

	opts := []host.Option{host.WithFrameInterval(time.Second / time.Duration(cfg.fps))}
	if p != nil {
		opts = append(opts, host.WithPresenter(p))
	}
	if term == nil {
		opts = append(opts, host.WithRenderMode(host.RenderWhenDirty))
	}
	h, err := host.New(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()

	done := make(chan struct{})
	d, err := screen.NewDetail(selected, rt, h, func() { close(done) })
	if err != nil {
		return err
	}

	if err := d.HandleEvent(lifecycle.Event{From: lifecycle.StageDead, To: lifecycle.StageFocused}); err != nil {
		return err
	}
	if err := d.HandleEvent(size.Event{WidthPx: int(cfg.width), HeightPx: int(cfg.height)}); err != nil {
		return err
	}

	if term != nil {
		runTerminal(cfg, scr, term, h, d, done)
	} else {
		runOffscreen(cfg, h)
	}

	if err := d.HandleEvent(lifecycle.Event{From: lifecycle.StageFocused, To: lifecycle.StageDead}); err != nil {
		return err
	}
	stats := h.Stats()
	if err := h.Close(); err != nil {
		return err
	}

	if snap != nil {
		if err := snap.WriteFile(cfg.snapshot); err != nil {
			return err
		}
		log.Printf("snapshot saved to %s (%dx%d)", cfg.snapshot, cfg.width, cfg.height)
	}
	if term == nil {
		log.Printf("%s: %d frames, avg %v, max %v, %d errors",
			selected.Title, stats.Frames, stats.AverageDuration, stats.MaxDuration, stats.Errors)
	}
	return h.Err()
}

// runOffscreen draws cfg.frames frames back to back.
func runOffscreen(cfg config, h *host.Host) {
	frames := max(cfg.frames, 1)
	for range frames {
		h.RequestRender()
		if err := h.Invoke(func() {}); err != nil {
			return
		}
	}
}

// runTerminal renders continuously until the frame count is reached or the
// user leaves with q, Esc or Ctrl-C.
func runTerminal(cfg config, scr tcell.Screen, term *display.Terminal, h *host.Host, d *screen.Detail, done <-chan struct{}) {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := scr.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	tick := time.NewTicker(time.Second / time.Duration(cfg.fps))
	defer tick.Stop()

	for {
		select {
		case <-done:
			return
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					if err := d.HandleEvent(screen.BackEvent{}); err != nil {
						shaderview.Logger().Warn("back failed", slog.Any("err", err))
					}
				}
			case *tcell.EventResize:
				scr.Sync()
				if !cfg.fixed {
					w, ht := term.PixelSize()
					if err := d.HandleEvent(size.Event{WidthPx: w, HeightPx: ht}); err != nil && !errors.Is(err, host.ErrClosed) {
						shaderview.Logger().Warn("resize failed", slog.Any("err", err))
					}
				}
			}
		case <-tick.C:
			if cfg.frames > 0 && h.Stats().Frames >= uint64(cfg.frames) {
				return
			}
		}
	}
}
