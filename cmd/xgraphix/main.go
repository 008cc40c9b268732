// Package main is the interactive surface plotter.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/xgraphix/internal/config"
	"github.com/Faultbox/xgraphix/internal/console"
	"github.com/Faultbox/xgraphix/internal/engine/input"
	"github.com/Faultbox/xgraphix/internal/engine/renderer"
	"github.com/Faultbox/xgraphix/internal/engine/window"
	"github.com/Faultbox/xgraphix/internal/expression"
	"github.com/Faultbox/xgraphix/internal/library"
	"github.com/Faultbox/xgraphix/internal/logger"
	"github.com/Faultbox/xgraphix/internal/plotter"
	"github.com/Faultbox/xgraphix/internal/session"
	"github.com/Faultbox/xgraphix/internal/surface"
	"github.com/Faultbox/xgraphix/internal/view"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("xgraphix failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger.Info("=== xgraphix ===")

	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    4,
	})
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	dw, dh := win.DrawableSize()
	rcfg := renderer.DefaultConfig(dw, dh)
	if ww, _ := win.Size(); ww > 0 && dw > ww {
		rcfg.OverlayScale = dw / ww
	}
	rend, err := renderer.New(rcfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer rend.Close()

	plot, err := plotter.New(plotter.Options{
		Segments: cfg.Plot.Resolution,
		Visibility: view.Visibility{
			ShowGrid:    cfg.Plot.ShowGrid,
			ShowNumbers: cfg.Plot.ShowNumbers,
		},
	})
	if err != nil {
		return fmt.Errorf("create plotter: %w", err)
	}

	store, err := library.Open(cfg.Library.Path)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}

	dialect, err := expression.ParseDialect(cfg.Plot.Dialect)
	if err != nil {
		return fmt.Errorf("plot dialect: %w", err)
	}

	notify := &dialogNotifier{status: win, title: cfg.Window.Title, popups: true}
	sess := session.New(session.Config{
		Surface: plot,
		Library: store,
		Confirm: dialogConfirmer{popups: true},
		Notify:  notify,
		Dialect: dialect,
	})

	app := &App{
		plot:      plot,
		session:   sess,
		notify:    notify,
		out:       os.Stdout,
		log:       logger.Named("app"),
		exportDir: cfg.Export.Dir,
		wireframe: rcfg.Wireframe,
	}

	d := cfg.Plot.Domain
	if err := sess.Plot(cfg.Plot.Function, surface.Domain{XMin: d.XMin, XMax: d.XMax, YMin: d.YMin, YMax: d.YMax}); err != nil {
		logger.Warn("initial function rejected", zap.String("function", cfg.Plot.Function), zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	commands := make(chan console.Result, 8)
	go func() {
		if err := console.Read(ctx, os.Stdin, commands); err != nil && ctx.Err() == nil {
			logger.Warn("console closed", zap.Error(err))
		}
	}()
	fmt.Fprintln(os.Stdout, "type help for commands")

	in := input.New()
	var orbiting, panning bool
	var shownGeneration uint64
	app.statusDirty = true

	for !app.quit {
		if in.Update() {
			break
		}

		for _, ev := range in.Events() {
			switch ev.Type {
			case input.EventWindowResize:
				rend.Resize(win.DrawableSize())

			case input.EventMouseDown, input.EventMouseUp:
				down := ev.Type == input.EventMouseDown
				switch ev.Button {
				case sdl.BUTTON_LEFT:
					orbiting = down
				case sdl.BUTTON_RIGHT, sdl.BUTTON_MIDDLE:
					panning = down
				}

			case input.EventMouseMove:
				switch {
				case orbiting:
					plot.View().Drag(float64(ev.DX), float64(ev.DY))
				case panning:
					plot.View().Pan(float64(ev.DX), float64(ev.DY))
				default:
					ww, wh := win.Size()
					app.Hover(plot.Pick(float64(ev.MouseX), float64(ev.MouseY), float64(ww), float64(wh)))
				}

			case input.EventMouseWheel:
				plot.View().Zoom(float64(ev.DY))

			case input.EventKeyDown:
				if !ev.Repeat {
					app.HandleKey(ev)
				}
			}
		}

		// Console commands run between frames so updates never interleave
		// with drawing.
	drain:
		for {
			select {
			case r, ok := <-commands:
				if !ok {
					commands = nil
					break drain
				}
				if r.Err != nil {
					app.report(r)
					continue
				}
				app.Execute(r.Command)
			default:
				break drain
			}
		}

		frame := plot.Frame()
		if app.statusDirty || frame.Generation != shownGeneration {
			rend.SetOverlay(app.StatusLines())
			shownGeneration = frame.Generation
			app.statusDirty = false
		}
		rend.SetWireframe(app.wireframe)
		rend.RenderFrame(frame)

		if app.screenshotPending {
			app.screenshotPending = false
			if path, err := rend.Screenshot(frame, cfg.Export.Dir); err != nil {
				notify.Notify(session.Failure, "Screenshot failed: "+err.Error())
			} else {
				notify.Notify(session.Success, "Screenshot saved to "+path)
			}
		}

		win.SwapBuffers()
	}

	logger.Info("xgraphix closed normally")
	return nil
}

// HandleKey maps a key press to an action.
func (a *App) HandleKey(ev input.Event) {
	a.statusDirty = true
	switch ev.Sym {
	case sdl.K_ESCAPE:
		a.quit = true
	case sdl.K_g:
		a.plot.ToggleGrid()
	case sdl.K_n:
		if ev.Ctrl() {
			a.Execute(console.Command{Op: console.OpNew})
			return
		}
		a.plot.ToggleNumbers()
	case sdl.K_r:
		a.resetView()
	case sdl.K_w:
		a.toggleWireframe()
	case sdl.K_s:
		if ev.Ctrl() {
			a.SaveFromKey()
		}
	case sdl.K_e:
		a.Export()
	case sdl.K_F12:
		a.screenshotPending = true
	case sdl.K_1, sdl.K_2, sdl.K_3, sdl.K_4:
		a.LoadDefault(int(ev.Sym - sdl.K_1))
	case sdl.K_SLASH, sdl.K_QUESTION, sdl.K_h:
		if ev.Sym == sdl.K_SLASH && !ev.Shift() {
			return
		}
		fmt.Fprintln(a.out, keyHelp)
	}
}
