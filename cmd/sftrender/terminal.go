package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/sftrender/pkg/render"
)

const (
	keyTorque   = 0.02 // radians per tick added per key press
	dragTorque  = 0.004
	zoomStep    = 0.5
	randomSpinV = 0.15
)

// runTerminal shows the viewer in the terminal until Esc, Ctrl+C or ctx
// is cancelled.
func runTerminal(ctx context.Context, load func(w, h int) (*viewer, error), fps int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	termRenderer := render.NewTerminalRenderer(term, width, height)
	v, err := load(termRenderer.FramebufferSize())
	if err != nil {
		return err
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Any-event mouse tracking, SGR extended coordinates
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	resized := make(chan [2]int, 1)
	go handleTerminalEvents(term, v, resized, cancel)

	hud := NewHUD()
	frameDuration := time.Second / time.Duration(fps)

	for {
		select {
		case <-ctx.Done():
			return nil
		case size := <-resized:
			width, height = size[0], size[1]
			term.Erase()
			term.Resize(width, height)
			termRenderer = render.NewTerminalRenderer(term, width, height)
			v.resize(termRenderer.FramebufferSize())
		default:
		}

		start := time.Now()
		fb := v.frame(start)

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(os.Stdout, width, height, v.status())

		if elapsed := time.Since(start); elapsed < frameDuration {
			time.Sleep(frameDuration - elapsed)
		}
	}
}

// handleTerminalEvents turns terminal input into viewer commands. Size
// changes are forwarded to the render loop, which owns the terminal buffer.
func handleTerminalEvents(term *uv.Terminal, v *viewer, resized chan [2]int, quit func()) {
	var (
		mouseDown              bool
		lastMouseX, lastMouseY int
	)

	for ev := range term.Events() {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			select {
			case <-resized:
			default:
			}
			resized <- [2]int{ev.Width, ev.Height}

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("q", "escape", "ctrl+c"):
				quit()
				return
			case ev.MatchString("w", "up"):
				v.impulse(-keyTorque, 0)
			case ev.MatchString("s", "down"):
				v.impulse(keyTorque, 0)
			case ev.MatchString("a", "left"):
				v.impulse(0, -keyTorque)
			case ev.MatchString("d", "right"):
				v.impulse(0, keyTorque)
			case ev.MatchString("space"):
				v.impulse((rand.Float64()-0.5)*randomSpinV, (rand.Float64()-0.5)*randomSpinV)
			case ev.MatchString("+", "="):
				v.zoom(-zoomStep)
			case ev.MatchString("-", "_"):
				v.zoom(zoomStep)
			case ev.MatchString("r"):
				v.reset()
			case ev.MatchString("t"):
				v.toggleTexture()
			case ev.MatchString("m"):
				v.cycleMode()
			case ev.MatchString("o"):
				v.toggleOutline()
			case ev.MatchString("p"):
				v.toggleSpin()
			case ev.MatchString("?", "shift+/"):
				v.toggleHUD()
			}

		case uv.MouseClickEvent:
			mouseDown = true
			lastMouseX, lastMouseY = ev.X, ev.Y

		case uv.MouseReleaseEvent:
			mouseDown = false

		case uv.MouseMotionEvent:
			if mouseDown {
				dx := ev.X - lastMouseX
				dy := ev.Y - lastMouseY
				v.impulse(float64(dy)*dragTorque, float64(dx)*dragTorque)
				lastMouseX, lastMouseY = ev.X, ev.Y
			}

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				v.zoom(-zoomStep)
			case uv.MouseWheelDown:
				v.zoom(zoomStep)
			}
		}
	}
}
