package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// runWindow shows the viewer in a desktop window. The framebuffer keeps
// its configured size and the window scales it up by scale. It blocks
// until the window closes.
func runWindow(v *viewer, scale, fps int) error {
	g := &windowGame{v: v}
	ebiten.SetWindowTitle("sftrender - " + v.name)
	ebiten.SetWindowSize(v.renderer.Width()*scale, v.renderer.Height()*scale)
	ebiten.SetTPS(fps)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

type windowGame struct {
	v     *viewer
	fbImg *ebiten.Image

	dragging     bool
	lastX, lastY int
}

func (g *windowGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	v := g.v
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyW), ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		v.impulse(-keyTorque/4, 0)
	case ebiten.IsKeyPressed(ebiten.KeyS), ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		v.impulse(keyTorque/4, 0)
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyA), ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		v.impulse(0, -keyTorque/4)
	case ebiten.IsKeyPressed(ebiten.KeyD), ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		v.impulse(0, keyTorque/4)
	}

	toggles := []struct {
		key ebiten.Key
		fn  func()
	}{
		{ebiten.KeyR, v.reset},
		{ebiten.KeyT, v.toggleTexture},
		{ebiten.KeyM, v.cycleMode},
		{ebiten.KeyO, v.toggleOutline},
		{ebiten.KeyP, v.toggleSpin},
	}
	for _, t := range toggles {
		if inpututil.IsKeyJustPressed(t.key) {
			t.fn()
		}
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragging {
			v.impulse(float64(y-g.lastY)*dragTorque/2, float64(x-g.lastX)*dragTorque/2)
		}
		g.dragging = true
		g.lastX, g.lastY = x, y
	} else {
		g.dragging = false
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		v.zoom(-dy * zoomStep)
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	fb := g.v.frame(time.Now())
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != fb.Width || g.fbImg.Bounds().Dy() != fb.Height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.Width, fb.Height)
	}

	g.fbImg.WritePixels(fb.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.v.renderer.Width(), g.v.renderer.Height()
}
