package main

import (
	"fmt"
	"log/slog"

	"github.com/taigrr/sftrender/pkg/render"
)

// runSnapshot renders the frame at the given tick without a display and
// writes it to path as a PNG, upscaled by scale.
func runSnapshot(v *viewer, ticks uint32, path string, scale int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Spin impulses decay per tick, so the rotation state is stepped the
	// same way the live clock would.
	v.step(int(ticks))
	v.clock.Tick = ticks
	fb := v.draw()

	if err := fb.SaveScaledPNG(path, scale); err != nil {
		return err
	}
	render.Logger().Info("snapshot written", "path", path, "tick", ticks, "scale", scale, slog.Any("stats", v.stats))
	fmt.Printf("%s: %dx%d, %d triangles drawn, %d pixels\n",
		path, fb.Width*scale, fb.Height*scale, v.stats.Rasterized, v.stats.Pixels)
	return nil
}
