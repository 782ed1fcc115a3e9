package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
)

var (
	hudBase  = lipgloss.NewStyle().Background(lipgloss.Color("#000000")).Padding(0, 1)
	hudFPS   = hudBase.Foreground(lipgloss.Color("#5fff87"))
	hudTitle = hudBase.Foreground(lipgloss.Color("#ffffff")).Bold(true)
	hudCount = hudBase.Foreground(lipgloss.Color("#5fffff")).Bold(true)
	hudMode  = hudBase.Foreground(lipgloss.Color("#ffffff"))
	hudDim   = hudBase.Foreground(lipgloss.Color("#ffff5f")).Faint(true)
)

// HUD draws the info rows over the terminal view.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a HUD with a fresh FPS counter.
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Lines lays out the top and bottom rows for a terminal width cells wide.
func (h *HUD) Lines(width int, st status) (top, bottom string) {
	fps := hudFPS.Render(fmt.Sprintf("%.0f FPS", h.fps))
	title := hudTitle.Render(st.Name)
	count := hudCount.Render(fmt.Sprintf("%d tris", st.Triangles))
	top = spread(width, fps, title, count)

	check := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}
	mode := hudMode.Render(fmt.Sprintf("%s  %s texture  tick %d", st.Mode, check(st.Textured), st.Tick))
	frame := hudDim.Render(fmt.Sprintf("%d drawn  %d clipped away  %d px",
		st.Stats.Rasterized, st.Stats.NearDropped, st.Stats.Pixels))
	bottom = spread(width, mode, frame)
	return top, bottom
}

// spread places the first part at the left edge, the last at the right
// edge and a middle part (if any) centered, padding with spaces.
func spread(width int, parts ...string) string {
	var b strings.Builder
	used := 0
	for _, p := range parts {
		used += lipgloss.Width(p)
	}
	gaps := len(parts) - 1
	if gaps <= 0 || used >= width {
		return strings.Join(parts, "")
	}

	free := width - used
	for i, p := range parts {
		b.WriteString(p)
		if i < gaps {
			n := free / gaps
			if i < free%gaps {
				n++
			}
			b.WriteString(strings.Repeat(" ", n))
		}
	}
	return b.String()
}

// Render writes the HUD rows to w with cursor addressing. The rows are
// always cleared first so hiding the HUD takes effect.
func (h *HUD) Render(w io.Writer, width, height int, st status) {
	const clearLine = "\x1b[2K"
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	fmt.Fprint(w, moveTo(1, 1)+clearLine)
	fmt.Fprint(w, moveTo(height, 1)+clearLine)
	if !st.ShowHUD {
		return
	}

	top, bottom := h.Lines(width, st)
	fmt.Fprint(w, moveTo(1, 1)+top)
	fmt.Fprint(w, moveTo(height, 1)+bottom)
}
