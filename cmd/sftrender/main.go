// sftrender - software triangle renderer and model viewer
// Draws OBJ, glTF/GLB and binary .sft3d meshes with a CPU rasterizer, in
// the terminal (half-block cells), in a desktop window, or to a PNG.
//
// Controls:
//
//	Mouse drag  - Spin the model
//	Scroll, +/- - Zoom in/out
//	W/S, A/D    - Pitch and yaw impulses
//	Space       - Random spin
//	R           - Reset spin and zoom
//	T           - Toggle texture
//	M           - Cycle render mode (textured, flat, wire)
//	O           - Toggle outline
//	P           - Pause/resume the idle animation
//	?           - Toggle HUD (terminal only)
//	Q, Esc      - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taigrr/sftrender/pkg/models"
	"github.com/taigrr/sftrender/pkg/render"
)

var (
	texturePath  = flag.String("texture", "", "Path to texture image (PNG/JPG/BMP/WebP or .sft2d)")
	targetFPS    = flag.Int("fps", 60, "Target FPS")
	bgColor      = flag.String("bg", "30,30,40", "Background color (R,G,B or none)")
	modeName     = flag.String("mode", "textured", "Render mode: textured, flat or wire")
	windowMode   = flag.Bool("window", false, "Open a desktop window instead of using the terminal")
	snapshotPath = flag.String("snapshot", "", "Render one frame to this PNG file and exit")
	ticks        = flag.Uint("ticks", 0, "Animation tick to render in snapshot mode (100 per second)")
	scale        = flag.Int("scale", 4, "Pixel upscale factor for the window and snapshots")
	size         = flag.String("size", "160x100", "Framebuffer size (WxH) for the window and snapshots")
	outline      = flag.Bool("outline", false, "Outline drawn pixels")
	overlayPath  = flag.String("overlay", "", "Image composited over every frame, anchored top-left")
	fit          = flag.Bool("fit", true, "Center the model and scale it to a unit view")
	spin         = flag.Bool("spin", true, "Run the idle spin animation")
	logPath      = flag.String("log", "", "Write debug logs to this file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "sftrender - Software triangle renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: sftrender [options] <model.obj|model.glb|model.sft3d>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Spin the model\n")
		fmt.Fprintf(os.Stderr, "  Scroll, +/- - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  T           - Toggle texture\n")
		fmt.Fprintf(os.Stderr, "  M           - Cycle render mode\n")
		fmt.Fprintf(os.Stderr, "  O           - Toggle outline\n")
		fmt.Fprintf(os.Stderr, "  P           - Pause idle animation\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD\n")
		fmt.Fprintf(os.Stderr, "  Q, Esc      - Quit\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(modelPath string) error {
	closeLog, err := setupLogging(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	opts, err := buildOptions()
	if err != nil {
		return err
	}
	if *targetFPS < 1 {
		return fmt.Errorf("invalid fps %d", *targetFPS)
	}

	mesh, texture, err := loadAssets(modelPath, *texturePath)
	if err != nil {
		return err
	}
	load := func(w, h int) (*viewer, error) {
		return newViewer(modelPath, mesh, texture, opts, w, h), nil
	}

	if *snapshotPath != "" || *windowMode {
		w, h, err := parseSize(*size)
		if err != nil {
			return err
		}
		v, _ := load(w, h)
		if *snapshotPath != "" {
			return runSnapshot(v, uint32(*ticks), *snapshotPath, *scale)
		}
		return runWindow(v, *scale, *targetFPS)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runTerminal(ctx, load, *targetFPS)
}

func buildOptions() (viewerOptions, error) {
	mode, err := render.ParseRenderMode(*modeName)
	if err != nil {
		return viewerOptions{}, err
	}
	bg, err := parseColor(*bgColor)
	if err != nil {
		return viewerOptions{}, fmt.Errorf("invalid -bg: %w", err)
	}
	if *scale < 1 {
		return viewerOptions{}, fmt.Errorf("invalid scale %d", *scale)
	}

	opts := viewerOptions{
		Mode:     mode,
		Bg:       bg,
		Outline:  *outline,
		Fit:      *fit,
		AutoSpin: *spin,
	}
	if *overlayPath != "" {
		opts.Overlay, err = render.LoadTexture(*overlayPath)
		if err != nil {
			return viewerOptions{}, fmt.Errorf("load overlay: %w", err)
		}
	}
	return opts, nil
}

// loadAssets loads the mesh and picks its texture: an explicit -texture
// wins over one embedded in a glTF file, and a checkerboard stands in when
// there is neither.
func loadAssets(modelPath, texPath string) (*models.Mesh, *render.Texture, error) {
	mesh, embedded, err := models.Load(modelPath)
	if err != nil {
		return nil, nil, err
	}

	var texture *render.Texture
	switch {
	case texPath != "":
		texture, err = render.LoadTexture(texPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load texture: %w", err)
		}
	case embedded != nil:
		texture = render.TextureFromImage(embedded)
		render.Logger().Info("using embedded texture", "width", texture.Width, "height", texture.Height)
	default:
		texture = render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
	}

	render.Logger().Info("model loaded", "path", modelPath, "triangles", mesh.TriangleCount())
	return mesh, texture, nil
}

// setupLogging routes render and models logs to a file. Stdout belongs to
// the terminal display, so nothing is logged unless a file is given.
func setupLogging(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	render.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() {
		render.SetLogger(nil)
		f.Close()
	}, nil
}
