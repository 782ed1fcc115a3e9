package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taigrr/sftrender/pkg/models"
	"github.com/taigrr/sftrender/pkg/render"
	xdraw "golang.org/x/image/draw"
)

const textureExt = ".sft2d"

func newMeshCmd() *cobra.Command {
	var (
		fit         float64
		texturePath string
	)

	cmd := &cobra.Command{
		Use:   "mesh <model.obj|model.glb|model.gltf> <out.sft3d>",
		Short: "Convert a model to the binary mesh format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mesh, embedded, err := models.Load(args[0])
			if err != nil {
				return err
			}
			if fit > 0 {
				mesh.Fit(fit)
			}
			if err := models.SaveBinary(args[1], mesh); err != nil {
				return fmt.Errorf("write %s: %w", args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d triangles\n", args[1], mesh.TriangleCount())

			if texturePath == "" {
				return nil
			}
			if embedded == nil {
				return fmt.Errorf("%s has no embedded texture", args[0])
			}
			return writeTexture(cmd, render.TextureFromImage(embedded), texturePath, render.MaxTextureSize)
		},
	}
	cmd.Flags().Float64Var(&fit, "fit", 0, "center the mesh and scale its largest dimension to this size")
	cmd.Flags().StringVar(&texturePath, "texture", "", "also write the embedded glTF texture to this .sft2d file")
	return cmd
}

func newTextureCmd() *cobra.Command {
	var maxSize int

	cmd := &cobra.Command{
		Use:   "texture <image> <out.sft2d>",
		Short: "Convert an image to the binary texture format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tex, err := render.LoadTexture(args[0])
			if err != nil {
				return err
			}
			return writeTexture(cmd, tex, args[1], maxSize)
		},
	}
	cmd.Flags().IntVar(&maxSize, "max", render.MaxTextureSize, "downscale so neither side exceeds this many texels")
	return cmd
}

// writeTexture stores tex, shrunk to fit within maxSize on both sides.
func writeTexture(cmd *cobra.Command, tex *render.Texture, path string, maxSize int) error {
	if maxSize < 1 || maxSize > render.MaxTextureSize {
		return fmt.Errorf("max size must be within 1..%d", render.MaxTextureSize)
	}
	tex = shrinkTexture(tex, maxSize)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create texture: %w", err)
	}
	if err := render.EncodeTexture(f, tex); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d\n", path, tex.Width, tex.Height)
	return nil
}

// shrinkTexture scales tex down, keeping its aspect ratio, so that neither
// side exceeds maxSize. Smaller textures are returned unchanged.
func shrinkTexture(tex *render.Texture, maxSize int) *render.Texture {
	if tex.Width <= maxSize && tex.Height <= maxSize {
		return tex
	}
	w, h := tex.Width, tex.Height
	if w >= h {
		w, h = maxSize, max(1, h*maxSize/w)
	} else {
		w, h = max(1, w*maxSize/h), maxSize
	}

	src := tex.ToImage()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return render.TextureFromImage(dst)
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>...",
		Short: "Describe models and textures",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				line, err := describe(path)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

// describe summarises one asset: dimensions for textures, triangle count
// and bounds for meshes.
func describe(path string) (string, error) {
	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), textureExt) {
		tex, err := render.LoadTexture(path)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: texture %dx%d", name, tex.Width, tex.Height), nil
	}

	mesh, embedded, err := models.Load(path)
	if err != nil {
		return "", err
	}
	size := mesh.Size()
	line := fmt.Sprintf("%s: %d triangles, bounds %.3g x %.3g x %.3g",
		name, mesh.TriangleCount(), size.X, size.Y, size.Z)
	if embedded != nil {
		b := embedded.Bounds()
		line += fmt.Sprintf(", embedded texture %dx%d", b.Dx(), b.Dy())
	}
	return line, nil
}
