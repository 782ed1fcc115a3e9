// sftasset - asset converter for sftrender
// Converts OBJ and glTF/GLB models to the binary .sft3d mesh format and
// images to the binary .sft2d texture format, and describes either.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/sftrender/pkg/render"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sftasset",
		Short: "Convert models and textures to the sftrender binary formats",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				render.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log loader details to stderr")

	root.AddCommand(newMeshCmd(), newTextureCmd(), newInfoCmd())
	return root
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}
