package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/holdmap/internal/security"
)

var (
	renderHolds  []string
	renderOutDir string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write wall images with holds highlighted",
	Long: `Write one PNG per --hold into --out-dir, named after the hold. Without
--hold the bare wall is written as wall.png.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := newSession(fsys, cfg, nil)
		if err != nil {
			return err
		}
		if err := fsys.MkdirAll(renderOutDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", renderOutDir, err)
		}

		ids := renderHolds
		if len(ids) == 0 {
			ids = []string{""}
		}
		for _, id := range ids {
			name := id
			if name == "" {
				name = "wall"
			}
			path, err := security.OutputPath(renderOutDir, name, "png")
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if _, err := session.RenderPNG(&buf, id); err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			if err := fsys.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringArrayVar(&renderHolds, "hold", nil, "hold to highlight (repeatable)")
	renderCmd.Flags().StringVarP(&renderOutDir, "out-dir", "o", ".", "directory for the images")
}
