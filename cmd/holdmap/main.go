// Command holdmap finds climbing holds on a photo of the wall.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/banshee-data/holdmap/internal/config"
	"github.com/banshee-data/holdmap/internal/fsutil"
	"github.com/banshee-data/holdmap/internal/monitoring"
)

var (
	cfgFile string
	verbose bool

	cfg  = config.Empty()
	fsys = fsutil.FileSystem(fsutil.OSFileSystem{})
)

var rootCmd = &cobra.Command{
	Use:   "holdmap",
	Short: "Locate climbing holds by number on the wall",
	Long: `holdmap answers "where is hold 1350?" for a two-grid training wall.

It reports the panel, grid, column and row of a hold and highlights it on
a photo of the wall, from the command line or through a small web page.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			loaded, err := config.Load(fsys, cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if _, err := monitoring.Init(cfg.GetLogLevel(), verbose); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		monitoring.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "settings file (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd, importCmd, lookupCmd, renderCmd, plotCmd, migrateCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
