package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/holdmap/internal/monitor"
)

var plotOut string

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot the column calibration curves of the layout",
	Long: `Draw every column's fitted vertical curve against its measured points.
The format follows the extension of --out (png, svg or pdf).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := loadLayout(fsys, cfg)
		if err != nil {
			return err
		}
		if err := monitor.SaveCalibration(plotOut, l); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), plotOut)
		return nil
	},
}

func init() {
	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "calibration.png", "output file")
}
