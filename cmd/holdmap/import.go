package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/holdmap/internal/config"
	"github.com/banshee-data/holdmap/internal/db"
)

var importMain, importAux string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the hold store with the MAIN and AUX grid tables",
	Long: `Parse the MAIN and AUX grid CSV exports and replace every hold in the
store with them. Without --main/--aux the tables named in the settings file
are used, and failing that the bundled sample.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *cfg
		if importMain != "" || importAux != "" {
			if importMain == "" || importAux == "" {
				return fmt.Errorf("--main and --aux must be given together")
			}
			c.MainGridCSV, c.AuxGridCSV = &importMain, &importAux
		}
		n, err := runImport(&c)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d holds into %s\n", n, c.GetDBPath())
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importMain, "main", "", "MAIN grid CSV")
	importCmd.Flags().StringVar(&importAux, "aux", "", "AUX grid CSV")
}

func runImport(c *config.Config) (int, error) {
	l, err := loadLayout(fsys, c)
	if err != nil {
		return 0, err
	}
	d, source, err := loadCSVDataset(fsys, c, l)
	if err != nil {
		return 0, err
	}

	database, err := db.NewDB(c.GetDBPath())
	if err != nil {
		return 0, err
	}
	defer database.Close()

	if err := database.ReplaceHolds(d.Records(), source); err != nil {
		return 0, err
	}
	return d.Len(), nil
}
