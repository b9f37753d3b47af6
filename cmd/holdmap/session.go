package main

import (
	"fmt"
	"image"

	"github.com/banshee-data/holdmap/internal/config"
	"github.com/banshee-data/holdmap/internal/db"
	"github.com/banshee-data/holdmap/internal/fsutil"
	"github.com/banshee-data/holdmap/internal/highlight"
	"github.com/banshee-data/holdmap/internal/holds"
	"github.com/banshee-data/holdmap/internal/layout"
	"github.com/banshee-data/holdmap/internal/monitoring"
	"github.com/banshee-data/holdmap/internal/wall"
)

// loadLayout returns the configured layout file, or the built-in one.
func loadLayout(fsys fsutil.FileSystem, cfg *config.Config) (*layout.Layout, error) {
	if p := cfg.GetLayoutPath(); p != "" {
		return layout.Load(fsys, p)
	}
	return layout.Default(), nil
}

// loadCSVDataset reads the configured grid tables, or the bundled sample
// when none are configured. The second result names the source.
func loadCSVDataset(fsys fsutil.FileSystem, cfg *config.Config, l *layout.Layout) (*holds.Dataset, string, error) {
	mainPath, auxPath := cfg.GetGridCSVs()
	if mainPath == "" {
		d, err := holds.Sample(l)
		return d, "sample", err
	}
	d, err := holds.LoadCSVFiles(fsys, mainPath, auxPath, l)
	return d, mainPath + "," + auxPath, err
}

// loadStoredDataset reads the hold store, seeding it from the CSV tables
// when it is empty.
func loadStoredDataset(fsys fsutil.FileSystem, cfg *config.Config, l *layout.Layout, database *db.DB) (*holds.Dataset, error) {
	n, err := database.CountHolds()
	if err != nil {
		return nil, fmt.Errorf("failed to count holds: %w", err)
	}
	if n == 0 {
		d, source, err := loadCSVDataset(fsys, cfg, l)
		if err != nil {
			return nil, err
		}
		if err := database.ReplaceHolds(d.Records(), source); err != nil {
			return nil, fmt.Errorf("failed to seed hold store: %w", err)
		}
		monitoring.Logf("seeded hold store with %d holds from %s", d.Len(), source)
		return d, nil
	}
	return database.LoadDataset(l)
}

// newSession assembles a wall session from cfg. A nil database reads the CSV
// tables directly.
func newSession(fsys fsutil.FileSystem, cfg *config.Config, database *db.DB) (*wall.Session, error) {
	l, err := loadLayout(fsys, cfg)
	if err != nil {
		return nil, err
	}

	var d *holds.Dataset
	if database != nil {
		d, err = loadStoredDataset(fsys, cfg, l, database)
	} else {
		d, _, err = loadCSVDataset(fsys, cfg, l)
	}
	if err != nil {
		return nil, err
	}

	var bg image.Image
	if p := cfg.GetImagePath(); p != "" {
		if bg, err = highlight.LoadBackground(fsys, p); err != nil {
			return nil, err
		}
	}

	return wall.NewSession(wall.Options{
		Layout:     l,
		Dataset:    d,
		Background: bg,
		Style:      highlight.DefaultStyle(cfg.GetPresentation()),
	})
}
