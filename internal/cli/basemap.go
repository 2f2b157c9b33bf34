package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/pkg/basemap"
	"github.com/matzehuels/pinmap/pkg/projection"
	"github.com/matzehuels/pinmap/pkg/region"
)

// basemapCommand writes the base-map image of a region or named area.
func (c *CLI) basemapCommand() *cobra.Command {
	var (
		regionName string
		areaName   string
		projName   string
		width      int
		output     string
		noLabels   bool
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "basemap",
		Short: "Write the base-map PNG of a region",
		Long: `Write the base-map PNG of a region.

The image is the same picture the render command paints under the markers:
a projected graticule with the area's frame. Use --area for the named US
variants and inset boxes (us_full, alaska, hawaii, ...).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			area, err := resolveArea(regionName, areaName)
			if err != nil {
				return err
			}
			p, err := projection.Lookup(projName)
			if err != nil {
				if sp, srErr := projection.FromSRID(projName); srErr == nil {
					p, err = sp, nil
				}
			}
			if err != nil {
				printWarning("%v", err)
			}

			opts := []basemap.GraticuleOption{basemap.WithWidth(width)}
			if noLabels {
				opts = append(opts, basemap.WithoutLabels())
			}
			ch, err := newCache(noCache)
			if err != nil {
				return err
			}
			defer ch.Close()
			gen := basemap.NewCached(basemap.NewGraticule(opts...), ch, nil).WithLogger(c.Logger)
			if refresh {
				gen = gen.Refreshed()
			}

			img, cached, err := gen.GenerateWithCacheInfo(cmd.Context(), area, p)
			if err != nil {
				return fmt.Errorf("generate base map: %w", err)
			}

			path := output
			if path == "" {
				path = fmt.Sprintf("%s_%s.png", area.Name, p)
			}
			if err := writeFile(path, img.PNG); err != nil {
				return err
			}
			printSuccess("Base map written")
			printFile(path)
			printStats([]string{fmt.Sprintf("%d × %d px", img.Width, img.Height)}, cached)
			return nil
		},
	}

	cmd.Flags().StringVarP(&regionName, "region", "r", string(region.Default), "map region")
	cmd.Flags().StringVar(&areaName, "area", "", "named area (overrides --region)")
	cmd.Flags().StringVarP(&projName, "projection", "p", string(projection.Default), "projection name or SRID")
	cmd.Flags().IntVarP(&width, "width", "w", basemap.DefaultWidth, "image width in pixels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <area>_<projection>.png)")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "omit graticule labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "regenerate even if cached")

	return cmd
}

// resolveArea picks a named area, else the fixed area of the region.
func resolveArea(regionName, areaName string) (region.Area, error) {
	if areaName != "" {
		a, ok := region.AreaByName(areaName)
		if !ok {
			return region.Area{}, fmt.Errorf("unknown area %q", areaName)
		}
		return a, nil
	}
	code, err := region.ParseCode(regionName)
	if err != nil {
		printWarning("%v", err)
	}
	return code.FixedArea(), nil
}
