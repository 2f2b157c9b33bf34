package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/pkg/location"
	"github.com/matzehuels/pinmap/pkg/pipeline"
	"github.com/matzehuels/pinmap/pkg/style"
)

// layoutFlags are the flags shared by every command that composes a plan.
type layoutFlags struct {
	region     string
	projection string
	aspect     string
	noInsets   bool
	stylePaths []string
	noCache    bool
	refresh    bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.region, "region", "r", "us", "map region: us, north_america, south_america, brazil, europe, uk, china, asia, world")
	cmd.Flags().StringVarP(&f.projection, "projection", "p", "web_mercator", "projection name or SRID: web_mercator, robinson, equal_earth")
	cmd.Flags().StringVarP(&f.aspect, "aspect", "a", "widescreen", "slide format: widescreen (16:9), standard (4:3)")
	cmd.Flags().BoolVar(&f.noInsets, "no-insets", false, "never draw Alaska/Hawaii insets")
	cmd.Flags().StringArrayVarP(&f.stylePaths, "style", "s", nil, "TOML style preset applied under each set's own style (repeatable, later presets win)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
}

// options builds pipeline options for the given sets.
func (f *layoutFlags) options(sets []location.Set) (pipeline.Options, error) {
	opts := pipeline.Options{
		Region:     f.region,
		Projection: f.projection,
		Aspect:     f.aspect,
		NoInsets:   f.noInsets,
		Sets:       sets,
		Refresh:    f.refresh,
	}
	for _, path := range f.stylePaths {
		preset, err := style.LoadPreset(path)
		if err != nil {
			return opts, fmt.Errorf("load style %s: %w", path, err)
		}
		opts.Style = opts.Style.Merge(preset)
	}
	return opts, nil
}
