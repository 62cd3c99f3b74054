// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/optable/datasize/cli"
	"github.com/optable/datasize/unit"
)

const autoUnit = "auto"

// parseUnitFlag returns nil for "auto".
func parseUnitFlag(s string) (*unit.Unit, error) {
	if strings.EqualFold(s, autoUnit) {
		return nil, nil
	}

	u, err := unit.ParseUnit(s)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// PresetFlags override the selected preset.
type PresetFlags struct {
	Unit        string `short:"u" placeholder:"UNIT" help:"Unit to render in (B, KB, MB, GB, TB or auto)."`
	Decimals    *int   `short:"d" help:"Decimal places, capped to 2."`
	DecimalBase bool   `help:"Render with 1000^n scaling, e.g. 1 MB = 1000000 B."`
	Preset      string `short:"p" placeholder:"NAME" help:"Preset to start from instead of the current one."`
}

// resolve picks the named preset, else the current one, else the default,
// then applies the flags on top.
func (f *PresetFlags) resolve(rt *runtime) (cli.Preset, error) {
	logger := zerolog.Ctx(rt.ctx)

	preset, err := f.base(rt)
	if err != nil {
		return cli.Preset{}, err
	}

	if f.Unit != "" {
		if preset.Unit, err = parseUnitFlag(f.Unit); err != nil {
			return cli.Preset{}, err
		}
	}
	if f.Decimals != nil {
		preset.Decimals = *f.Decimals
	}
	if f.DecimalBase {
		preset.DecimalBase = true
	}

	logger.Debug().Interface("preset", preset).Msg("Resolved preset")
	return preset, preset.Validate()
}

func (f *PresetFlags) base(rt *runtime) (cli.Preset, error) {
	logger := zerolog.Ctx(rt.ctx)

	dir, err := rt.presets()
	if err != nil {
		if f.Preset != "" {
			return cli.Preset{}, err
		}
		logger.Warn().Err(err).Msg("Preset directory unavailable, using defaults")
		return cli.DefaultPreset, nil
	}

	if f.Preset != "" {
		return dir.Get(f.Preset)
	}

	name, preset, err := dir.Current()
	switch {
	case errors.Is(err, cli.NoCurrentErr):
		return cli.DefaultPreset, nil
	case err != nil:
		return cli.Preset{}, err
	}

	logger.Debug().Str("preset", name).Msg("Using current preset")
	return preset, nil
}

type PresetCmd struct {
	Set  PresetSetCmd  `cmd:"" help:"Create or replace a preset."`
	Use  PresetUseCmd  `cmd:"" help:"Make a preset the current one."`
	List PresetListCmd `cmd:"" help:"List presets, the current one is starred."`
	Show PresetShowCmd `cmd:"" help:"Print a preset, the current one by default."`
}

type PresetSetCmd struct {
	Name        string `arg:"" help:"Preset name."`
	Unit        string `short:"u" default:"auto" help:"Unit to render in (B, KB, MB, GB, TB or auto)."`
	Decimals    int    `short:"d" default:"2" help:"Decimal places, capped to 2 when rendering."`
	DecimalBase bool   `help:"Render with 1000^n scaling."`
}

func (c *PresetSetCmd) Run(rt *runtime) error {
	u, err := parseUnitFlag(c.Unit)
	if err != nil {
		return err
	}

	dir, err := rt.presets()
	if err != nil {
		return err
	}

	preset := cli.Preset{Unit: u, Decimals: c.Decimals, DecimalBase: c.DecimalBase}
	if err := dir.Set(c.Name, preset); err != nil {
		return err
	}

	zerolog.Ctx(rt.ctx).Info().Str("preset", c.Name).Str("dir", dir.Path()).Msg("Preset saved")
	return nil
}

type PresetUseCmd struct {
	Name string `arg:"" help:"Preset name."`
}

func (c *PresetUseCmd) Run(rt *runtime) error {
	dir, err := rt.presets()
	if err != nil {
		return err
	}
	return dir.Use(c.Name)
}

type PresetListCmd struct{}

func (c *PresetListCmd) Run(rt *runtime) error {
	dir, err := rt.presets()
	if err != nil {
		return err
	}

	names, err := dir.List()
	if err != nil {
		return err
	}

	current, _, err := dir.Current()
	if err != nil && !errors.Is(err, cli.NoCurrentErr) {
		zerolog.Ctx(rt.ctx).Warn().Err(err).Msg("Ignoring broken current preset")
	}

	for _, name := range names {
		marker := "  "
		if name == current {
			marker = "* "
		}
		if _, err := rt.out.Write([]byte(marker + name)); err != nil {
			return err
		}
	}
	return nil
}

type PresetShowCmd struct {
	Name string `arg:"" optional:"" help:"Preset name."`
}

type namedPreset struct {
	Name       string `yaml:"name"`
	cli.Preset `yaml:",inline"`
}

func (c *PresetShowCmd) Run(rt *runtime) error {
	dir, err := rt.presets()
	if err != nil {
		return err
	}

	shown := namedPreset{Name: c.Name}
	if c.Name == "" {
		shown.Name, shown.Preset, err = dir.Current()
	} else {
		shown.Preset, err = dir.Get(c.Name)
	}
	if err != nil {
		return err
	}

	encoded, err := yaml.Marshal(shown)
	if err != nil {
		return fmt.Errorf("failed encoding preset %s: %w", shown.Name, err)
	}
	_, err = rt.out.Write([]byte(strings.TrimSuffix(string(encoded), "\n")))
	return err
}
