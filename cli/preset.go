// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"

	"github.com/optable/datasize/datasize"
	"github.com/optable/datasize/datasize/experimental"
	"github.com/optable/datasize/unit"
)

var (
	InvalidPresetErr = errors.New("Invalid preset")
	NoCurrentErr     = errors.New("No current preset")
)

// Preset is a named set of formatting options.
type Preset struct {
	// Unit to render sizes in, nil selects the unit with datasize.UnitFrom.
	Unit *unit.Unit `json:"unit,omitempty" yaml:"unit,omitempty"`
	// Decimals is capped to datasize.MaxDecimals when rendering.
	Decimals int `json:"decimals" yaml:"decimals"`
	// DecimalBase renders with 1000^n scaling instead of 1024^n.
	DecimalBase bool `json:"decimal_base,omitempty" yaml:"decimal_base,omitempty"`
}

// DefaultPreset renders sizes the way DataSize.String does.
var DefaultPreset = Preset{Decimals: datasize.MaxDecimals}

func (p Preset) Validate() error {
	if p.Unit != nil && !p.Unit.Valid() {
		return fmt.Errorf("%w: %v", InvalidPresetErr, *p.Unit)
	}
	if p.Decimals < 0 {
		return fmt.Errorf("%w: negative decimals %d", InvalidPresetErr, p.Decimals)
	}
	return nil
}

// Format renders d with the preset options.
func (p Preset) Format(d datasize.DataSize) (string, error) {
	u := datasize.UnitFrom(d)
	if p.Unit != nil {
		u = *p.Unit
	}

	if p.DecimalBase {
		return experimental.DecimalString(d, u, p.Decimals)
	}
	return d.Format(u, p.Decimals)
}

// DefaultPresetDir is where presets live unless told otherwise, e.g.
// ~/.config/datasize on Linux.
func DefaultPresetDir() string {
	return filepath.Join(xdg.ConfigHome, "datasize")
}

// PresetDir manages multiple named presets stored as json files in a
// directory. One of them can be marked as current with a symlink.
type PresetDir struct {
	path string
}

// Only files with this suffix are presets, other programs can write files in
// the directory without being picked up.
const presetExt = ".json"

const currentLink = "current"

// NewPresetDir opens the preset directory at path, creating it if missing.
func NewPresetDir(path string) (*PresetDir, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !stat.Mode().IsDir() {
		return nil, fmt.Errorf("%s is not a directory", path)
	}

	return &PresetDir{path}, nil
}

func (c *PresetDir) Path() string {
	return c.path
}

func checkName(name string) error {
	if name == "" || name == currentLink || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: bad name %q", InvalidPresetErr, name)
	}
	return nil
}

func (c *PresetDir) presetPath(name string) string {
	return filepath.Join(c.path, name) + presetExt
}

func presetName(path string) string {
	return filepath.Base(strings.TrimSuffix(path, presetExt))
}

func loadPath(path string) (Preset, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("failed loading preset at %s: %w", path, err)
	}

	var preset Preset
	if err := json.Unmarshal(bytes, &preset); err != nil {
		return Preset{}, fmt.Errorf("failed parsing preset at %s: %w", path, err)
	}
	return preset, preset.Validate()
}

func (c *PresetDir) Get(name string) (Preset, error) {
	if err := checkName(name); err != nil {
		return Preset{}, err
	}
	return loadPath(c.presetPath(name))
}

// Set stores the preset, replacing any previous one of the same name.
func (c *PresetDir) Set(name string, preset Preset) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := preset.Validate(); err != nil {
		return err
	}

	bytes, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return fmt.Errorf("failed marshaling preset %s: %w", name, err)
	}

	return os.WriteFile(c.presetPath(name), bytes, 0644)
}

// Use marks an existing preset as the current one.
func (c *PresetDir) Use(name string) error {
	if _, err := c.Get(name); err != nil {
		return err
	}

	linkPath := filepath.Join(c.path, currentLink)
	if err := os.Remove(linkPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed replacing current link: %w", err)
	}
	return os.Symlink(c.presetPath(name), linkPath)
}

// List returns the preset names in lexical order.
func (c *PresetDir) List() ([]string, error) {
	entries, err := os.ReadDir(c.path)
	if err != nil {
		return nil, err
	}

	list := make([]string, 0, len(entries))
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != presetExt || !entry.Type().IsRegular() {
			continue
		}

		list = append(list, presetName(entry.Name()))
	}
	sort.Strings(list)

	return list, nil
}

// Current returns the name and content of the preset marked by Use. It
// fails with NoCurrentErr when none was marked.
func (c *PresetDir) Current() (string, Preset, error) {
	linkPath := filepath.Join(c.path, currentLink)
	info, err := os.Lstat(linkPath)
	if errors.Is(err, os.ErrNotExist) {
		return "", Preset{}, NoCurrentErr
	} else if err != nil {
		return "", Preset{}, err
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return "", Preset{}, errors.New("invalid current link")
	}

	currentPath, err := os.Readlink(linkPath)
	if err != nil {
		return "", Preset{}, fmt.Errorf("failed loading current link: %w", err)
	}

	preset, err := loadPath(currentPath)
	if err != nil {
		return "", Preset{}, fmt.Errorf("failed loading current preset: %w", err)
	}
	return presetName(currentPath), preset, nil
}
