// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optable/datasize/datasize"
	"github.com/optable/datasize/unit"
)

func unitPtr(u unit.Unit) *unit.Unit {
	return &u
}

func requirePresetDir(t *testing.T) *PresetDir {
	presetDir, err := NewPresetDir(t.TempDir())
	require.NoError(t, err)
	return presetDir
}

func TestOpenPresetDirFailsOnFiles(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "datasize-test-*")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	presetDir, err := NewPresetDir(file.Name())
	assert.Nil(t, presetDir)
	assert.Error(t, err)
}

func TestOpenPresetDirCreatesMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "datasize")
	presetDir, err := NewPresetDir(path)
	require.NoError(t, err)
	assert.Equal(t, path, presetDir.Path())

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestDefaultPresetDir(t *testing.T) {
	assert.Equal(t, "datasize", filepath.Base(DefaultPresetDir()))
}

func TestPresetDirCurrentFailsOnAbsentLink(t *testing.T) {
	presetDir := requirePresetDir(t)

	current, preset, err := presetDir.Current()
	assert.Empty(t, current)
	assert.Equal(t, Preset{}, preset)
	assert.ErrorIs(t, err, NoCurrentErr)
}

func TestPresetDirOnlyListRecognizedFiles(t *testing.T) {
	presetDir := requirePresetDir(t)
	_, err := os.CreateTemp(presetDir.Path(), "nope-*.chose")
	require.NoError(t, err)
	require.NoError(t, presetDir.Set("yes", DefaultPreset))

	list, err := presetDir.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"yes"}, list)
}

func TestPresetDirRejectsBadNames(t *testing.T) {
	presetDir := requirePresetDir(t)
	for _, name := range []string{"", "current", "../escape", ".hidden", `a\b`} {
		assert.ErrorIs(t, presetDir.Set(name, DefaultPreset), InvalidPresetErr, name)
	}
}

func TestPresetDirRejectsInvalidPresets(t *testing.T) {
	presetDir := requirePresetDir(t)
	assert.ErrorIs(t, presetDir.Set("bad", Preset{Unit: unitPtr(unit.Unit(7))}), InvalidPresetErr)
	assert.ErrorIs(t, presetDir.Set("bad", Preset{Decimals: -1}), InvalidPresetErr)

	require.NoError(t, os.WriteFile(filepath.Join(presetDir.Path(), "broken.json"), []byte(`{"unit":"PB"}`), 0644))
	_, err := presetDir.Get("broken")
	assert.Error(t, err)
}

func TestPresetDirUseRequiresExistingPreset(t *testing.T) {
	presetDir := requirePresetDir(t)
	assert.ErrorIs(t, presetDir.Use("missing"), os.ErrNotExist)
}

func TestPresetDirSetDumpsAndLoadPresets(t *testing.T) {
	dir := t.TempDir()
	presetDir, err := NewPresetDir(dir)
	require.NoError(t, err)

	storage := Preset{Unit: unitPtr(unit.Gigabytes), Decimals: 1}
	network := Preset{Unit: unitPtr(unit.Megabytes), Decimals: 2, DecimalBase: true}

	require.NoError(t, presetDir.Set("storage", storage))
	require.NoError(t, presetDir.Set("network", network))
	require.NoError(t, presetDir.Use("storage"))
	// Switching replaces the link.
	require.NoError(t, presetDir.Use("network"))

	// Reopening the preset dir to show state is loaded from disk
	presetDir, err = NewPresetDir(dir)
	require.NoError(t, err)

	presets, err := presetDir.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"network", "storage"}, presets)

	current, preset, err := presetDir.Current()
	require.NoError(t, err)
	assert.Equal(t, "network", current)
	assert.Equal(t, network, preset)

	preset, err = presetDir.Get("storage")
	require.NoError(t, err)
	assert.Equal(t, storage, preset)

	raw, err := os.ReadFile(filepath.Join(dir, "storage.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"unit":"GB","decimals":1}`, string(raw))
}

func TestPresetFormat(t *testing.T) {
	cases := []struct {
		preset   Preset
		size     datasize.DataSize
		expected string
	}{
		{DefaultPreset, datasize.MegabytesFloat(117.5), "117,5 MB"},
		{Preset{}, datasize.GigabytesFloat(5.32), "5 GB"},
		{Preset{Unit: unitPtr(unit.Kilobytes)}, datasize.Megabytes(100), "102.400 KB"},
		{Preset{Unit: unitPtr(unit.Megabytes), Decimals: 2, DecimalBase: true}, datasize.Megabytes(1), "1,05 MB"},
		{Preset{Decimals: 5}, datasize.GigabytesFloat(5.325), "5,33 GB"},
		{DefaultPreset, datasize.Infinite, "8.388.608 TB"},
	}

	for _, c := range cases {
		actual, err := c.preset.Format(c.size)
		require.NoError(t, err)
		assert.Equal(t, c.expected, actual)
	}
}
