// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package datasize

import (
	"fmt"
	"math"

	"github.com/optable/datasize/internal/numfmt"
	"github.com/optable/datasize/unit"
)

// MaxDecimals caps the number of fractional digits Format shows.
const MaxDecimals = 2

// Format returns d expressed in u with at most decimals fractional digits,
// followed by a space and the unit short name, e.g. "5,32 GB" or
// "102.400 KB". Requests for more than MaxDecimals digits are capped.
// Infinite has no special rendering, e.g. "8.388.608 TB".
func (d DataSize) Format(u unit.Unit, decimals int) (string, error) {
	if err := checkUnit(u); err != nil {
		return "", err
	}
	return FormatFloat(d.ToFloat64(u), u, decimals)
}

// FormatFloat renders number, already expressed in u, the way Format does.
// An infinite number renders as "Infinity", without a unit.
func FormatFloat(number float64, u unit.Unit, decimals int) (string, error) {
	if err := checkUnit(u); err != nil {
		return "", err
	}
	if decimals < 0 {
		return "", fmt.Errorf("%w: decimals must not be negative, but was %d", InvalidArgErr, decimals)
	}

	if math.IsInf(number, 0) {
		return numfmt.Infinity, nil
	}

	if decimals > MaxDecimals {
		decimals = MaxDecimals
	}

	text, err := numfmt.Format(number, decimals)
	if err != nil {
		return "", err
	}
	return text + " " + u.ShortName(), nil
}

// UnitFrom picks the largest unit whose scale the byte count of d strictly
// exceeds, falling back to Bytes. Infinite resolves to Terabytes.
func UnitFrom(d DataSize) unit.Unit {
	units := unit.Units()
	for i := len(units) - 1; i > 0; i-- {
		if d.raw > units[i].Scale() {
			return units[i]
		}
	}
	return unit.Bytes
}

// UnitFromBytes is UnitFrom for a raw byte count.
func UnitFromBytes(n int64) (unit.Unit, error) {
	size, err := FromValue(n, unit.Bytes)
	if err != nil {
		return unit.Bytes, err
	}
	return UnitFrom(size), nil
}

// Humanize formats d in the unit picked by UnitFrom.
func Humanize(d DataSize, decimals int) (string, error) {
	return d.Format(UnitFrom(d), decimals)
}

// HumanizeBytes is Humanize for a raw byte count.
func HumanizeBytes(n int64, decimals int) (string, error) {
	size, err := FromValue(n, unit.Bytes)
	if err != nil {
		return "", err
	}
	return Humanize(size, decimals)
}

// String implements fmt.Stringer, e.g. "117,5 MB".
func (d DataSize) String() string {
	s, err := Humanize(d, MaxDecimals)
	if err != nil {
		return fmt.Sprintf("DataSize(%d)", d.raw)
	}
	return s
}
