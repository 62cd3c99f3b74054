// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.

// Package unit defines the byte-scale units a data size can be expressed in
// and the conversion math between them.
package unit

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Unit is a byte-scale unit. Units are ordered by scale, the smallest being
// Bytes and the largest Terabytes.
type Unit int

const (
	Bytes Unit = iota
	Kilobytes
	Megabytes
	Gigabytes
	Terabytes
)

var InvalidUnitErr = errors.New("Invalid unit")

var names = [...]struct {
	short string
	long  string
}{
	Bytes:     {"B", "Bytes"},
	Kilobytes: {"KB", "Kilobytes"},
	Megabytes: {"MB", "Megabytes"},
	Gigabytes: {"GB", "Gigabytes"},
	Terabytes: {"TB", "Terabytes"},
}

// Units returns every unit, smallest first.
func Units() []Unit {
	return []Unit{Bytes, Kilobytes, Megabytes, Gigabytes, Terabytes}
}

// Valid reports whether u is one of the defined units.
func (u Unit) Valid() bool {
	return u >= Bytes && u <= Terabytes
}

func (u Unit) mustBeValid() {
	if !u.Valid() {
		panic(fmt.Sprintf("unit: invalid Unit(%d)", int(u)))
	}
}

// Scale returns the number of bytes in one u. It panics on an invalid unit.
func (u Unit) Scale() int64 {
	u.mustBeValid()
	return Byte << (10 * uint(u))
}

// Power returns the exponent of BinaryBase giving the scale of u, from 0 for
// Bytes to 4 for Terabytes.
func (u Unit) Power() int {
	u.mustBeValid()
	return int(u)
}

// ShortName returns the abbreviation used when rendering sizes: B, KB, MB,
// GB or TB.
func (u Unit) ShortName() string {
	u.mustBeValid()
	return names[u].short
}

func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return names[u].long
}

// ParseUnit accepts short names (KB), long names (kilobytes, kilobyte), IEC
// names (KiB) and single letter prefixes (k), all case insensitive.
func ParseUnit(s string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, u := range Units() {
		short := strings.ToLower(names[u].short)
		long := strings.ToLower(names[u].long)
		switch key {
		case short, long, strings.TrimSuffix(long, "s"):
			return u, nil
		}
		if u == Bytes {
			continue
		}
		if prefix := short[:1]; key == prefix || key == prefix+"ib" {
			return u, nil
		}
	}
	return Bytes, fmt.Errorf("%w: %q", InvalidUnitErr, s)
}

func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w: %d", InvalidUnitErr, int(u))
	}
	return []byte(u.ShortName()), nil
}

func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Values at or above 2^63 do not fit an int64.
const overflow = 1 << 63

// saturate truncates f into the int64 range. NaN maps to 0.
func saturate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= overflow:
		return math.MaxInt64
	case f <= -overflow:
		return math.MinInt64
	default:
		return int64(f)
	}
}

// Convert converts value expressed in src into dst. The division is done in
// float64 and the result is floored, so converting to a larger unit drops
// any remainder and round trips through a larger unit can lose bytes.
func Convert(value int64, src, dst Unit) int64 {
	if src == dst {
		return value
	}

	ratio := float64(dst.Scale()) / float64(src.Scale())
	return saturate(math.Floor(float64(value) / ratio))
}

// ConvertFloat converts value expressed in src into dst.
func ConvertFloat(value float64, src, dst Unit) float64 {
	if src == dst {
		return value
	}

	// Number of src in one dst. It is zero when dst is the smaller unit, in
	// which case multiply by the number of dst in one src instead of dividing
	// by a fraction.
	if count := Convert(1, dst, src); count > 0 {
		return value / float64(count)
	}

	return value * float64(Convert(1, src, dst))
}

// ToBinary rescales a magnitude expressed with decimal (1000^n) scaling for u
// into the equivalent binary (1024^n) magnitude.
func ToBinary(value float64, u Unit) float64 {
	power := float64(u.Power())
	return value * (math.Pow(DecimalBase, power) / math.Pow(BinaryBase, power))
}
