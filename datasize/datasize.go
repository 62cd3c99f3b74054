// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.

// Package datasize provides DataSize, an immutable nonnegative quantity of
// bytes. Sizes are built from a count and a unit.Unit, combined with
// saturating arithmetic, and rendered with a fixed '.' grouping separator and
// ',' decimal separator:
//
//	size := datasize.Megabytes(100)
//	s, _ := size.Format(unit.Kilobytes, 0) // "102.400 KB"
//
// A DataSize is a plain value. Copy it freely and compare it with ==.
package datasize

import (
	"errors"
	"fmt"
	"math"

	"github.com/optable/datasize/unit"
)

// MaxBytes is the largest byte count a DataSize can hold, about 8 exabytes.
const MaxBytes = math.MaxInt64

var (
	// RangeErr is returned when a byte count falls outside [0, MaxBytes].
	RangeErr = errors.New("Value out of range")
	// InvalidArgErr is returned for non-finite inputs, invalid units,
	// non-positive divisors and negative decimals.
	InvalidArgErr = errors.New("Invalid argument")
)

// DataSize is a quantity of bytes in [0, MaxBytes]. The zero value is Zero.
type DataSize struct {
	raw int64
}

var (
	// Zero is exactly 0 bytes.
	Zero = DataSize{}
	// Infinite is the largest size, useful to represent an unlimited size.
	Infinite = DataSize{raw: MaxBytes}
)

func newDataSize(bytes int64) (DataSize, error) {
	if bytes < 0 {
		return Zero, fmt.Errorf("%w: DataSize must be in range 0 <= %d <= %d", RangeErr, bytes, int64(MaxBytes))
	}
	return DataSize{raw: bytes}, nil
}

// clamp builds a DataSize from any int64, saturating negatives to Zero.
func clamp(bytes int64) DataSize {
	if bytes < 0 {
		return Zero
	}
	return DataSize{raw: bytes}
}

// clampFloat builds a DataSize from a byte count held in a float, rounding to
// the nearest byte and saturating into range.
func clampFloat(bytes float64) DataSize {
	rounded := math.Round(bytes)
	switch {
	case rounded >= overflow:
		return Infinite
	case rounded <= 0 || math.IsNaN(rounded):
		return Zero
	default:
		return DataSize{raw: int64(rounded)}
	}
}

// Byte counts at or above 2^63 do not fit.
const overflow = 1 << 63

func checkUnit(u unit.Unit) error {
	if !u.Valid() {
		return fmt.Errorf("%w: %v", InvalidArgErr, u)
	}
	return nil
}

// FromValue returns value expressed in u as a DataSize. A negative value or
// one exceeding MaxBytes once converted to bytes fails with RangeErr.
func FromValue(value int64, u unit.Unit) (DataSize, error) {
	if err := checkUnit(u); err != nil {
		return Zero, err
	}

	if u != unit.Bytes && float64(value)*float64(u.Scale()) >= overflow {
		return Zero, fmt.Errorf("%w: %d %s exceeds %d bytes", RangeErr, value, u.ShortName(), int64(MaxBytes))
	}

	return newDataSize(unit.Convert(value, u, unit.Bytes))
}

// FromFloat returns value expressed in u as a DataSize, rounded to the nearest
// byte with ties away from zero. NaN and infinities fail with InvalidArgErr,
// out of range counts with RangeErr.
func FromFloat(value float64, u unit.Unit) (DataSize, error) {
	if err := checkUnit(u); err != nil {
		return Zero, err
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Zero, fmt.Errorf("%w: DataSize value cannot be %v", InvalidArgErr, value)
	}

	bytes := math.Round(unit.ConvertFloat(value, u, unit.Bytes))
	if bytes >= overflow {
		return Zero, fmt.Errorf("%w: %v %s exceeds %d bytes", RangeErr, value, u.ShortName(), int64(MaxBytes))
	}

	return newDataSize(int64(bytes))
}

// MustFromValue is like FromValue but panics on error.
func MustFromValue(value int64, u unit.Unit) DataSize {
	size, err := FromValue(value, u)
	if err != nil {
		panic(err)
	}
	return size
}

// MustFromFloat is like FromFloat but panics on error.
func MustFromFloat(value float64, u unit.Unit) DataSize {
	size, err := FromFloat(value, u)
	if err != nil {
		panic(err)
	}
	return size
}

// Bytes returns a DataSize of n bytes. It panics if n is negative.
func Bytes(n int64) DataSize { return MustFromValue(n, unit.Bytes) }

// Kilobytes returns a DataSize of n kilobytes. It panics if out of range.
func Kilobytes(n int64) DataSize { return MustFromValue(n, unit.Kilobytes) }

// Megabytes returns a DataSize of n megabytes. It panics if out of range.
func Megabytes(n int64) DataSize { return MustFromValue(n, unit.Megabytes) }

// Gigabytes returns a DataSize of n gigabytes. It panics if out of range.
func Gigabytes(n int64) DataSize { return MustFromValue(n, unit.Gigabytes) }

// Terabytes returns a DataSize of n terabytes. It panics if out of range.
func Terabytes(n int64) DataSize { return MustFromValue(n, unit.Terabytes) }

func BytesFloat(f float64) DataSize     { return MustFromFloat(f, unit.Bytes) }
func KilobytesFloat(f float64) DataSize { return MustFromFloat(f, unit.Kilobytes) }
func MegabytesFloat(f float64) DataSize { return MustFromFloat(f, unit.Megabytes) }
func GigabytesFloat(f float64) DataSize { return MustFromFloat(f, unit.Gigabytes) }
func TerabytesFloat(f float64) DataSize { return MustFromFloat(f, unit.Terabytes) }

// OrZero returns *d, or Zero when d is nil.
func OrZero(d *DataSize) DataSize {
	if d == nil {
		return Zero
	}
	return *d
}

// IsZero reports whether d is Zero.
func (d DataSize) IsZero() bool {
	return d == Zero
}

// IsInfinite reports whether d is Infinite.
func (d DataSize) IsInfinite() bool {
	return d == Infinite
}

// ToFloat64 returns d expressed in u. The result may be rounded when it
// cannot be represented exactly.
func (d DataSize) ToFloat64(u unit.Unit) float64 {
	return unit.ConvertFloat(float64(d.raw), unit.Bytes, u)
}

// ToInt64 returns d expressed in u, floored.
func (d DataSize) ToInt64(u unit.Unit) int64 {
	return unit.Convert(d.raw, unit.Bytes, u)
}

// ToInt32 returns d expressed in u, floored and clamped to the int32 range.
func (d DataSize) ToInt32(u unit.Unit) int32 {
	v := d.ToInt64(u)
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}

// InBytes returns the byte count of d.
func (d DataSize) InBytes() int64 {
	return d.raw
}

func (d DataSize) InKilobytes() float64 { return d.ToFloat64(unit.Kilobytes) }
func (d DataSize) InMegabytes() float64 { return d.ToFloat64(unit.Megabytes) }
func (d DataSize) InGigabytes() float64 { return d.ToFloat64(unit.Gigabytes) }
func (d DataSize) InTerabytes() float64 { return d.ToFloat64(unit.Terabytes) }

// DefaultPrecision is the number of fractional digits kept by Convert when
// callers have no preference.
const DefaultPrecision = 2

// Convert converts value from src to dst and rounds the result down to
// precision fractional digits. Unlike Format, which rounds half-up, the
// rounding here is always a floor.
func Convert(value float64, src, dst unit.Unit, precision int) float64 {
	factor := math.Pow(10, float64(precision))
	return math.Floor(unit.ConvertFloat(value, src, dst)*factor) / factor
}
