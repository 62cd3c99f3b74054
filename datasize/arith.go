// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package datasize

import (
	"fmt"
	"math"

	"github.com/optable/datasize/unit"
)

// Arithmetic never wraps: results are clamped into [0, MaxBytes]. Only
// divisions by an invalid divisor fail, with InvalidArgErr.

// Add returns d+other, saturating at Infinite.
func (d DataSize) Add(other DataSize) DataSize {
	sum := d.raw + other.raw
	if sum < 0 {
		return Infinite
	}
	return DataSize{raw: sum}
}

// Sub returns d-other, saturating at Zero.
func (d DataSize) Sub(other DataSize) DataSize {
	return clamp(d.raw - other.raw)
}

// Mul returns d*scale. A zero or negative scale yields Zero, an overflowing
// product Infinite.
func (d DataSize) Mul(scale int64) DataSize {
	if scale <= 0 || d.raw == 0 {
		return Zero
	}
	if d.raw > MaxBytes/scale {
		return Infinite
	}
	return DataSize{raw: d.raw * scale}
}

// MulFloat returns d*scale. An integral scale behaves like Mul, otherwise the
// product is computed in float64 and rounded to the nearest byte.
func (d DataSize) MulFloat(scale float64) (DataSize, error) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return Zero, fmt.Errorf("%w: scale %v must be finite", InvalidArgErr, scale)
	}

	if n, ok := integral(scale); ok {
		return d.Mul(n), nil
	}

	return clampFloat(d.ToFloat64(unit.Bytes) * scale), nil
}

// Div returns d/scale, truncated to a whole byte. The scale must be positive.
func (d DataSize) Div(scale int64) (DataSize, error) {
	if scale <= 0 {
		return Zero, fmt.Errorf("%w: scale %d must be a positive value to perform division", InvalidArgErr, scale)
	}
	return DataSize{raw: d.raw / scale}, nil
}

// DivFloat returns d/scale. A nonzero integral scale behaves like Div,
// otherwise the quotient is computed in float64 and rounded to the nearest
// byte. The scale must be positive.
func (d DataSize) DivFloat(scale float64) (DataSize, error) {
	if n, ok := integral(scale); ok && n != 0 {
		return d.Div(n)
	}

	if math.IsNaN(scale) || scale <= 0 {
		return Zero, fmt.Errorf("%w: scale %v must be a positive value to perform division", InvalidArgErr, scale)
	}

	return clampFloat(d.ToFloat64(unit.Bytes) / scale), nil
}

// DivSize returns the ratio d/other. The divisor must not be Zero.
func (d DataSize) DivSize(other DataSize) (float64, error) {
	if other.IsZero() {
		return 0, fmt.Errorf("%w: data size %d must be a positive value to perform division", InvalidArgErr, other.raw)
	}

	// Both sides are held in bytes, which is therefore the coarser of their
	// natural units.
	coarser := unit.Bytes
	return d.ToFloat64(coarser) / other.ToFloat64(coarser), nil
}

// Mod returns the remainder of d divided by other. The divisor must not be
// Zero.
func (d DataSize) Mod(other DataSize) (DataSize, error) {
	if other.IsZero() {
		return Zero, fmt.Errorf("%w: data size %d must be a positive value to perform modulo", InvalidArgErr, other.raw)
	}
	return DataSize{raw: d.raw % other.raw}, nil
}

// Compare returns -1, 0 or +1 depending on whether d is smaller, equal or
// larger than other.
func (d DataSize) Compare(other DataSize) int {
	switch {
	case d.raw < other.raw:
		return -1
	case d.raw > other.raw:
		return 1
	default:
		return 0
	}
}

// Less reports whether d is smaller than other.
func (d DataSize) Less(other DataSize) bool {
	return d.raw < other.raw
}

// Min returns the smaller of a and b.
func Min(a, b DataSize) DataSize {
	if b.Less(a) {
		return b
	}
	return a
}

// Max returns the larger of a and b.
func Max(a, b DataSize) DataSize {
	if a.Less(b) {
		return b
	}
	return a
}

// integral returns f as an int64 when f holds an exact integer in range.
func integral(f float64) (int64, bool) {
	if f != math.Trunc(f) || f >= overflow || f < -overflow {
		return 0, false
	}
	return int64(f), true
}
