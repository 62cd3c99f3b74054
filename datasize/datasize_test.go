// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package datasize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optable/datasize/unit"
)

func TestFromValueRoundTripsBytes(t *testing.T) {
	for _, n := range []int64{0, 1, 1023, 1 << 53, 1<<53 + 1, MaxBytes - 1, MaxBytes} {
		size, err := FromValue(n, unit.Bytes)
		require.NoError(t, err)
		assert.Equal(t, n, size.ToInt64(unit.Bytes))
		assert.Equal(t, n, size.InBytes())
	}
}

func TestOneOfEachUnitIsOne(t *testing.T) {
	for _, u := range unit.Units() {
		size, err := FromValue(1, u)
		require.NoError(t, err)
		assert.Equal(t, int32(1), size.ToInt32(u), u.String())
		assert.Equal(t, u.Scale(), size.InBytes(), u.String())
	}
}

func TestFromValueRejectsOutOfRange(t *testing.T) {
	_, err := FromValue(-3, unit.Kilobytes)
	assert.ErrorIs(t, err, RangeErr)

	_, err = FromValue(-1, unit.Bytes)
	assert.ErrorIs(t, err, RangeErr)

	// 8388608 TB is exactly 2^63 bytes.
	_, err = FromValue(8388608, unit.Terabytes)
	assert.ErrorIs(t, err, RangeErr)

	size, err := FromValue(8388607, unit.Terabytes)
	require.NoError(t, err)
	assert.Equal(t, int64(8388607), size.ToInt64(unit.Terabytes))
}

func TestFromValueRejectsInvalidUnit(t *testing.T) {
	_, err := FromValue(1, unit.Unit(9))
	assert.ErrorIs(t, err, InvalidArgErr)

	_, err = FromFloat(1, unit.Unit(-1))
	assert.ErrorIs(t, err, InvalidArgErr)
}

func TestFromFloat(t *testing.T) {
	size, err := FromFloat(117.5, unit.Megabytes)
	require.NoError(t, err)
	assert.Equal(t, int64(123207680), size.InBytes())
	assert.InDelta(t, 117.5, size.InMegabytes(), 0.01)
	assert.InDelta(t, 120320.0, size.InKilobytes(), 0.01)

	// 5.32 GB is 5712306503.68 bytes, rounded to the nearest byte.
	size, err = FromFloat(5.32, unit.Gigabytes)
	require.NoError(t, err)
	assert.Equal(t, int64(5712306504), size.InBytes())

	// Ties round away from zero.
	assert.Equal(t, int64(3), BytesFloat(2.5).InBytes())
	assert.Equal(t, Zero, BytesFloat(-0.4))
}

func TestFromFloatRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := FromFloat(f, unit.Kilobytes)
		assert.ErrorIs(t, err, InvalidArgErr)
	}
}

func TestFromFloatRejectsOutOfRange(t *testing.T) {
	_, err := FromFloat(-1, unit.Kilobytes)
	assert.ErrorIs(t, err, RangeErr)

	_, err = FromFloat(1e19, unit.Bytes)
	assert.ErrorIs(t, err, RangeErr)

	_, err = FromFloat(8388608, unit.Terabytes)
	assert.ErrorIs(t, err, RangeErr)
}

func TestHelpersPanicOnConstructionErrors(t *testing.T) {
	assert.Panics(t, func() { Kilobytes(-3) })
	assert.Panics(t, func() { Terabytes(math.MaxInt64) })
	assert.Panics(t, func() { MegabytesFloat(math.NaN()) })
	assert.NotPanics(t, func() { Bytes(MaxBytes) })
}

func TestHelpersMatchFromValue(t *testing.T) {
	assert.Equal(t, MustFromValue(3, unit.Bytes), Bytes(3))
	assert.Equal(t, MustFromValue(3, unit.Kilobytes), Kilobytes(3))
	assert.Equal(t, MustFromValue(3, unit.Megabytes), Megabytes(3))
	assert.Equal(t, MustFromValue(3, unit.Gigabytes), Gigabytes(3))
	assert.Equal(t, MustFromValue(3, unit.Terabytes), Terabytes(3))

	assert.Equal(t, Kilobytes(1), KilobytesFloat(1.0))
	assert.Equal(t, Kilobytes(1), BytesFloat(1024))
	assert.Equal(t, Megabytes(1536), GigabytesFloat(1.5))
	assert.Equal(t, Gigabytes(512), TerabytesFloat(0.5))
	assert.Equal(t, Bytes(512), KilobytesFloat(0.5))
}

func TestSentinels(t *testing.T) {
	assert.True(t, Zero.IsZero())
	assert.False(t, Zero.IsInfinite())
	assert.True(t, Infinite.IsInfinite())
	assert.False(t, Infinite.IsZero())
	assert.True(t, DataSize{}.IsZero())
	assert.True(t, Bytes(MaxBytes).IsInfinite())

	assert.Equal(t, int64(0), Zero.InBytes())
	assert.Equal(t, 0.0, Zero.InKilobytes())
	assert.Equal(t, 0.0, Zero.InMegabytes())
	assert.Equal(t, 0.0, Zero.InGigabytes())
	assert.Equal(t, 0.0, Zero.InTerabytes())
}

func TestToInt32Clamps(t *testing.T) {
	assert.Equal(t, int32(math.MaxInt32), Infinite.ToInt32(unit.Bytes))
	// MaxBytes converts through float64 as exactly 2^63.
	assert.Equal(t, int32(8388608), Infinite.ToInt32(unit.Terabytes))
	assert.Equal(t, int32(1023), Bytes(1023).ToInt32(unit.Bytes))
	assert.Equal(t, int32(0), Bytes(1023).ToInt32(unit.Kilobytes))
}

func TestOrZero(t *testing.T) {
	assert.Equal(t, Zero, OrZero(nil))

	size := Kilobytes(4)
	assert.Equal(t, size, OrZero(&size))
}

func TestConvertFloorsToPrecision(t *testing.T) {
	assert.Equal(t, 104857600.0, Convert(104857600, unit.Bytes, unit.Bytes, DefaultPrecision))
	assert.Equal(t, 100.0, Convert(104857600, unit.Bytes, unit.Megabytes, DefaultPrecision))
	assert.Equal(t, 104857600.0, Convert(100, unit.Megabytes, unit.Bytes, DefaultPrecision))
	assert.Equal(t, 1.5, Convert(1536, unit.Bytes, unit.Kilobytes, DefaultPrecision))

	// 0.9765625 KB floors to 0.97, where Format would show 0,98.
	assert.Equal(t, 0.97, Convert(1000, unit.Bytes, unit.Kilobytes, DefaultPrecision))
	assert.Equal(t, 0.0, Convert(1, unit.Kilobytes, unit.Megabytes, DefaultPrecision))
	assert.Equal(t, 0.9, Convert(1000, unit.Bytes, unit.Kilobytes, 1))
	assert.Equal(t, 0.0, Convert(1000, unit.Bytes, unit.Kilobytes, 0))
}
