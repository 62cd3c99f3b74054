// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package numfmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertFormat(t *testing.T, expected string, number float64, decimals int) {
	t.Helper()
	actual, err := Format(number, decimals)
	require.NoError(t, err)
	assert.Equal(t, expected, actual, "Format(%v, %d)", number, decimals)
}

func TestFormatRoundsHalfUp(t *testing.T) {
	assertFormat(t, "5", 5.32, 0)
	assertFormat(t, "5,3", 5.32, 1)
	assertFormat(t, "5,32", 5.32, 2)
	assertFormat(t, "1", 0.5, 0)
	assertFormat(t, "3", 2.5, 0)
	assertFormat(t, "0,13", 0.125, 2)
	// 2.675 is stored as 2.67499999999999982236431605997495353221893310546875.
	assertFormat(t, "2,67", 2.675, 2)
}

func TestFormatDropsTrailingZeros(t *testing.T) {
	assertFormat(t, "5,3", 5.3, 2)
	assertFormat(t, "7", 7.0, 2)
	assertFormat(t, "1", 0.999, 2)
	assertFormat(t, "0", 0, 2)
	assertFormat(t, "0", math.Copysign(0, -1), 2)
}

func TestFormatGroupsFromThreshold(t *testing.T) {
	assertFormat(t, "1000", 1000, 1)
	assertFormat(t, "9999", 9999, 0)
	assertFormat(t, "10.000", 10000, 1)
	assertFormat(t, "102.400", 102400, 0)
	assertFormat(t, "1.048.576,5", 1048576.5, 2)
	assertFormat(t, "9.223.372.036.854.775.808", math.MaxInt64, 0)

	// The threshold applies to the value before rounding.
	assertFormat(t, "10000", 9999.999, 2)
}

func TestFormatNonFinite(t *testing.T) {
	assertFormat(t, Infinity, math.Inf(1), 2)
	assertFormat(t, "-"+Infinity, math.Inf(-1), 0)
	assertFormat(t, "NaN", math.NaN(), 0)
}

func TestFormatNegativeDecimalsMeansNone(t *testing.T) {
	assertFormat(t, "6", 5.5, -3)
}
