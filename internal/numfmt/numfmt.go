// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.

// Package numfmt renders float magnitudes with a fixed grouping separator
// ('.') and decimal separator (',').
package numfmt

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/dustin/go-humanize"
)

const (
	GroupingSeparator = "."
	DecimalSeparator  = ","

	// GroupingThreshold is the smallest magnitude rendered with grouping.
	GroupingThreshold = 10000

	// Infinity is the rendering of an infinite magnitude.
	Infinity = "Infinity"
)

// The precision covers the integer part of any finite float64 (309 digits)
// plus the fraction.
var halfUp = apd.Context{
	Precision:   400,
	MaxExponent: apd.MaxExponent,
	MinExponent: apd.MinExponent,
	Traps:       apd.DefaultTraps,
	Rounding:    apd.RoundHalfUp,
}

// Format renders number with at most decimals fractional digits. Rounding is
// half-up on the exact binary value of number, so 0.125 renders "0,13" but
// 2.675 (stored as 2.67499...) renders "2,67". Trailing fractional zeros are
// dropped. Negative decimals are treated as zero.
func Format(number float64, decimals int) (string, error) {
	switch {
	case math.IsInf(number, 1):
		return Infinity, nil
	case math.IsInf(number, -1):
		return "-" + Infinity, nil
	case math.IsNaN(number):
		return "NaN", nil
	}

	if decimals < 0 {
		decimals = 0
	}

	exact, _, err := apd.NewFromString(exactText(number))
	if err != nil {
		return "", err
	}

	rounded := new(apd.Decimal)
	if _, err := halfUp.Quantize(rounded, exact, -int32(decimals)); err != nil {
		return "", fmt.Errorf("failed rounding %v: %w", number, err)
	}

	text := rounded.Text('f')
	sign := ""
	if strings.HasPrefix(text, "-") {
		sign, text = "-", text[1:]
	}

	integer, fraction := text, ""
	if i := strings.IndexByte(text, '.'); i >= 0 {
		integer, fraction = text[:i], strings.TrimRight(text[i+1:], "0")
	}

	if math.Abs(number) >= GroupingThreshold {
		integer = group(integer)
	}

	if fraction == "" {
		if integer == "0" {
			// Rounding a small negative yields "-0".
			sign = ""
		}
		return sign + integer, nil
	}
	return sign + integer + DecimalSeparator + fraction, nil
}

// exactText returns the full decimal expansion of f. Every finite float64 has
// a terminating expansion of at most 1074 fractional digits.
func exactText(f float64) string {
	return new(big.Float).SetFloat64(f).Text('f', 1074)
}

func group(integer string) string {
	n, ok := new(big.Int).SetString(integer, 10)
	if !ok {
		return integer
	}
	return strings.ReplaceAll(humanize.BigComma(n), ",", GroupingSeparator)
}
