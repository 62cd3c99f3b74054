// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.

// Package experimental holds datasize APIs whose behavior or availability may
// change in future versions. Importing it is the opt-in.
package experimental

import (
	"math"

	"github.com/optable/datasize/datasize"
	"github.com/optable/datasize/unit"
)

// ToDecimalUnit rescales a magnitude expressed with binary (1024^n) scaling
// for u into the equivalent decimal (1000^n) magnitude. It is the inverse of
// unit.ToBinary.
func ToDecimalUnit(value float64, u unit.Unit) float64 {
	power := float64(u.Power())
	return value * (math.Pow(unit.BinaryBase, power) / math.Pow(unit.DecimalBase, power))
}

// DecimalString renders d like DataSize.Format but in decimal base: one
// "KB" is 1000 bytes, one "MB" 1000^2 bytes, and so on.
func DecimalString(d datasize.DataSize, u unit.Unit, decimals int) (string, error) {
	// FormatFloat rejects an invalid u.
	var number float64
	if u.Valid() {
		number = ToDecimalUnit(d.ToFloat64(u), u)
	}
	return datasize.FormatFloat(number, u, decimals)
}
