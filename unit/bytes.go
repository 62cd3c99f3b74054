// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package unit

const (
	// BinaryBase is the step between two consecutive units.
	BinaryBase = 1024
	// DecimalBase is the SI step, used when rescaling binary magnitudes.
	DecimalBase = 1000

	Byte int64 = 1

	// The binary (IEC) prefix are powers of 1024. Units in this package are
	// labeled KB, MB, etc. but always scale by these.
	Kibibyte = Byte * BinaryBase
	Mebibyte = Kibibyte * BinaryBase
	Gibibyte = Mebibyte * BinaryBase
	Tebibyte = Gibibyte * BinaryBase

	KiB = Kibibyte
	MiB = Mebibyte
	GiB = Gibibyte
	TiB = Tebibyte
)
