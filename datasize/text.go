// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package datasize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/docker/go-units"

	"github.com/optable/datasize/unit"
)

// Parse reads a size from human input. A bare integer, optionally followed
// by "B", is an exact byte count. Anything else follows the docker
// memory-size grammar: a decimal number, an optional space and an optional
// binary prefix (k, m, g, t) with optional "i" and "b", e.g. "10MB", "1.5 g"
// or "512KiB". Fractional bytes are truncated.
//
// The rendering of Format is meant for humans and does not round trip: in
// "102.400 KB" the '.' is read as a decimal point.
func Parse(s string) (DataSize, error) {
	s = strings.TrimSpace(s)

	digits := s
	if strings.HasSuffix(digits, "B") || strings.HasSuffix(digits, "b") {
		digits = digits[:len(digits)-1]
	}
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return newDataSize(n)
	} else if errors.Is(err, strconv.ErrRange) {
		return Zero, fmt.Errorf("%w: %q", RangeErr, s)
	}

	// go-units also knows petabytes.
	if strings.ContainsAny(s, "pP") {
		return Zero, fmt.Errorf("%w: unsupported unit in %q", InvalidArgErr, s)
	}

	n, err := units.RAMInBytes(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %v", InvalidArgErr, err)
	}
	// go-units converts the float product to int64 unchecked, which is
	// platform dependent once it exceeds MaxBytes.
	if exceedsMaxBytes(s) {
		return Zero, fmt.Errorf("%w: %q exceeds %d bytes", RangeErr, s, int64(MaxBytes))
	}
	return newDataSize(n)
}

// exceedsMaxBytes recomputes the byte count of an input already accepted by
// units.RAMInBytes, in float64.
func exceedsMaxBytes(s string) bool {
	number, suffix := s, ""
	if end := strings.IndexFunc(s, func(r rune) bool { return (r < '0' || r > '9') && r != '.' }); end >= 0 {
		number, suffix = s[:end], strings.TrimSpace(s[end:])
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return false
	}

	scale := int64(unit.Byte)
	if suffix != "" {
		if u, err := unit.ParseUnit(suffix[:1]); err == nil {
			scale = u.Scale()
		}
	}
	return value*float64(scale) >= overflow
}

// MustParse is like Parse but panics on error.
func MustParse(s string) DataSize {
	size, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return size
}

// MarshalText encodes the exact byte count, e.g. "1024B".
func (d DataSize) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatInt(d.raw, 10) + unit.Bytes.ShortName()), nil
}

// UnmarshalText decodes any input accepted by Parse.
func (d *DataSize) UnmarshalText(text []byte) error {
	size, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = size
	return nil
}

// UnmarshalJSON accepts a string understood by Parse or a number of bytes.
func (d *DataSize) UnmarshalJSON(data []byte) error {
	switch {
	case string(data) == "null":
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return d.UnmarshalText([]byte(s))
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %v", InvalidArgErr, err)
	}

	size, err := newDataSize(n)
	if err != nil {
		return err
	}
	*d = size
	return nil
}
