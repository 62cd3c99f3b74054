// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package main

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/optable/datasize/datasize"
	"github.com/optable/datasize/internal/numfmt"
)

type CalcCmd struct {
	Op string `arg:"" enum:"add,sub,mul,div,mod,ratio,cmp,min,max" help:"Operation (${enum}). mul and div take a number as B, the others a size."`
	A  string `arg:"" help:"Left operand, a size."`
	B  string `arg:"" help:"Right operand."`

	PresetFlags `embed:""`
}

// parseScalar prefers an integer to keep exact byte arithmetic.
func parseScalar(s string) (int64, float64, bool, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, 0, true, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: not a number %q", datasize.InvalidArgErr, s)
	}
	return 0, f, false, nil
}

func (c *CalcCmd) scale(a datasize.DataSize) (datasize.DataSize, error) {
	n, f, isInt, err := parseScalar(c.B)
	if err != nil {
		return datasize.Zero, err
	}

	switch {
	case c.Op == "mul" && isInt:
		return a.Mul(n), nil
	case c.Op == "mul":
		return a.MulFloat(f)
	case isInt:
		return a.Div(n)
	default:
		return a.DivFloat(f)
	}
}

func (c *CalcCmd) Run(rt *runtime) error {
	a, err := datasize.Parse(c.A)
	if err != nil {
		return fmt.Errorf("operand A: %w", err)
	}

	if c.Op == "mul" || c.Op == "div" {
		result, err := c.scale(a)
		if err != nil {
			return err
		}
		return c.writeSize(rt, result)
	}

	b, err := datasize.Parse(c.B)
	if err != nil {
		return fmt.Errorf("operand B: %w", err)
	}

	zerolog.Ctx(rt.ctx).Debug().Str("op", c.Op).Int64("a", a.InBytes()).Int64("b", b.InBytes()).Msg("Computing")

	switch c.Op {
	case "add":
		return c.writeSize(rt, a.Add(b))
	case "sub":
		return c.writeSize(rt, a.Sub(b))
	case "mod":
		result, err := a.Mod(b)
		if err != nil {
			return err
		}
		return c.writeSize(rt, result)
	case "min":
		return c.writeSize(rt, datasize.Min(a, b))
	case "max":
		return c.writeSize(rt, datasize.Max(a, b))
	case "cmp":
		_, err := rt.out.Write([]byte(strconv.Itoa(a.Compare(b))))
		return err
	case "ratio":
		return c.writeRatio(rt, a, b)
	default:
		return fmt.Errorf("%w: unknown operation %q", datasize.InvalidArgErr, c.Op)
	}
}

func (c *CalcCmd) writeSize(rt *runtime, size datasize.DataSize) error {
	preset, err := c.resolve(rt)
	if err != nil {
		return err
	}

	formatted, err := preset.Format(size)
	if err != nil {
		return err
	}
	_, err = rt.out.Write([]byte(formatted))
	return err
}

func (c *CalcCmd) writeRatio(rt *runtime, a, b datasize.DataSize) error {
	preset, err := c.resolve(rt)
	if err != nil {
		return err
	}

	ratio, err := a.DivSize(b)
	if err != nil {
		return err
	}

	decimals := preset.Decimals
	if decimals > datasize.MaxDecimals {
		decimals = datasize.MaxDecimals
	}

	formatted, err := numfmt.Format(ratio, decimals)
	if err != nil {
		return err
	}
	_, err = rt.out.Write([]byte(formatted))
	return err
}
