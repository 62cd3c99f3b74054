// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package main

import (
	"strconv"

	"github.com/optable/datasize/datasize"
	"github.com/optable/datasize/unit"
)

type ConvertCmd struct {
	Value     float64   `arg:"" help:"Number to convert."`
	From      unit.Unit `short:"f" default:"B" help:"Unit of the value."`
	To        unit.Unit `short:"t" required:"" help:"Unit to convert to."`
	Precision int       `default:"2" help:"Decimal places kept, the rest is floored."`
}

func (c *ConvertCmd) Run(rt *runtime) error {
	converted := datasize.Convert(c.Value, c.From, c.To, c.Precision)
	_, err := rt.out.Write([]byte(strconv.FormatFloat(converted, 'f', -1, 64)))
	return err
}
