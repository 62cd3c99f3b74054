// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package main

import (
	"errors"
	stdio "io"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/optable/datasize/cli"
	"github.com/optable/datasize/datasize"
	dserrors "github.com/optable/datasize/errors"
	dsio "github.com/optable/datasize/io"
)

type FormatCmd struct {
	Sizes []string `arg:"" optional:"" help:"Sizes such as 1024, 10MB or 1.5g. Reads one per line from stdin when empty or '-'."`

	PresetFlags `embed:""`
}

func (c *FormatCmd) frames(rt *runtime) dsio.FrameReader {
	if len(c.Sizes) == 0 || (len(c.Sizes) == 1 && c.Sizes[0] == "-") {
		return dsio.NewLineFrameReader(rt.stdin, true)
	}
	return dsio.SliceFrameReader(c.Sizes)
}

func (c *FormatCmd) Run(rt *runtime) error {
	preset, err := c.resolve(rt)
	if err != nil {
		return err
	}

	return formatFrames(rt, preset, c.frames(rt))
}

// formatFrames writes one line per frame. A frame that fails does not stop
// the others, the failures are returned together.
func formatFrames(rt *runtime, preset cli.Preset, frames dsio.FrameReader) error {
	logger := zerolog.Ctx(rt.ctx)

	var errs []error
	for {
		if err := rt.ctx.Err(); err != nil {
			return dserrors.NewErrors(append(errs, err)...)
		}

		frame, err := frames.Read()
		if errors.Is(err, stdio.EOF) {
			break
		} else if err != nil {
			return dserrors.NewErrors(append(errs, err)...)
		}

		input := string(frame.Payload)
		size, err := datasize.Parse(input)
		if err != nil {
			errs = append(errs, dserrors.NewInputError(frame.Line, input, err))
			continue
		}
		logger.Debug().Int("line", frame.Line).Str("size", humanize.IBytes(uint64(size.InBytes()))).Msg("Parsed size")

		formatted, err := preset.Format(size)
		if err != nil {
			errs = append(errs, dserrors.NewInputError(frame.Line, input, err))
			continue
		}

		if _, err := rt.out.Write([]byte(formatted)); err != nil {
			return dserrors.NewErrors(append(errs, err)...)
		}
	}

	return dserrors.NewErrors(errs...)
}
