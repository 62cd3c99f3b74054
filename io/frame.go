// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package io

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/optable/datasize/unit"
)

// Frame is a single message read from a stream along with its 1-based
// position, e.g. the line number in a newline-delimited file.
type Frame struct {
	Line    int
	Payload []byte
}

// FrameReader reads messages framed in a stream. The implementer is not
// required to provide any concurrency guarantees. Returns io.EOF when no
// frames are left.
type FrameReader interface {
	// Read a single message. The payload is only valid until the next call.
	Read() (Frame, error)
}

// FrameWriter wraps messages (payload) and takes care of framing them in a
// stream.
type FrameWriter interface {
	// Write a single message. Returns the number of bytes required to write
	// the message with framing.
	Write(payload []byte) (int, error)
}

// Lines starting with this byte are skipped by readers built with
// skipComments.
const commentPrefix = '#'

// NewLineFrameReader parses a stream where each line is a message, e.g. a
// list of sizes. Surrounding whitespace is trimmed and, when skipComments is
// set, blank lines and lines starting with '#' are skipped while still
// counting toward the line numbers.
//
// The implementation uses bufio.Scanner underneath: `\r\n` is supported and
// lines are capped to one mebibyte, longer lines fail with bufio.ErrTooLong.
func NewLineFrameReader(r io.Reader, skipComments bool) FrameReader {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*unit.Kibibyte)
	scanner.Buffer(buf, int(unit.Mebibyte))

	line := 0
	return frameReaderFn(func() (Frame, error) {
		for {
			if !scanner.Scan() {
				err := scanner.Err()
				// We reached EOF
				if err == nil {
					err = io.EOF
				}
				return Frame{}, err
			}
			line++

			payload := bytes.TrimSpace(scanner.Bytes())
			if skipComments && (len(payload) == 0 || payload[0] == commentPrefix) {
				continue
			}
			return Frame{Line: line, Payload: payload}, nil
		}
	})
}

// NewLineFrameWriter terminates every message with a `\n`. The payload
// should not contain a newline, this is the responsibility of the caller.
func NewLineFrameWriter(w io.Writer) FrameWriter {
	newline := []byte{'\n'}
	return frameWriterFn(func(payload []byte) (int, error) {
		n, err := w.Write(payload)
		if err != nil {
			return n, err
		}

		written, err := w.Write(newline)
		return n + written, err
	})
}

type sliceFrameReader struct {
	frames []string
	pos    int
}

func (s *sliceFrameReader) Read() (Frame, error) {
	if s.pos == len(s.frames) {
		return Frame{}, io.EOF
	}

	frame := Frame{Line: s.pos + 1, Payload: []byte(s.frames[s.pos])}
	s.pos++

	return frame, nil
}

// SliceFrameReader wraps a slice of messages, e.g. command line arguments, in
// a FrameReader. Positions start at 1.
func SliceFrameReader(frames []string) FrameReader {
	return &sliceFrameReader{frames: frames}
}

// ReadAllFrames returns all frames exposed by a FrameReader until io.EOF is
// reached. If an error is encountered, it returns said error with an empty
// slice.
func ReadAllFrames(r FrameReader) ([]Frame, error) {
	frames := make([]Frame, 0, 16)
	for {
		frame, err := r.Read()
		if errors.Is(err, io.EOF) {
			return frames, nil
		} else if err != nil {
			return nil, err
		}

		payload := make([]byte, len(frame.Payload))
		copy(payload, frame.Payload)
		frames = append(frames, Frame{Line: frame.Line, Payload: payload})
	}
}

type frameWriterFn func([]byte) (int, error)

func (f frameWriterFn) Write(payload []byte) (int, error) {
	return f(payload)
}

type frameReaderFn func() (Frame, error)

func (f frameReaderFn) Read() (Frame, error) {
	return f()
}
