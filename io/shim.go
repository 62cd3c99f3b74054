// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package io

import (
	"bufio"
	"io"
	"os"

	"github.com/optable/datasize/errors"
	"github.com/optable/datasize/unit"
)

const defaultBufSize = 4 * unit.Kibibyte

// NewBufferWriteCloserSize wraps an io.Writer in a buffer that is flushed on
// Close. If the writer also implements io.Closer it is closed afterwards,
// unless it is one of the process standard streams which stay open for the
// rest of the program. A non-positive size selects the default of 4 KiB.
func NewBufferWriteCloserSize(w io.Writer, size int) io.WriteCloser {
	if size <= 0 {
		size = int(defaultBufSize)
	}

	buf := bufio.NewWriterSize(w, size)

	// First flush the buffer
	closers := []io.Closer{CloserFn(buf.Flush)}
	// Then possibly close the writer if required.
	if wc, ok := w.(io.Closer); ok && !isStdStream(w) {
		closers = append(closers, wc)
	}

	return NewChainedCloser(buf, closers...)
}

// NewBufferWriteCloser is NewBufferWriteCloserSize with the default size.
func NewBufferWriteCloser(w io.Writer) io.WriteCloser {
	return NewBufferWriteCloserSize(w, 0)
}

func isStdStream(w io.Writer) bool {
	return w == os.Stdout || w == os.Stderr
}

// NewChainedCloser returns a io.WriteCloser that closes the provided closers
// in order. Every closer is invoked even if a previous one failed; the
// failures are reported together.
func NewChainedCloser(w io.Writer, cs ...io.Closer) io.WriteCloser {
	return &chainedCloser{Writer: w, cs: cs}
}

type chainedCloser struct {
	io.Writer
	cs []io.Closer
}

func (w *chainedCloser) Close() error {
	errs := make([]error, 0, len(w.cs))
	for _, c := range w.cs {
		errs = append(errs, c.Close())
	}

	return errors.NewErrors(errs...)
}

// CloserFn implements the io.Closer interface for closures of the same
// signature.
type CloserFn func() error

func (c CloserFn) Close() error {
	return c()
}
