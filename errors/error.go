// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package errors

import (
	"bytes"
	"fmt"
)

// InputError is an error paired with the input that caused it and the
// position of that input in a stream, e.g. the line number of a size that
// failed to parse. Batch tools keep going on such errors and report them all
// at the end. Use the `Line` and `Input` methods to extract the context.
type InputError struct {
	line  int
	input string
	err   error
}

// NewInputError creates an error for the input found at line.
func NewInputError(line int, input string, err error) error {
	return &InputError{line: line, input: input, err: err}
}

func (e *InputError) Error() string {
	return fmt.Sprintf("line %d: %q: %s", e.line, e.input, e.err.Error())
}

func (e *InputError) Line() int {
	return e.line
}

func (e *InputError) Input() string {
	return e.input
}

func (e *InputError) Unwrap() error {
	return e.err
}

// Errors is an error that wraps two or more errors. errors.Is and errors.As
// inspect all of them. Use the `Errors` method to extract them.
type Errors struct {
	errs []error
}

func (e *Errors) Error() string {
	buf := new(bytes.Buffer)

	fmt.Fprintf(buf, "%d errors:", len(e.errs))
	for _, err := range e.errs {
		buf.WriteString("\n\t")
		buf.WriteString(err.Error())
	}

	return buf.String()
}

func (e *Errors) Errors() []error {
	return e.errs
}

func (e *Errors) Unwrap() []error {
	return e.errs
}

// NewErrors batches the non-nil errors. It returns nil when there are none
// and the error itself when there is only one.
func NewErrors(errs ...error) error {
	var errors []error
	for _, err := range errs {
		if err != nil {
			errors = append(errors, err)
		}
	}

	switch len(errors) {
	case 0:
		return nil
	case 1:
		return errors[0]
	default:
		return &Errors{errors}
	}
}
