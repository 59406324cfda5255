// SPDX-License-Identifier: GPL-2.0-or-later

package kv

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
	ErrTrailingInput   = errors.New("trailing input after document")
	ErrTooDeep         = errors.New("blocks nested too deep")
)

// SyntaxError reports where in the input parsing failed.
// Err is one of the Err* values of this package.
type SyntaxError struct {
	Line   int // 1 based
	Col    int // 1 based, in bytes
	Offset int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d col %d: %v", e.Line, e.Col, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
