// SPDX-License-Identifier: GPL-2.0-or-later

package vmf

import (
	"fmt"
	"strings"
)

// MissingFieldError is returned when a block lacks a key or child block the
// typed model needs.
type MissingFieldError struct {
	Block string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing %q", e.Block, e.Field)
}

// FieldParseError is returned when a value is present but can not be
// converted.
type FieldParseError struct {
	Block string
	Field string
	Value string
	Err   error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("%s: bad %q value %q: %v", e.Block, e.Field, e.Value, e.Err)
}

func (e *FieldParseError) Unwrap() error {
	return e.Err
}

// Problem describes a solid or entity block that could not be loaded. The
// rest of the document is still usable, the raw block is kept for saving.
type Problem struct {
	Block string // "solid" or "entity"
	Owner string // "world", "entity 12" or "document"
	Index int    // position among the owner's blocks of that name
	ID    int    // 0 if the id itself is unreadable
	Err   error
}

func (p *Problem) Error() string {
	if p.ID != 0 {
		return fmt.Sprintf("%s %s %d (id %d): %v", p.Owner, p.Block, p.Index, p.ID, p.Err)
	}
	return fmt.Sprintf("%s %s %d: %v", p.Owner, p.Block, p.Index, p.Err)
}

func (p *Problem) Unwrap() error {
	return p.Err
}

// LoadError collects all problems of a document.
type LoadError struct {
	Problems []*Problem
}

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d blocks failed to load", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n\t")
		b.WriteString(p.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() []error {
	errs := make([]error, len(e.Problems))
	for i, p := range e.Problems {
		errs[i] = p
	}
	return errs
}
