// Package tags validates and rewrites the block markup embedded in product notes.
//
// A notes string is free prose with zero or more blocks of the form
//
//	<Finish, Fabric, Wood> ... {Finish, Fabric} ... </>
//
// The opening tag lists candidate keywords that gate the block, the closing
// marker is always the literal "</>", and any {...} list inside a block is an
// inline keyword group. Blocks never nest.
//
// Validate scans the markup and reports every syntax error it can find in one
// pass. Rewrite turns validated notes into plain instructions for a given set
// of field names: irrelevant blocks are deleted and keyword groups become an
// English disjunction of the matching fields. Both are pure functions and are
// safe for concurrent use.
package tags

import (
	"errors"
	"fmt"
)

// ErrInvalidMarkup is wrapped by Result.Err when a scan recorded errors.
var ErrInvalidMarkup = errors.New("invalid tag markup")

// ErrorKind classifies a ParseError.
type ErrorKind string

const (
	UnclosedOpeningTag    ErrorKind = "unclosed_opening_tag"
	UnexpectedClosingTag  ErrorKind = "unexpected_closing_tag"
	NestedOpeningTag      ErrorKind = "nested_opening_tag"
	UnclosedCurlyList     ErrorKind = "unclosed_curly_list"
	CurlyListOutsideBlock ErrorKind = "curly_list_outside_block"
	StrayClosingBrace     ErrorKind = "stray_closing_brace"
	EmptyListItem         ErrorKind = "empty_list_item"
	MissingClosingTag     ErrorKind = "missing_closing_tag"
)

// ParseError is a single syntax fault found while scanning.
// Offset is the character (code point) offset in the notes string where the
// fault was detected.
type ParseError struct {
	Kind    ErrorKind `json:"kind" yaml:"kind"`
	Message string    `json:"message" yaml:"message"`
	Offset  int       `json:"offset" yaml:"offset"`
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s (at index %d)", e.Message, e.Offset)
}

// Block is one opening-tag-to-closing-marker span.
type Block struct {
	// Keywords are the opening tag's items in source order. Empty for "<>".
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Groups holds one entry per inline {...} list inside the block.
	Groups [][]string `json:"groups,omitempty" yaml:"groups,omitempty"`

	// Start is the character offset of the opening '<'.
	Start int `json:"start" yaml:"start"`

	// End is the character offset just past the closing "</>".
	End int `json:"end" yaml:"end"`
}

// Result is the outcome of Validate.
type Result struct {
	Valid bool `json:"valid" yaml:"valid"`

	// Blocks is nil unless Valid.
	Blocks []Block `json:"blocks" yaml:"blocks"`

	// Errors is empty (never nil) when Valid.
	Errors []ParseError `json:"errors" yaml:"errors"`
}

// Err returns nil for a valid result. Otherwise it returns ErrInvalidMarkup
// joined with every recorded ParseError, so callers can report all of them.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	errs := make([]error, 0, len(r.Errors)+1)
	errs = append(errs, ErrInvalidMarkup)
	for _, pe := range r.Errors {
		errs = append(errs, pe)
	}
	return errors.Join(errs...)
}
