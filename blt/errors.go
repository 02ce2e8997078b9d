// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blt

import "fmt"

// StructuralError reports input that cannot be partitioned into the five BLT
// zones: a missing end-of-ballots marker, a header with fewer than two numeric
// tokens, or too few lines after the marker to hold the name block and title.
type StructuralError struct {
	Reason string
	Line   string
}

func (e *StructuralError) Error() string {
	if e.Line == "" {
		return "blt: " + e.Reason
	}
	return fmt.Sprintf("blt: %s (line %q)", e.Reason, e.Line)
}

// TokenFormatError reports a ballot line token that is not a weight, a
// terminator, or a recognized ranking form.
type TokenFormatError struct {
	Reason string
	Line   string
	Token  string
}

func (e *TokenFormatError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("blt: %s (line %q)", e.Reason, e.Line)
	}
	return fmt.Sprintf("blt: %s: token %q (line %q)", e.Reason, e.Token, e.Line)
}

// CardinalityError reports a candidate-name block whose size does not match
// the declared candidate count.
type CardinalityError struct {
	Declared int
	Found    int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("blt: header declares %d candidates but %d name lines found", e.Declared, e.Found)
}
