// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package blt parses BLT-formatted election ballot files.

# Format

A BLT file is line-oriented:

	4 2                        <- candidate count, seat count
	-2                         <- withdrawn candidates (optional, negative numbers)
	1 4 1 3 2 0                <- ballots: weight, rankings..., 0 terminator
	6 4 3 0
	1 2 - 3 0                  <- "-" is a skipped rank
	1 2=3 1 0                  <- "a=b" is a tie at one rank
	0                          <- end-of-ballots marker
	"Diane"                    <- candidate names, one per line
	"Bob"
	"Chuck"
	"Amy"
	"Gardening Club Election"  <- election title

Anything from "#" to end of line is a comment. Straight double quotes are
decorative and stripped everywhere; curly quotes are not recognized and pass
through untouched.

# Parsing

	election, err := blt.Parse(string(contents))

Parse returns an *Election: candidate and seat counts, withdrawn candidate
numbers (sign-normalized to positive), ballots in input order, candidates
keyed by their 1-based positional number, and the election title.

# Errors

Parse fails with one of three error types:

  - *StructuralError: the zones cannot be located (no "0" marker, short
    header, or too few lines after the marker).
  - *TokenFormatError: a ballot weight or ranking token is malformed, or a
    ballot line is missing its "0" terminator.
  - *CardinalityError: the name-line count disagrees with the declared
    candidate count.

# Limits

The parser locates structure only. It does not check that ranked candidate
numbers exist, that weights are positive, or that withdrawn numbers refer to
real candidates; counting code is expected to handle those.
*/
package blt
