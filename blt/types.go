// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blt

// Election is the parsed form of a BLT file. It is built once by Parse and
// never modified afterwards.
type Election struct {
	NumCandidates int               `json:"num_candidates"`
	NumSeats      int               `json:"num_seats"`
	Withdrawn     []int             `json:"withdrawn,omitempty"`
	Ballots       []Ballot          `json:"ballots"`
	Candidates    map[int]Candidate `json:"candidates"`
	Name          string            `json:"name"`
}

// Ballot is one ballot line. Weight is the number of identical physical
// ballots the line encodes (packed format).
type Ballot struct {
	Weight   int       `json:"weight"`
	Rankings []Ranking `json:"rankings"`
}

// Ranking is one preference slot on a ballot. Candidates normally holds one
// candidate number; it is empty for a skipped rank (undervote) and holds two
// for a tie (overvote), in the order written on the ballot.
type Ranking struct {
	Rank       int   `json:"rank"`
	Candidates []int `json:"candidates"`
}

// Candidate pairs a candidate's 1-based number with their name. Numbering is
// purely positional: the first name line is candidate 1, the second is 2, and
// so on. Ballot rankings refer to candidates by this numbering.
type Candidate struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}
