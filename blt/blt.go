// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blt

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// endOfBallots is the line that separates the ballot block from the
	// candidate-name block.
	endOfBallots = "0"

	// skipToken marks a rank the voter left blank.
	skipToken = "-"
)

var (
	// withdrawnPattern matches a line of one or more space-separated
	// negative integers and nothing else. The format has no explicit
	// withdrawal marker, so the second line is classified by shape alone;
	// ballot lines can never collide with it because weights are positive.
	withdrawnPattern = regexp.MustCompile(`^-\d+(\s+-\d+)*$`)

	// tiePattern matches an overvote token. The format documents exactly
	// two numbers joined by one "=".
	tiePattern = regexp.MustCompile(`^(\d+)=(\d+)$`)
)

// Parse decodes the contents of a BLT ballot file into an Election.
//
// The input is partitioned into five zones: the header (candidate and seat
// counts), an optional withdrawn-candidates line, the ballot block, the
// candidate-name block, and the election title. Parse is pure: it performs no
// I/O, holds no state between calls, and is safe to call concurrently.
//
// Failures are reported as *StructuralError, *TokenFormatError, or
// *CardinalityError, all matchable with errors.As.
func Parse(input string) (*Election, error) {
	lines := normalize(input)
	if len(lines) == 0 {
		return nil, &StructuralError{Reason: "input contains no lines"}
	}

	numCandidates, numSeats, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}
	rest := lines[1:]

	withdrawn, rest, err := extractWithdrawn(rest)
	if err != nil {
		return nil, err
	}

	marker := -1
	for i, line := range rest {
		if line == endOfBallots {
			marker = i
			break
		}
	}
	if marker < 0 {
		return nil, &StructuralError{Reason: "end-of-ballots marker not found"}
	}

	ballots := make([]Ballot, 0, marker)
	for _, line := range rest[:marker] {
		ballot, err := parseBallot(line)
		if err != nil {
			return nil, err
		}
		ballots = append(ballots, ballot)
	}

	tail := rest[marker+1:]
	if len(tail) < 2 {
		return nil, &StructuralError{Reason: "missing candidate names or election title after end-of-ballots marker"}
	}
	nameLines := tail[:len(tail)-1]
	title := tail[len(tail)-1]

	if len(nameLines) != numCandidates {
		return nil, &CardinalityError{Declared: numCandidates, Found: len(nameLines)}
	}

	candidates := make(map[int]Candidate, len(nameLines))
	for i, name := range nameLines {
		candidates[i+1] = Candidate{Number: i + 1, Name: name}
	}

	return &Election{
		NumCandidates: numCandidates,
		NumSeats:      numSeats,
		Withdrawn:     withdrawn,
		Ballots:       ballots,
		Candidates:    candidates,
		Name:          title,
	}, nil
}

// normalize splits the input into lines and applies per-line cleanup:
// everything from the first '#' is dropped (a '#' inside a quoted name is not
// protected), every straight double quote is removed, and the result is
// trimmed. Empty lines are discarded; order is preserved. Curly quotes are
// deliberately not recognized and survive into names and titles.
func normalize(input string) []string {
	raw := strings.Split(input, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.ReplaceAll(line, `"`, "")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parseHeader reads the candidate and seat counts from the first line.
func parseHeader(line string) (numCandidates, numSeats int, err error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, &StructuralError{Reason: "header needs candidate and seat counts", Line: line}
	}
	numCandidates, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, &StructuralError{Reason: "candidate count is not an integer", Line: line}
	}
	numSeats, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, &StructuralError{Reason: "seat count is not an integer", Line: line}
	}
	return numCandidates, numSeats, nil
}

// extractWithdrawn consumes the withdrawn-candidates line if the next line
// has its shape, returning the sign-normalized candidate numbers and the
// remaining lines.
func extractWithdrawn(lines []string) ([]int, []string, error) {
	if len(lines) == 0 || !withdrawnPattern.MatchString(lines[0]) {
		return nil, lines, nil
	}
	fields := strings.Fields(lines[0])
	withdrawn := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			// Unreachable given the pattern, but kept as a guard.
			return nil, nil, &TokenFormatError{Reason: "withdrawn candidate is not an integer", Line: lines[0], Token: f}
		}
		withdrawn = append(withdrawn, -n)
	}
	return withdrawn, lines[1:], nil
}

// parseBallot decodes one ballot line: an integer weight, ranking tokens in
// preference order, and a "0" terminator.
func parseBallot(line string) (Ballot, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return Ballot{}, &TokenFormatError{Reason: "ballot line needs a weight and a terminator", Line: line}
	}

	weight, err := strconv.Atoi(tokens[0])
	if err != nil {
		return Ballot{}, &TokenFormatError{Reason: "ballot weight is not an integer", Line: line, Token: tokens[0]}
	}

	if last := tokens[len(tokens)-1]; last != endOfBallots {
		return Ballot{}, &TokenFormatError{Reason: "ballot line does not end with the 0 terminator", Line: line, Token: last}
	}

	ranking := tokens[1 : len(tokens)-1]
	rankings := make([]Ranking, 0, len(ranking))
	for i, token := range ranking {
		r := Ranking{Rank: i + 1}
		switch {
		case tiePattern.MatchString(token):
			m := tiePattern.FindStringSubmatch(token)
			first, _ := strconv.Atoi(m[1])
			second, _ := strconv.Atoi(m[2])
			r.Candidates = []int{first, second}
		case token == skipToken:
			r.Candidates = []int{}
		default:
			n, err := strconv.Atoi(token)
			if err != nil {
				return Ballot{}, &TokenFormatError{Reason: "unrecognized ranking token", Line: line, Token: token}
			}
			r.Candidates = []int{n}
		}
		rankings = append(rankings, r)
	}

	return Ballot{Weight: weight, Rankings: rankings}, nil
}
