// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"tallyard/blt"
)

func mustParse(t *testing.T, input string) *blt.Election {
	t.Helper()
	e, err := blt.Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return e
}

func TestCount_MajorityWinnerFirstRound(t *testing.T) {
	e := mustParse(t, `3 1
6 1 0
3 2 0
1 3 2 0
0
A
B
C
Majority
`)
	r, err := Count(e)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}

	if r.Quota != 6 {
		t.Errorf("expected quota 6, got %v", r.Quota)
	}
	if !reflect.DeepEqual(r.Elected, []int{1}) {
		t.Errorf("expected elected [1], got %v", r.Elected)
	}
	if len(r.Rounds) != 1 {
		t.Fatalf("expected a single round, got %d", len(r.Rounds))
	}
	if r.Rounds[0].Tallies[1] != 6 {
		t.Errorf("expected candidate 1 tally 6, got %v", r.Rounds[0].Tallies[1])
	}
}

func TestCount_SurplusTransfer(t *testing.T) {
	e := mustParse(t, `3 2
8 1 2 0
3 3 0
1 2 0
0
A
B
C
Surplus
`)
	r, err := Count(e)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}

	// Quota is floor(12/3)+1 = 5. Candidate 1 is elected with 8 votes; the
	// surplus of 3 flows to candidate 2 at 3/8 value per ballot.
	if r.Quota != 5 {
		t.Errorf("expected quota 5, got %v", r.Quota)
	}
	if !reflect.DeepEqual(r.Elected, []int{1, 2}) {
		t.Errorf("expected elected [1 2], got %v", r.Elected)
	}
	if len(r.Rounds) < 2 {
		t.Fatalf("expected at least 2 rounds, got %d", len(r.Rounds))
	}
	if got := r.Rounds[1].Tallies[2]; math.Abs(got-4) > 1e-9 {
		t.Errorf("expected candidate 2 to hold 4 votes after transfer, got %v", got)
	}
}

func TestCount_EliminationTransfersFullValue(t *testing.T) {
	e := mustParse(t, `3 1
5 1 0
3 2 0
2 3 2 0
0
A
B
C
Elimination
`)
	r, err := Count(e)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}

	if r.Rounds[0].Eliminated != 3 {
		t.Errorf("expected candidate 3 eliminated first, got %d", r.Rounds[0].Eliminated)
	}
	if got := r.Rounds[1].Tallies[2]; got != 5 {
		t.Errorf("expected candidate 2 to hold 5 votes after elimination, got %v", got)
	}
}

func TestCount_GardeningClub(t *testing.T) {
	e := mustParse(t, `4 2
-2
1 4 1 3 2 0
6 4 3 0
1 0
1 2 - 3 0
1 2=3 1 0
0
Diane
Bob
Chuck
Amy
Gardening Club Election
`)
	r, err := Count(e)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}

	// Bob (2) is withdrawn: preferences for him are skipped, so the tie
	// ballot 2=3 counts wholly for Chuck (3). Amy (4) wins on first
	// preferences, her surplus electing Chuck.
	if r.Quota != 4 {
		t.Errorf("expected quota 4, got %v", r.Quota)
	}
	if !reflect.DeepEqual(r.Elected, []int{4, 3}) {
		t.Errorf("expected elected [4 3], got %v", r.Elected)
	}
	if _, ok := r.Rounds[0].Tallies[2]; ok {
		t.Error("withdrawn candidate should not be tallied")
	}
}

func TestCount_TieSplitsValue(t *testing.T) {
	e := mustParse(t, `2 1
2 1=2 0
1 1 0
0
A
B
Tied
`)
	r, err := Count(e)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}

	if got := r.Rounds[0].Tallies[1]; got != 2 {
		t.Errorf("expected candidate 1 tally 2 (1 full + 1 split), got %v", got)
	}
	if got := r.Rounds[0].Tallies[2]; got != 1 {
		t.Errorf("expected candidate 2 tally 1 (split half of weight 2), got %v", got)
	}
	if !reflect.DeepEqual(r.Elected, []int{1}) {
		t.Errorf("expected elected [1], got %v", r.Elected)
	}
}

func TestCount_NoSeats(t *testing.T) {
	e := mustParse(t, `1 0
1 1 0
0
Solo
No Seats
`)
	_, err := Count(e)
	if !errors.Is(err, ErrNoSeats) {
		t.Fatalf("expected ErrNoSeats, got %v", err)
	}
}
