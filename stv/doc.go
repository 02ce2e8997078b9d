// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stv counts parsed BLT elections with weighted single transferable
vote.

	result, err := stv.Count(election)

The count uses the Droop quota:

	floor(totalBallotWeight / (seats + 1)) + 1

Each round either elects every candidate at or above the quota, transferring
their surpluses fractionally to next preferences, or eliminates the candidate
with the lowest tally and transfers those ballots at full value. Counting
stops when all seats are filled or when the remaining candidates fit the
remaining seats.

Ballot interpretation:

  - Withdrawn candidates never receive ballots; preferences for them are
    passed over as if the rank were blank.
  - A skipped rank (empty candidate list) is passed over.
  - A tied rank splits the ballot's current value equally among the tied
    candidates still in the count.
  - A ballot with no remaining preferences is exhausted and leaves the count.

All tie-breaks (election order, elimination choice) fall back to the lowest
candidate number, so a count is deterministic for a given input.
*/
package stv
