// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"errors"
	"math"
	"sort"

	"tallyard/blt"
)

var ErrNoSeats = errors.New("election declares no seats")

// Result is the outcome of a count: the quota, the elected candidate numbers
// in order of election, and a per-round trace.
type Result struct {
	Quota   float64 `json:"quota"`
	Elected []int   `json:"elected"`
	Rounds  []Round `json:"rounds"`
}

// Round records one counting round. Eliminated is 0 when the round ended in
// an election instead.
type Round struct {
	Number     int             `json:"number"`
	Tallies    map[int]float64 `json:"tallies"`
	Elected    []int           `json:"elected,omitempty"`
	Eliminated int             `json:"eliminated,omitempty"`
}

// share is a ballot (or a fragment of one, after a tie split or surplus
// transfer) sitting at some position in its preference list.
type share struct {
	value float64
	prefs []blt.Ranking
	next  int // index into prefs of the first unconsidered rank
}

// Count runs a weighted single transferable vote count over a parsed
// election. Withdrawn candidates are excluded before the first round. Skipped
// ranks are passed over; a tied rank splits the share's value equally among
// the tied candidates that are still continuing. Surpluses transfer
// fractionally (Gregory method); when no candidate reaches the quota, the
// lowest tally is eliminated, ties broken by lowest candidate number.
func Count(e *blt.Election) (*Result, error) {
	seats := e.NumSeats
	if seats <= 0 {
		return nil, ErrNoSeats
	}

	withdrawn := make(map[int]bool, len(e.Withdrawn))
	for _, n := range e.Withdrawn {
		withdrawn[n] = true
	}

	continuing := make(map[int]bool, e.NumCandidates)
	for n := 1; n <= e.NumCandidates; n++ {
		if !withdrawn[n] {
			continuing[n] = true
		}
	}

	shares := make([]*share, 0, len(e.Ballots))
	total := 0.0
	for _, b := range e.Ballots {
		shares = append(shares, &share{value: float64(b.Weight), prefs: b.Rankings})
		total += float64(b.Weight)
	}

	quota := math.Floor(total/float64(seats+1)) + 1
	result := &Result{Quota: quota}

	piles := make(map[int][]*share, len(continuing))
	for _, s := range shares {
		place(piles, continuing, s)
	}

	for round := 1; len(result.Elected) < seats && len(continuing) > 0; round++ {
		tallies := make(map[int]float64, len(continuing))
		for n := range continuing {
			tallies[n] = pileValue(piles[n])
		}
		rec := Round{Number: round, Tallies: tallies}

		// Everything left fits: elect the remainder by tally order.
		if len(continuing)+len(result.Elected) <= seats {
			for _, n := range byTally(tallies) {
				rec.Elected = append(rec.Elected, n)
				result.Elected = append(result.Elected, n)
				delete(continuing, n)
			}
			result.Rounds = append(result.Rounds, rec)
			break
		}

		reached := []int{}
		for _, n := range byTally(tallies) {
			if tallies[n] >= quota {
				reached = append(reached, n)
			}
		}

		if len(reached) > 0 {
			// Mark every winner first so no surplus lands on a pile that
			// is itself about to transfer.
			winners := []int{}
			for _, n := range reached {
				if len(result.Elected) == seats {
					break
				}
				rec.Elected = append(rec.Elected, n)
				result.Elected = append(result.Elected, n)
				delete(continuing, n)
				winners = append(winners, n)
			}
			for _, n := range winners {
				transferSurplus(piles, continuing, n, tallies[n], quota)
			}
			result.Rounds = append(result.Rounds, rec)
			continue
		}

		// Nobody reached the quota: eliminate the lowest tally.
		lowest := lowestTally(tallies)
		rec.Eliminated = lowest
		result.Rounds = append(result.Rounds, rec)
		delete(continuing, lowest)
		for _, s := range piles[lowest] {
			place(piles, continuing, s)
		}
		delete(piles, lowest)
	}

	return result, nil
}

// place advances a share to its first rank holding a continuing candidate and
// adds it to that candidate's pile. Skipped ranks and ranks whose candidates
// have all left the count are passed over; a tie among continuing candidates
// splits the share. Shares with no preference left are exhausted and dropped.
func place(piles map[int][]*share, continuing map[int]bool, s *share) {
	for s.next < len(s.prefs) {
		rank := s.prefs[s.next]
		s.next++

		live := rank.Candidates[:0:0]
		for _, n := range rank.Candidates {
			if continuing[n] {
				live = append(live, n)
			}
		}
		if len(live) == 0 {
			continue
		}
		if len(live) == 1 {
			piles[live[0]] = append(piles[live[0]], s)
			return
		}
		split := s.value / float64(len(live))
		for _, n := range live {
			piles[n] = append(piles[n], &share{value: split, prefs: s.prefs, next: s.next})
		}
		return
	}
	// Exhausted.
}

// transferSurplus scales an elected candidate's pile down to its surplus
// fraction and re-places every share with the winner removed from contention.
func transferSurplus(piles map[int][]*share, continuing map[int]bool, winner int, tally, quota float64) {
	surplus := tally - quota
	if surplus <= 0 || tally == 0 {
		delete(piles, winner)
		return
	}
	fraction := surplus / tally
	for _, s := range piles[winner] {
		s.value *= fraction
		place(piles, continuing, s)
	}
	delete(piles, winner)
}

func pileValue(pile []*share) float64 {
	v := 0.0
	for _, s := range pile {
		v += s.value
	}
	return v
}

// byTally orders candidate numbers by descending tally, lowest number first
// on equal tallies, so every round is deterministic.
func byTally(tallies map[int]float64) []int {
	order := make([]int, 0, len(tallies))
	for n := range tallies {
		order = append(order, n)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if tallies[a] != tallies[b] {
			return tallies[a] > tallies[b]
		}
		return a < b
	})
	return order
}

func lowestTally(tallies map[int]float64) int {
	lowest := 0
	value := math.Inf(1)
	for n, v := range tallies {
		if v < value || (v == value && n < lowest) {
			lowest = n
			value = v
		}
	}
	return lowest
}
