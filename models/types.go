// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"tallyard/blt"
	"tallyard/stv"
)

// Counting method constants
const (
	MethodSTV = "stv"
)

// Request types

type UploadElectionRequest struct {
	Name string `json:"name,omitempty"` // overrides the title from the BLT file
	BLT  string `json:"blt"`
}

// Response types

type UploadElectionResponse struct {
	ElectionID string `json:"election_id"`
	AdminKey   string `json:"admin_key"`
	ShareSlug  string `json:"share_slug"`
	ShareURL   string `json:"share_url"`
}

type BallotsResponse struct {
	ElectionID string         `json:"election_id"`
	Ballots    []BallotRecord `json:"ballots"`
}

type ResultsResponse struct {
	Election   Election           `json:"election"`
	Method     string             `json:"method"`
	ComputedAt time.Time          `json:"computed_at"`
	Quota      float64            `json:"quota"`
	Elected    []ElectedCandidate `json:"elected"`
	Rounds     []stv.Round        `json:"rounds"`
}

// Domain types

type Election struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	NumCandidates int       `json:"num_candidates"`
	NumSeats      int       `json:"num_seats"`
	ShareSlug     *string   `json:"share_slug,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type CandidateInfo struct {
	Number    int    `json:"number"`
	Name      string `json:"name"`
	Withdrawn bool   `json:"withdrawn"`
}

type ElectionWithCandidates struct {
	Election    Election        `json:"election"`
	Candidates  []CandidateInfo `json:"candidates"`
	BallotCount int             `json:"ballot_count"`
}

// BallotRecord is a stored ballot: its 1-based position in the uploaded file,
// its packed weight, and its decoded rankings.
type BallotRecord struct {
	Position int           `json:"position"`
	Weight   int           `json:"weight"`
	Rankings []blt.Ranking `json:"rankings"`
}

type ElectedCandidate struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// ResultPayload is the snapshot body persisted in result_snapshot.payload.
type ResultPayload struct {
	Quota   float64            `json:"quota"`
	Elected []ElectedCandidate `json:"elected"`
	Rounds  []stv.Round        `json:"rounds"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
