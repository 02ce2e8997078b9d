// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - UploadElectionRequest: blt (raw file contents), optional name override

# Response Types

Types for JSON responses:

  - UploadElectionResponse: election_id, admin_key, share_slug, share_url
  - ElectionWithCandidates: election, candidates, ballot_count
  - BallotsResponse: election_id, ballots
  - ResultsResponse: election, method, computed_at, quota, elected, rounds
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Election: stored election metadata
  - CandidateInfo: candidate number, name, withdrawn flag
  - BallotRecord: stored ballot with decoded rankings
  - ElectedCandidate: winner number and name
  - ResultPayload: persisted snapshot body

Ballot rankings reuse blt.Ranking and result rounds reuse stv.Round, so the
stored and served shapes always match what the parser and counter produce.

# Constants

Counting method:

	MethodSTV = "stv"
*/
package models
