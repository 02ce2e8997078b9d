// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Tallyard API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - ElectionHandler: Upload, admin access, deletion
  - ResultsHandler: Election info, ballots, STV results

Handlers are created via constructor functions that accept *sql.DB and Config:

	electionHandler := handlers.NewElectionHandler(db, cfg)

# Election Lifecycle

An election is immutable once uploaded; there are no partial states:

	POST   /elections            → Upload (parses BLT, returns admin_key and share_slug)
	GET    /elections/{id}/admin → GetAdmin
	DELETE /elections/{id}       → Delete (cascades)

Admin operations require the X-Admin-Key header.

# Public Access

Readers interact via the share slug:

	GET /elections/{slug}         → GetElection (summary + candidates)
	GET /elections/{slug}/ballots → GetBallots
	GET /elections/{slug}/results → GetResults

# Results

The first results request runs the STV count (package stv) over the stored
ballots and persists a snapshot; later requests serve the snapshot unchanged,
so the count happens exactly once per election.
*/
package handlers
