// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables for the configured dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
Both dialects share one table layout; the sqlite variant substitutes TEXT for
JSONB and CURRENT_TIMESTAMP for NOW().

# Tables

The schema includes:

  - election: Election metadata and the raw uploaded BLT source
  - candidate: Candidates numbered 1..N per election, withdrawn flag
  - ballot: One row per ballot line, rankings stored as JSON
  - result_snapshot: Immutable STV results

# Relationships

	election 1──* candidate
	election 1──* ballot
	election 1──* result_snapshot

All foreign keys use ON DELETE CASCADE, so deleting an election removes its
candidates, ballots, and snapshots in one statement.

# Indexes

	election.share_slug (unique)
	result_snapshot.election_id
*/
package db
