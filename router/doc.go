// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Tallyard API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Election management (admin, requires X-Admin-Key):

	POST   /elections            - Upload BLT file
	GET    /elections/{id}/admin - Get election details
	DELETE /elections/{id}       - Delete election

Public access (uses share slug):

	GET /elections/{slug}         - Election info and candidates
	GET /elections/{slug}/ballots - Stored ballots
	GET /elections/{slug}/results - STV count results

# Handler Initialization

The router creates handler instances with dependency injection:

	electionHandler := handlers.NewElectionHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
