// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Tallyard API server.

Tallyard stores ranked-ballot elections uploaded as BLT files and counts them
with weighted Single Transferable Vote.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	ADMIN_KEY_SALT=... SHARE_SLUG_SALT=... go run main.go

Or with flags:

	go run main.go -p 3320 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - SHARE_SLUG_SALT (--slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3320)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): Connection string (default: tallyard.db for sqlite)
  - BASE_URL (--base-url): Public base URL for share links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - blt: BLT ballot file parser (the core of the system)
  - stv: Single Transferable Vote counter
  - handlers: HTTP request handlers (elections, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Admin key and share slug generation
  - db: Schema creation (postgres and sqlite dialects)
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
