// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3320)
  - DatabaseURL: Connection string (sqlite file path or postgres URL)
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminKeySalt: Secret for admin key HMAC (required)
  - ShareSlugSalt: Secret for share slug generation (required)
  - BaseURL: Public base URL used to build share links

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type
	--base-url   Public base URL
	--admin-salt Admin key salt
	--slug-salt  Share slug salt

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	BASE_URL        → --base-url
	ADMIN_KEY_SALT  → --admin-salt
	SHARE_SLUG_SALT → --slug-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_TYPE must be sqlite or postgres
  - DATABASE_URL must be provided for postgres (sqlite defaults to tallyard.db)
  - ADMIN_KEY_SALT must be provided
  - SHARE_SLUG_SALT must be provided

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open(driver(cfg.DatabaseType), cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db, cfg)
*/
package cliparse
