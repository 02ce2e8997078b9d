// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tallyard/auth"
	"tallyard/blt"
	"tallyard/cliparse"
	"tallyard/db"
)

// GardeningClubBLT is the canonical fixture used across handler tests: four
// candidates, two seats, one withdrawal, and ballots exercising packing,
// skips, and ties.
const GardeningClubBLT = `4 2
-2
1 4 1 3 2 0
6 4 3 0
1 0
1 2 - 3 0
1 2=3 1 0
0
"Diane"
"Bob"
"Chuck"
"Amy"
"Gardening Club Election"
`

// SetupTestDB creates a fresh sqlite database with the full schema.
// The file lives in the test's temp dir and is removed with it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tallyard_test.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3320,
		DatabaseURL:   "file::memory:",
		DatabaseType:  "sqlite",
		AdminKeySalt:  "test-admin-salt",
		ShareSlugSalt: "test-slug-salt",
		BaseURL:       "http://localhost:3320",
	}
}

// CreateTestElection parses input (GardeningClubBLT when empty) and inserts
// it directly, returning the election ID, admin key, and share slug.
func CreateTestElection(t *testing.T, conn *sql.DB, cfg cliparse.Config, input string) (electionID, adminKey, shareSlug string) {
	t.Helper()

	if input == "" {
		input = GardeningClubBLT
	}
	parsed, err := blt.Parse(input)
	if err != nil {
		t.Fatalf("Failed to parse test BLT: %v", err)
	}

	electionID = uuid.NewString()
	adminKey = auth.GenerateAdminKey(electionID, cfg.AdminKeySalt)
	shareSlug = auth.GenerateShareSlug(electionID, cfg.ShareSlugSalt)

	_, err = conn.Exec(`
		INSERT INTO election (id, name, num_candidates, num_seats, share_slug, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, electionID, parsed.Name, parsed.NumCandidates, parsed.NumSeats, shareSlug, input, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	withdrawn := make(map[int]bool)
	for _, n := range parsed.Withdrawn {
		withdrawn[n] = true
	}
	for number := 1; number <= parsed.NumCandidates; number++ {
		c := parsed.Candidates[number]
		_, err = conn.Exec(`
			INSERT INTO candidate (election_id, number, name, withdrawn)
			VALUES ($1, $2, $3, $4)
		`, electionID, c.Number, c.Name, withdrawn[c.Number])
		if err != nil {
			t.Fatalf("Failed to create test candidate: %v", err)
		}
	}

	for i, b := range parsed.Ballots {
		rankings, err := json.Marshal(b.Rankings)
		if err != nil {
			t.Fatalf("Failed to marshal rankings: %v", err)
		}
		_, err = conn.Exec(`
			INSERT INTO ballot (election_id, position, weight, rankings)
			VALUES ($1, $2, $3, $4)
		`, electionID, i+1, b.Weight, string(rankings))
		if err != nil {
			t.Fatalf("Failed to create test ballot: %v", err)
		}
	}

	return electionID, adminKey, shareSlug
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
