// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"tallyard/blt"
	"tallyard/cliparse"
	"tallyard/middleware"
	"tallyard/models"
	"tallyard/stv"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetElection handles GET /elections/:slug
// Returns election details and the candidate roster
func (h *ResultsHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var election models.Election
	err := h.db.QueryRow(`
		SELECT id, name, num_candidates, num_seats, share_slug, created_at
		FROM election
		WHERE share_slug = $1
	`, shareSlug).Scan(
		&election.ID, &election.Name, &election.NumCandidates,
		&election.NumSeats, &election.ShareSlug, &election.CreatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	candidates, err := queryCandidates(h.db, election.ID)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var ballotCount int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM ballot WHERE election_id = $1
	`, election.ID).Scan(&ballotCount)
	if err != nil {
		slog.Error("failed to count ballots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionWithCandidates{
		Election:    election,
		Candidates:  candidates,
		BallotCount: ballotCount,
	})
}

// GetBallots handles GET /elections/:slug/ballots
// Returns the stored ballots in upload order
func (h *ResultsHandler) GetBallots(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var electionID string
	err := h.db.QueryRow(`
		SELECT id FROM election WHERE share_slug = $1
	`, shareSlug).Scan(&electionID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT position, weight, rankings
		FROM ballot
		WHERE election_id = $1
		ORDER BY position
	`, electionID)
	if err != nil {
		slog.Error("failed to query ballots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	ballots := []models.BallotRecord{}
	for rows.Next() {
		var b models.BallotRecord
		var rankings []byte
		if err := rows.Scan(&b.Position, &b.Weight, &rankings); err != nil {
			slog.Error("failed to scan ballot", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if err := json.Unmarshal(rankings, &b.Rankings); err != nil {
			slog.Error("failed to parse stored rankings", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Corrupt ballot data")
			return
		}
		ballots = append(ballots, b)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read ballots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotsResponse{
		ElectionID: electionID,
		Ballots:    ballots,
	})
}

// GetResults handles GET /elections/:slug/results
// Computes the STV count on first request and serves the stored snapshot
// afterwards, so every caller sees the same result.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var election models.Election
	err := h.db.QueryRow(`
		SELECT id, name, num_candidates, num_seats, share_slug, created_at
		FROM election
		WHERE share_slug = $1
	`, shareSlug).Scan(
		&election.ID, &election.Name, &election.NumCandidates,
		&election.NumSeats, &election.ShareSlug, &election.CreatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Serve the existing snapshot if one was already computed
	var computedAt time.Time
	var payloadJSON []byte
	err = h.db.QueryRow(`
		SELECT computed_at, payload
		FROM result_snapshot
		WHERE election_id = $1
		ORDER BY computed_at DESC
		LIMIT 1
	`, election.ID).Scan(&computedAt, &payloadJSON)

	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err == sql.ErrNoRows {
		computedAt = time.Now().UTC()
		payloadJSON, err = h.computeSnapshot(election.ID, computedAt)
		if errors.Is(err, stv.ErrNoSeats) {
			middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Election declares no seats")
			return
		}
		if err != nil {
			slog.Error("failed to compute results", "error", err, "election_id", election.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
			return
		}
	}

	var payload models.ResultPayload
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		slog.Error("failed to parse snapshot payload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Election:   election,
		Method:     models.MethodSTV,
		ComputedAt: computedAt,
		Quota:      payload.Quota,
		Elected:    payload.Elected,
		Rounds:     payload.Rounds,
	})
}

// computeSnapshot runs the STV count for an election and persists the result.
// Returns the stored payload JSON.
func (h *ResultsHandler) computeSnapshot(electionID string, computedAt time.Time) ([]byte, error) {
	election, err := loadElection(h.db, electionID)
	if err != nil {
		return nil, err
	}

	result, err := stv.Count(election)
	if err != nil {
		return nil, err
	}

	elected := make([]models.ElectedCandidate, 0, len(result.Elected))
	for _, number := range result.Elected {
		elected = append(elected, models.ElectedCandidate{
			Number: number,
			Name:   election.Candidates[number].Name,
		})
	}

	payload, err := json.Marshal(models.ResultPayload{
		Quota:   result.Quota,
		Elected: elected,
		Rounds:  result.Rounds,
	})
	if err != nil {
		return nil, err
	}

	_, err = h.db.Exec(`
		INSERT INTO result_snapshot (id, election_id, method, computed_at, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), electionID, models.MethodSTV, computedAt, string(payload))
	if err != nil {
		return nil, err
	}

	slog.Info("results computed",
		"election_id", electionID,
		"elected", result.Elected,
		"rounds", len(result.Rounds),
	)

	return payload, nil
}

// loadElection rebuilds a blt.Election from its stored rows so the counter
// sees exactly what the parser produced at upload time.
func loadElection(db *sql.DB, electionID string) (*blt.Election, error) {
	e := &blt.Election{Candidates: map[int]blt.Candidate{}}

	err := db.QueryRow(`
		SELECT name, num_candidates, num_seats
		FROM election
		WHERE id = $1
	`, electionID).Scan(&e.Name, &e.NumCandidates, &e.NumSeats)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT number, name, withdrawn
		FROM candidate
		WHERE election_id = $1
		ORDER BY number
	`, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var number int
		var name string
		var withdrawn bool
		if err := rows.Scan(&number, &name, &withdrawn); err != nil {
			return nil, err
		}
		e.Candidates[number] = blt.Candidate{Number: number, Name: name}
		if withdrawn {
			e.Withdrawn = append(e.Withdrawn, number)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ballotRows, err := db.Query(`
		SELECT weight, rankings
		FROM ballot
		WHERE election_id = $1
		ORDER BY position
	`, electionID)
	if err != nil {
		return nil, err
	}
	defer ballotRows.Close()

	for ballotRows.Next() {
		var b blt.Ballot
		var rankings []byte
		if err := ballotRows.Scan(&b.Weight, &rankings); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rankings, &b.Rankings); err != nil {
			return nil, err
		}
		e.Ballots = append(e.Ballots, b)
	}

	return e, ballotRows.Err()
}
