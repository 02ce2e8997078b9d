// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"tallyard/auth"
	"tallyard/blt"
	"tallyard/cliparse"
	"tallyard/middleware"
	"tallyard/models"
)

type ElectionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{db: db, cfg: cfg}
}

// Upload handles POST /elections
// Parses the submitted BLT file and stores the election atomically.
func (h *ElectionHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req models.UploadElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.BLT == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "blt is required")
		return
	}

	parsed, err := blt.Parse(req.BLT)
	if err != nil {
		// Malformed input is a caller-correctable condition, not a server fault.
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	name := parsed.Name
	if req.Name != "" {
		name = req.Name
	}

	electionID := uuid.NewString()
	adminKey := auth.GenerateAdminKey(electionID, h.cfg.AdminKeySalt)
	shareSlug := auth.GenerateShareSlug(electionID, h.cfg.ShareSlugSalt)
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO election (id, name, num_candidates, num_seats, share_slug, source, uploader_ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, electionID, name, parsed.NumCandidates, parsed.NumSeats, shareSlug, req.BLT, ipHash, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store election")
		return
	}

	withdrawn := make(map[int]bool, len(parsed.Withdrawn))
	for _, n := range parsed.Withdrawn {
		withdrawn[n] = true
	}

	for number := 1; number <= parsed.NumCandidates; number++ {
		c := parsed.Candidates[number]
		_, err = tx.Exec(`
			INSERT INTO candidate (election_id, number, name, withdrawn)
			VALUES ($1, $2, $3, $4)
		`, electionID, c.Number, c.Name, withdrawn[c.Number])
		if err != nil {
			slog.Error("failed to insert candidate", "error", err, "number", c.Number)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store election")
			return
		}
	}

	for i, b := range parsed.Ballots {
		rankings, err := json.Marshal(b.Rankings)
		if err != nil {
			slog.Error("failed to marshal rankings", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store election")
			return
		}
		_, err = tx.Exec(`
			INSERT INTO ballot (election_id, position, weight, rankings)
			VALUES ($1, $2, $3, $4)
		`, electionID, i+1, b.Weight, string(rankings))
		if err != nil {
			slog.Error("failed to insert ballot", "error", err, "position", i+1)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store election")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store election")
		return
	}

	slog.Info("election uploaded",
		"election_id", electionID,
		"candidates", parsed.NumCandidates,
		"seats", parsed.NumSeats,
		"ballots", len(parsed.Ballots),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.UploadElectionResponse{
		ElectionID: electionID,
		AdminKey:   adminKey,
		ShareSlug:  shareSlug,
		ShareURL:   h.cfg.BaseURL + "/elections/" + shareSlug,
	})
}

// GetAdmin handles GET /elections/:id/admin
// Returns election details for admin access using election ID and admin key
func (h *ElectionHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(electionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var election models.Election
	err := h.db.QueryRow(`
		SELECT id, name, num_candidates, num_seats, share_slug, created_at
		FROM election
		WHERE id = $1
	`, electionID).Scan(
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

	candidates, err := queryCandidates(h.db, electionID)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var ballotCount int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM ballot WHERE election_id = $1
	`, electionID).Scan(&ballotCount)
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

// Delete handles DELETE /elections/:id
// Cascades to candidates, ballots, and snapshots.
func (h *ElectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(electionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	res, err := h.db.Exec(`DELETE FROM election WHERE id = $1`, electionID)
	if err != nil {
		slog.Error("failed to delete election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	slog.Info("election deleted", "election_id", electionID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Election deleted",
	})
}

// queryCandidates retrieves the candidate roster in number order
func queryCandidates(db *sql.DB, electionID string) ([]models.CandidateInfo, error) {
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

	candidates := []models.CandidateInfo{}
	for rows.Next() {
		var c models.CandidateInfo
		if err := rows.Scan(&c.Number, &c.Name, &c.Withdrawn); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}
