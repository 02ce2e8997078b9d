// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http/httptest"
	"testing"

	"tallyard/models"
	"tallyard/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(conn, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, 200)
	if w.Body.String() != "OK" {
		t.Errorf("expected OK, got %s", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(conn, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, 200)
	if w.Body.String() != "tallyard API v1" {
		t.Errorf("unexpected root response: %s", w.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(conn, testutil.GetTestConfig())

	// PUT is not registered on /elections
	req := httptest.NewRequest("PUT", "/elections", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, 405)
}

func TestSlugRouting(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	_, _, shareSlug := testutil.CreateTestElection(t, conn, cfg, "")

	mux := NewRouter(conn, cfg)

	req := httptest.NewRequest("GET", "/elections/"+shareSlug, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, 200)
}

// TestFullElectionWorkflow walks the whole lifecycle through the router:
// upload a BLT file, view the election and ballots by share slug, fetch
// results, inspect via the admin key, then delete.
func TestFullElectionWorkflow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(conn, cfg)

	// Upload
	req := testutil.MakeRequest("POST", "/elections", models.UploadElectionRequest{
		BLT: testutil.GardeningClubBLT,
	}, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, 201)

	var upload models.UploadElectionResponse
	testutil.AssertJSON(t, w, &upload)

	// Public view via share slug
	req = testutil.MakeRequest("GET", "/elections/"+upload.ShareSlug, nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, 200)

	var view models.ElectionWithCandidates
	testutil.AssertJSON(t, w, &view)
	if view.Election.Name != "Gardening Club Election" {
		t.Errorf("unexpected election name: %s", view.Election.Name)
	}
	if view.BallotCount != 5 {
		t.Errorf("expected 5 ballots, got %d", view.BallotCount)
	}

	// Ballots
	req = testutil.MakeRequest("GET", "/elections/"+upload.ShareSlug+"/ballots", nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, 200)

	// Results
	req = testutil.MakeRequest("GET", "/elections/"+upload.ShareSlug+"/results", nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, 200)

	var results models.ResultsResponse
	testutil.AssertJSON(t, w, &results)
	if len(results.Elected) != 2 {
		t.Fatalf("expected 2 elected, got %d", len(results.Elected))
	}
	if results.Elected[0].Name != "Amy" || results.Elected[1].Name != "Chuck" {
		t.Errorf("expected Amy then Chuck, got %+v", results.Elected)
	}

	// Admin view
	req = testutil.MakeRequest("GET", "/elections/"+upload.ElectionID+"/admin", nil, map[string]string{
		"X-Admin-Key": upload.AdminKey,
	})
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, 200)

	// Delete
	req = testutil.MakeRequest("DELETE", "/elections/"+upload.ElectionID, nil, map[string]string{
		"X-Admin-Key": upload.AdminKey,
	})
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, 200)

	// Share slug is gone afterwards
	req = testutil.MakeRequest("GET", "/elections/"+upload.ShareSlug, nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, 404)
}
