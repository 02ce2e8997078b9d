// Copyright (c) 2026 The Tallyard Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateAdminKey_Deterministic(t *testing.T) {
	key1 := GenerateAdminKey("election-123", "salt")
	key2 := GenerateAdminKey("election-123", "salt")

	if key1 != key2 {
		t.Errorf("same inputs should produce same key: %s != %s", key1, key2)
	}

	if key1 == GenerateAdminKey("election-456", "salt") {
		t.Error("different election IDs should produce different keys")
	}
	if key1 == GenerateAdminKey("election-123", "other-salt") {
		t.Error("different salts should produce different keys")
	}
}

func TestGenerateAdminKey_URLSafe(t *testing.T) {
	key := GenerateAdminKey("election-123", "salt")

	if strings.ContainsAny(key, "+/=") {
		t.Errorf("key should be URL-safe without padding: %s", key)
	}
	if key == "" {
		t.Error("key should not be empty")
	}
}

func TestValidateAdminKey(t *testing.T) {
	electionID := "election-123"
	salt := "test-salt"
	key := GenerateAdminKey(electionID, salt)

	tests := []struct {
		name       string
		electionID string
		adminKey   string
		salt       string
		wantErr    bool
	}{
		{name: "valid key", electionID: electionID, adminKey: key, salt: salt, wantErr: false},
		{name: "wrong key", electionID: electionID, adminKey: "bogus", salt: salt, wantErr: true},
		{name: "wrong election", electionID: "other", adminKey: key, salt: salt, wantErr: true},
		{name: "wrong salt", electionID: electionID, adminKey: key, salt: "other", wantErr: true},
		{name: "empty key", electionID: electionID, adminKey: "", salt: salt, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.electionID, tt.adminKey, tt.salt)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected success, got %v", err)
			}
		})
	}
}

func TestGenerateShareSlug(t *testing.T) {
	slug := GenerateShareSlug("election-123", "salt")

	if slug != GenerateShareSlug("election-123", "salt") {
		t.Error("slug should be deterministic")
	}

	// Base62 only: no special characters anywhere
	for _, c := range slug {
		isDigit := c >= '0' && c <= '9'
		isLower := c >= 'a' && c <= 'z'
		isUpper := c >= 'A' && c <= 'Z'
		if !isDigit && !isLower && !isUpper {
			t.Errorf("slug contains non-base62 character %q: %s", c, slug)
		}
	}

	if slug == GenerateShareSlug("election-456", "salt") {
		t.Error("different elections should get different slugs")
	}
}

func TestHashIP(t *testing.T) {
	hash := HashIP("192.168.1.1", "salt")

	if len(hash) != 16 {
		t.Errorf("expected 16 hex chars, got %d: %s", len(hash), hash)
	}
	if hash != HashIP("192.168.1.1", "salt") {
		t.Error("hash should be deterministic")
	}
	if hash == HashIP("192.168.1.2", "salt") {
		t.Error("different IPs should produce different hashes")
	}
	if strings.Contains(hash, "192") {
		t.Error("hash should not leak the IP")
	}
}
