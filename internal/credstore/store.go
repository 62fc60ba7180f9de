// Package credstore persists the logged-in identity across process restarts,
// the way the browser client kept it in a long-lived cookie.
package credstore

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/seongmin-dev/OnlineJudgeClient/internal/model"
)

// CredentialTTL is the expiry horizon of a saved identity.
const CredentialTTL = 365 * 24 * time.Hour

type storedCredential struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Store reads and writes one identity at a fixed file path. All operations
// are synchronous; a missing, unreadable or expired file reads as logged out.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save persists the identity, overwriting any prior value.
func (s *Store) Save(identity model.Identity) error {
	data, err := json.Marshal(storedCredential{
		Username:  identity.Username,
		Token:     identity.Token,
		ExpiresAt: time.Now().Add(CredentialTTL),
	})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Load returns the persisted identity, or nil when there is none. Corrupt or
// expired data is treated as absent, never surfaced as an error.
func (s *Store) Load() *model.Identity {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var cred storedCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		log.Printf("[CredStore] discarding unreadable credential file: %v", err)
		return nil
	}

	if cred.Token == "" || cred.Username == "" {
		return nil
	}
	if time.Now().After(cred.ExpiresAt) {
		log.Printf("[CredStore] credential for %s expired, treating as logged out", cred.Username)
		return nil
	}

	return &model.Identity{Username: cred.Username, Token: cred.Token}
}

// Clear removes the persisted identity. Clearing an absent credential is not
// an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
