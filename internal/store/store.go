// Package store holds games and fingerprint exclusion sets behind injectable
// interfaces. The default backend is in-memory and lives for the process;
// sqlite and redis backends satisfy the same contracts.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/pavelanni/trivium/internal/model"
)

// ErrNotFound is returned when a game id is unknown.
var ErrNotFound = errors.New("not found")

// GameStore persists completed games keyed by id.
type GameStore interface {
	SaveGame(ctx context.Context, g model.Game) error
	GetGame(ctx context.Context, id string) (model.Game, error)
}

// FingerprintStore tracks which question fingerprints an owner (game or
// user id) has already seen. Sets grow monotonically; Clear is the only way
// to shrink one. Different owner keys must never interfere.
type FingerprintStore interface {
	Add(ctx context.Context, ownerKey, fingerprint string) error
	Has(ctx context.Context, ownerKey, fingerprint string) (bool, error)
	List(ctx context.Context, ownerKey string) ([]string, error)
	Clear(ctx context.Context, ownerKey string) error
}

// FingerprintOf computes the dedup digest for a question: sha256 over the
// prompt and the correct choice text. Two questions with equal digests are
// duplicates regardless of other wording differences.
func FingerprintOf(prompt, correctChoice string) string {
	sum := sha256.Sum256([]byte(prompt + "||" + correctChoice))
	return hex.EncodeToString(sum[:])
}

// FingerprintSet is an in-process exclusion set used during one generation
// run. It is not safe for concurrent use; each run owns its set.
type FingerprintSet map[string]struct{}

// Has reports whether fp is in the set.
func (s FingerprintSet) Has(fp string) bool {
	_, ok := s[fp]
	return ok
}

// Add inserts fp into the set.
func (s FingerprintSet) Add(fp string) {
	s[fp] = struct{}{}
}

// List returns the set contents in unspecified order.
func (s FingerprintSet) List() []string {
	out := make([]string, 0, len(s))
	for fp := range s {
		out = append(out, fp)
	}
	return out
}
