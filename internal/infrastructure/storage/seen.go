package storage

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"SpursScanner/internal/domain"
	"SpursScanner/internal/ports"
)

// SeenStore is a durable map from article identifiers to acceptance
// metadata. Identifiers are content hashes of the raw link string, so a
// link once marked stays rejected across process restarts. Entries are
// never pruned.
type SeenStore struct {
	path    string
	records map[string]domain.SeenRecord
}

var _ ports.SeenStore = (*SeenStore)(nil)

// NewSeenStore loads the store from path. A missing or corrupt file is
// treated as an empty store, never an error.
func NewSeenStore(path string) *SeenStore {
	store := &SeenStore{path: path, records: map[string]domain.SeenRecord{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		return store
	}

	var records map[string]domain.SeenRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return store
	}
	if records != nil {
		store.records = records
	}
	return store
}

// ArticleID derives the stable identifier for a link. The raw string is
// hashed without URL normalization, so two spellings of the same address
// count as distinct articles.
func ArticleID(link string) string {
	sum := md5.Sum([]byte(link))
	return hex.EncodeToString(sum[:])
}

// Contains reports whether link was previously accepted.
func (s *SeenStore) Contains(link string) bool {
	_, ok := s.records[ArticleID(link)]
	return ok
}

// Mark records link as accepted.
func (s *SeenStore) Mark(link, title, firstSeen string) {
	s.records[ArticleID(link)] = domain.SeenRecord{Title: title, FirstSeen: firstSeen}
}

// Len returns the number of marked links.
func (s *SeenStore) Len() int {
	return len(s.records)
}

// Persist writes the store back to disk.
func (s *SeenStore) Persist() error {
	raw, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal seen store: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write seen store: %w", err)
	}
	return nil
}
