// Package store persists game registrations, attempt history, and the
// local leaderboard in an embedded BadgerDB. Values are JSON-encoded; keys
// are prefix-scoped so each record family can be scanned independently.
package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Key prefixes.
const (
	gamePrefix        = "game/"
	attemptPrefix     = "attempt/"
	leaderboardPrefix = "leaderboard/"
)

// GameRecord is a registered game session: the constraints and statistics
// needed to replay attempts without asking the server again.
type GameRecord struct {
	GameID      string
	PlayerID    string
	ScenarioID  int
	CreatedAt   time.Time
	Constraints []ConstraintRecord
	Frequencies map[string]float64
	Correlation map[string]map[string]float64
}

// ConstraintRecord is one attribute minimum.
type ConstraintRecord struct {
	Attribute string
	MinCount  int
}

// Attempt is one finished play-through of a game.
type Attempt struct {
	ID              string
	GameID          string
	Number          int
	Timestamp       time.Time
	Status          string
	AdmittedCount   int
	RejectedCount   int
	AttributeCounts map[string]int
	ConstraintsMet  bool
}

// LeaderboardEntry summarizes one attempt for the local leaderboard.
type LeaderboardEntry struct {
	GameID        string
	Timestamp     time.Time
	Status        string
	AdmittedCount int
	RejectedCount int
	TotalSeen     int
}

// Store wraps a BadgerDB instance.
type Store struct {
	db *badger.DB
}

// Open opens (creating if needed) a persistent store at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a store that lives only for the process. For tests.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("opening in-memory store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGame stores a game registration, keyed by game ID.
func (s *Store) SaveGame(g *GameRecord) error {
	if g.GameID == "" {
		return fmt.Errorf("game ID required")
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	return s.put(gamePrefix+g.GameID, g)
}

// Game loads a game registration. Returns badger.ErrKeyNotFound if the
// game was never registered locally.
func (s *Store) Game(gameID string) (*GameRecord, error) {
	var g GameRecord
	if err := s.get(gamePrefix+gameID, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// SaveAttempt stores one attempt, assigning its sequence number and ID.
func (s *Store) SaveAttempt(a *Attempt) error {
	if a.GameID == "" {
		return fmt.Errorf("game ID required")
	}
	prev, err := s.Attempts(a.GameID)
	if err != nil {
		return err
	}
	a.Number = len(prev) + 1
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	key := fmt.Sprintf("%s%s/%06d", attemptPrefix, a.GameID, a.Number)
	return s.put(key, a)
}

// Attempts returns all recorded attempts for a game, in attempt order.
func (s *Store) Attempts(gameID string) ([]Attempt, error) {
	var attempts []Attempt
	prefix := []byte(attemptPrefix + gameID + "/")
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var a Attempt
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &a)
			}); err != nil {
				return err
			}
			attempts = append(attempts, a)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing attempts for %s: %w", gameID, err)
	}
	return attempts, nil
}

// SaveLeaderboardEntry appends an entry to the local leaderboard.
func (s *Store) SaveLeaderboardEntry(e *LeaderboardEntry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	key := fmt.Sprintf("%s%s/%s", leaderboardPrefix,
		e.Timestamp.UTC().Format(time.RFC3339Nano), uuid.NewString())
	return s.put(key, e)
}

// Leaderboard returns entries sorted most recent first. limit <= 0 returns
// everything.
func (s *Store) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	prefix := []byte(leaderboardPrefix)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var e LeaderboardEntry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing leaderboard: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *Store) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(key string, v any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	return nil
}
