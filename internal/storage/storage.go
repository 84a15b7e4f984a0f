package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hexaflip/chessmind/internal/engine"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
)

// Preferences stores the engine settings that survive restarts.
type Preferences struct {
	SearchDepth int            `json:"search_depth"`
	Mode        string         `json:"mode"`
	Randomize   bool           `json:"randomize"`
	Weights     engine.Weights `json:"weights"`
	LastUsed    time.Time      `json:"last_used"`
}

// DefaultPreferences returns the stock engine settings.
func DefaultPreferences() *Preferences {
	return &Preferences{
		SearchDepth: 3,
		Mode:        engine.ModeStandard.String(),
		Randomize:   true,
		Weights:     engine.DefaultWeights(),
	}
}

// SessionStats accumulates search statistics across sessions.
type SessionStats struct {
	Searches    int           `json:"searches"`
	Nodes       uint64        `json:"nodes"`
	BookHits    int           `json:"book_hits"`
	TotalSearch time.Duration `json:"total_search_time"`
}

// AverageNodes returns the mean node count per search.
func (s *SessionStats) AverageNodes() float64 {
	if s.Searches == 0 {
		return 0
	}
	return float64(s.Nodes) / float64(s.Searches)
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in the given directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// OpenDefault opens the database in the platform data directory.
func OpenDefault() (*Storage, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves the engine settings.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastUsed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads the engine settings, returning defaults when none
// are stored yet.
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})
	return prefs, err
}

// SaveStats saves the accumulated statistics.
func (s *Storage) SaveStats(stats *SessionStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads the accumulated statistics, returning empty stats when
// none are stored yet.
func (s *Storage) LoadStats() (*SessionStats, error) {
	stats := &SessionStats{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	return stats, err
}

// RecordSearch folds one completed search into the statistics.
func (s *Storage) RecordSearch(nodes uint64, elapsed time.Duration, bookHit bool) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Searches++
	stats.Nodes += nodes
	stats.TotalSearch += elapsed
	if bookHit {
		stats.BookHits++
	}
	return s.SaveStats(stats)
}
