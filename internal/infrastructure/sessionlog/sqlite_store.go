package sessionlog

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/shrc/internal/domain"
	"github.com/doeshing/shrc/internal/pkg/filesystem"
	"github.com/doeshing/shrc/internal/ports"
)

// SQLiteStore persists activation records in a SQLite database. When the
// database cannot be opened it transparently degrades to the JSONL store at
// the same directory.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) sessions.db under the data directory.
func NewSQLiteStore() *SQLiteStore {
	return NewSQLiteStoreAt(filepath.Join(filesystem.DataDir(), "sessions.db"))
}

// NewSQLiteStoreAt creates (or opens) a database at an explicit path.
func NewSQLiteStoreAt(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		shell TEXT,
		term TEXT,
		prompt INTEGER,
		autosuggestions INTEGER,
		enhanced_lister INTEGER,
		window_title INTEGER,
		prompt_engine TEXT,
		resolve_time_ms INTEGER
	);`)
	return err
}

func (s *SQLiteStore) fallback() *FileStore {
	return &FileStore{path: s.path + ".jsonl"}
}

// Save inserts a new activation record.
func (s *SQLiteStore) Save(record domain.SessionRecord) error {
	if s.db == nil {
		return s.fallback().Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO sessions
		(id, timestamp, shell, term, prompt, autosuggestions, enhanced_lister, window_title, prompt_engine, resolve_time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Format(time.RFC3339),
		record.Shell,
		record.Term,
		boolToInt(record.Prompt),
		boolToInt(record.Autosuggestions),
		boolToInt(record.EnhancedLister),
		boolToInt(record.WindowTitle),
		record.PromptEngine,
		record.ResolveTimeMS,
	)
	return err
}

// Recent returns the newest records, most recent first.
func (s *SQLiteStore) Recent(limit int) ([]domain.SessionRecord, error) {
	if s.db == nil {
		return s.fallback().Recent(limit)
	}
	if limit <= 0 {
		limit = domain.DefaultSessionListLimit
	}
	rows, err := s.db.Query(`SELECT id, timestamp, shell, term, prompt, autosuggestions,
		enhanced_lister, window_title, prompt_engine, resolve_time_ms
		FROM sessions ORDER BY datetime(timestamp) DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.SessionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Stats aggregates the activation log.
func (s *SQLiteStore) Stats() (domain.SessionStats, error) {
	records, err := s.Recent(domain.MaxSessionAnalysisRecords)
	if err != nil {
		return domain.SessionStats{}, err
	}
	return aggregate(records), nil
}

// Clear deletes all activation records.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback().Clear()
	}
	_, err := s.db.Exec("DELETE FROM sessions")
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func scanRecord(rows *sql.Rows) (domain.SessionRecord, error) {
	var rec domain.SessionRecord
	var ts string
	var prompt, suggest, lister, title int
	if err := rows.Scan(&rec.ID, &ts, &rec.Shell, &rec.Term, &prompt, &suggest,
		&lister, &title, &rec.PromptEngine, &rec.ResolveTimeMS); err != nil {
		return rec, err
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		rec.Timestamp = t
	}
	rec.Prompt = prompt == 1
	rec.Autosuggestions = suggest == 1
	rec.EnhancedLister = lister == 1
	rec.WindowTitle = title == 1
	return rec, nil
}

// aggregate folds records into SessionStats. Records arrive newest first.
func aggregate(records []domain.SessionRecord) domain.SessionStats {
	stats := domain.SessionStats{
		Total:       len(records),
		EnginesSeen: map[string]int{},
	}
	var totalMS int64
	for _, rec := range records {
		if rec.Prompt {
			stats.PromptEnabled++
		}
		if rec.Autosuggestions {
			stats.SuggestEnabled++
		}
		if rec.EnhancedLister {
			stats.ListerEnabled++
		}
		if rec.WindowTitle {
			stats.TitleEnabled++
		}
		if rec.PromptEngine != "" {
			stats.EnginesSeen[rec.PromptEngine]++
		}
		totalMS += rec.ResolveTimeMS
		if stats.LastSeen.IsZero() || rec.Timestamp.After(stats.LastSeen) {
			stats.LastSeen = rec.Timestamp
		}
		if stats.FirstSeen.IsZero() || rec.Timestamp.Before(stats.FirstSeen) {
			stats.FirstSeen = rec.Timestamp
		}
	}
	if stats.Total > 0 {
		stats.AvgResolveTimeMS = totalMS / int64(stats.Total)
	}
	return stats
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.SessionStore = (*SQLiteStore)(nil)
