package sessionlog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/shrc/internal/domain"
	"github.com/doeshing/shrc/internal/pkg/filesystem"
	"github.com/doeshing/shrc/internal/ports"
)

// FileStore appends activation records to a jsonl file. Used directly or as
// the degraded backend when SQLite is unavailable.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store under the data directory.
func NewFileStore() *FileStore {
	return &FileStore{
		path: filepath.Join(filesystem.DataDir(), "sessions.jsonl"),
	}
}

// NewFileStoreAt creates a store at an explicit path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Save implements ports.SessionStore.
func (f *FileStore) Save(record domain.SessionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.FilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Recent returns the newest records, most recent first (best-effort).
func (f *FileStore) Recent(limit int) ([]domain.SessionRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var records []domain.SessionRecord
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		var rec domain.SessionRecord
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	// reverse: file order is append order, callers want newest first
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Stats aggregates the activation log.
func (f *FileStore) Stats() (domain.SessionStats, error) {
	records, err := f.Recent(domain.MaxSessionAnalysisRecords)
	if err != nil {
		return domain.SessionStats{}, err
	}
	return aggregate(records), nil
}

// Clear removes the log file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

var _ ports.SessionStore = (*FileStore)(nil)
