package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Service is the façade the CLI and TUI call. It performs the file-system
// side of archiving (reading sources, writing restores) and delegates
// persistence to the Store. Operations are synchronous and run to
// completion; the service owns a single database connection.
type Service struct {
	store *Store
	log   *zap.Logger
}

// NewService opens the archive database at dbPath. A nil logger disables
// logging.
func NewService(dbPath string, logger *zap.Logger) (*Service, error) {
	db, err := OpenDB(dbPath)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: NewStore(db), log: logger}, nil
}

func (s *Service) Close() error {
	return s.store.Close()
}

// Store archives the file at path under the given name and returns the new
// record id. Format is derived from the path's extension; byte size and
// source modification time are captured into the metadata document. An
// empty reason defaults to a placeholder.
func (s *Service) Store(name string, path string, retentionDays int64, reason string) (int64, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, &IOError{Path: path, Err: err}
	}

	format := "unknown"
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		format = strings.ToLower(ext)
	}

	meta := map[string]int64{"size": int64(len(content))}
	if info, err := os.Stat(path); err == nil {
		meta["modified"] = info.ModTime().UTC().Unix()
	}
	metaBytes, _ := json.Marshal(meta)

	if strings.TrimSpace(reason) == "" {
		reason = "No reason provided"
	}

	id, err := s.store.Create(name, path, content, format, retentionDays, reason, string(metaBytes))
	if err != nil {
		return 0, err
	}
	s.log.Debug("archived file",
		zap.Int64("id", id),
		zap.String("name", name),
		zap.String("path", path),
		zap.Int64("retention_days", retentionDays))
	return id, nil
}

// Restore writes the archived payload back to disk and returns the path it
// was written to. An empty outputPath restores to the record's original
// path; an outputPath naming an existing directory restores into it under
// the record's name; any other outputPath is used literally. Parent
// directories are created as needed and an existing file at the target is
// overwritten (latest restore wins).
func (s *Service) Restore(id int64, outputPath string) (string, error) {
	rec, content, err := s.store.GetContent(id)
	if err != nil {
		return "", err
	}

	restorePath := rec.OriginalPath
	if outputPath != "" {
		if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
			restorePath = filepath.Join(outputPath, rec.Name)
		} else {
			restorePath = outputPath
		}
	}

	if dir := filepath.Dir(restorePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", &IOError{Path: dir, Err: err}
		}
	}
	if err := os.WriteFile(restorePath, content, 0o644); err != nil {
		return "", &IOError{Path: restorePath, Err: err}
	}
	s.log.Debug("restored file", zap.Int64("id", id), zap.String("path", restorePath))
	return restorePath, nil
}

func (s *Service) List() ([]ArchivedFile, error) {
	return s.store.List()
}

func (s *Service) Search(query string) ([]ArchivedFile, error) {
	return s.store.Search(query)
}

// Cleanup removes all expired records and returns the number removed.
func (s *Service) Cleanup() (int64, error) {
	n, err := s.store.CleanupExpired()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Debug("cleanup removed expired archives", zap.Int64("count", n))
	}
	return n, nil
}

func (s *Service) CanDelete(id int64) (bool, error) {
	return s.store.CanDelete(id)
}

// Delete removes one record, failing with ErrRetentionActive while its
// retention period is still running.
func (s *Service) Delete(id int64) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.log.Debug("deleted archive", zap.Int64("id", id))
	return nil
}

// RetentionInfo computes the record's current retention state.
func (s *Service) RetentionInfo(id int64) (*RetentionInfo, error) {
	rec, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	info := retentionInfoAt(rec, time.Now().UTC())
	return &info, nil
}

// UpdateRetention replaces the record's retention period with the given
// number of days.
func (s *Service) UpdateRetention(id int64, retentionDays int64) error {
	return s.store.UpdateRetention(id, retentionDays)
}

func (s *Service) Statistics() (*Statistics, error) {
	return s.store.Statistics()
}
