package archive

import (
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

// OpenDB opens (creating if needed) the archive database at path and
// self-initializes the schema.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&ArchivedFile{}, &ArchiveBlob{}); err != nil {
		return nil, err
	}
	return db, nil
}

// Store is the durable CRUD and query surface over archived files.
// It assumes a single writer per database file; callers are responsible
// for serializing access across processes.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Create inserts a new archived file plus its payload and returns the
// assigned id. The content hash is computed here; retention is given in
// days and stored in seconds. A (name, archive date) clash surfaces as a
// StorageError.
func (s *Store) Create(name string, originalPath string, content []byte, format string, retentionDays int64, reason string, metadata string) (int64, error) {
	rec := ArchivedFile{
		Name:             name,
		OriginalPath:     originalPath,
		Format:           format,
		ContentHash:      HashContent(content),
		ArchiveDate:      time.Now().UTC(),
		RetentionSeconds: retentionDays * 86400,
		Reason:           reason,
		Metadata:         metadata,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		return tx.Create(&ArchiveBlob{FileID: rec.ID, Content: content}).Error
	})
	if err != nil {
		return 0, &StorageError{Op: "create", Err: err}
	}
	return rec.ID, nil
}

// Get returns the record without its payload.
func (s *Store) Get(id int64) (*ArchivedFile, error) {
	var rec ArchivedFile
	if err := s.db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, &StorageError{Op: "get", Err: err}
	}
	return &rec, nil
}

// GetContent returns the record together with its archived bytes.
func (s *Store) GetContent(id int64) (*ArchivedFile, []byte, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	var blob ArchiveBlob
	if err := s.db.First(&blob, "file_id = ?", id).Error; err != nil {
		// A record without its payload row means a corrupt store.
		return nil, nil, &StorageError{Op: "get content", Err: err}
	}
	return rec, blob.Content, nil
}

// List returns all archived files, most recent first. The ordering is
// relied on by the CLI and TUI default views.
func (s *Store) List() ([]ArchivedFile, error) {
	var recs []ArchivedFile
	if err := s.db.Order("archive_date DESC").Find(&recs).Error; err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return recs, nil
}

// Search returns files whose name, original path or reason contains the
// query as a substring (case-insensitive for ASCII, per SQLite LIKE),
// most recent first.
func (s *Store) Search(query string) ([]ArchivedFile, error) {
	pattern := "%" + query + "%"
	var recs []ArchivedFile
	err := s.db.
		Where("name LIKE ? OR original_path LIKE ? OR reason LIKE ?", pattern, pattern, pattern).
		Order("archive_date DESC").
		Find(&recs).Error
	if err != nil {
		return nil, &StorageError{Op: "search", Err: err}
	}
	return recs, nil
}

// CanDelete reports whether the record's retention period has elapsed.
// Evaluated fresh on every call, never cached.
func (s *Store) CanDelete(id int64) (bool, error) {
	rec, err := s.Get(id)
	if err != nil {
		return false, err
	}
	return DeleteEligible(rec.ArchiveDate, rec.RetentionSeconds, time.Now().UTC()), nil
}

// Delete permanently removes the record and its payload. Fails with
// ErrRetentionActive while the retention period is still running.
func (s *Store) Delete(id int64) error {
	ok, err := s.CanDelete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRetentionActive
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&ArchiveBlob{}, "file_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&ArchivedFile{}, id).Error
	})
	if err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	return nil
}

// CleanupExpired removes every delete-eligible record and returns the
// number removed. Idempotent; safe to re-run after a partial failure.
func (s *Store) CleanupExpired() (int64, error) {
	var recs []ArchivedFile
	if err := s.db.Select("id", "archive_date", "retention_seconds").Find(&recs).Error; err != nil {
		return 0, &StorageError{Op: "cleanup", Err: err}
	}
	now := time.Now().UTC()
	var expired []int64
	for _, rec := range recs {
		if DeleteEligible(rec.ArchiveDate, rec.RetentionSeconds, now) {
			expired = append(expired, rec.ID)
		}
	}
	if len(expired) == 0 {
		return 0, nil
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&ArchiveBlob{}, "file_id IN ?", expired).Error; err != nil {
			return err
		}
		return tx.Delete(&ArchivedFile{}, "id IN ?", expired).Error
	})
	if err != nil {
		return 0, &StorageError{Op: "cleanup", Err: err}
	}
	return int64(len(expired)), nil
}

// UpdateRetention overwrites the record's retention period with the given
// number of days.
func (s *Store) UpdateRetention(id int64, retentionDays int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	err := s.db.Model(&ArchivedFile{}).
		Where("id = ?", id).
		Update("retention_seconds", retentionDays*86400).Error
	if err != nil {
		return &StorageError{Op: "update retention", Err: err}
	}
	return nil
}

// Statistics aggregates counts, stored size and average retention over the
// whole archive. Size comes from the per-record metadata document; records
// with missing or malformed metadata contribute zero bytes.
func (s *Store) Statistics() (*Statistics, error) {
	var recs []ArchivedFile
	if err := s.db.Find(&recs).Error; err != nil {
		return nil, &StorageError{Op: "statistics", Err: err}
	}
	now := time.Now().UTC()
	stats := Statistics{TotalArchives: len(recs)}
	var retentionSecsSum int64
	for _, rec := range recs {
		if DeleteEligible(rec.ArchiveDate, rec.RetentionSeconds, now) {
			stats.ExpiredCount++
		}
		stats.TotalSize += gjson.Get(rec.Metadata, "size").Int()
		retentionSecsSum += rec.RetentionSeconds
	}
	stats.ActiveCount = stats.TotalArchives - stats.ExpiredCount
	if len(recs) > 0 {
		stats.AvgRetentionDays = float64(retentionSecsSum) / 86400 / float64(len(recs))
	}
	return &stats, nil
}
