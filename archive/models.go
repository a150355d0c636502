package archive

import "time"

// ArchivedFile is one archived snapshot of a config file. The raw payload
// lives in ArchiveBlob so that list/search/statistics scans never load it.
type ArchivedFile struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"uniqueIndex:uniq_name_date;size:255"`
	OriginalPath string `gorm:"size:1024"`
	// Format is the extension-derived tag ("json", "yaml", ...), or
	// "unknown" when the source path has no extension.
	Format      string `gorm:"size:32"`
	ContentHash string `gorm:"index;size:64"`
	// ArchiveDate is the UTC creation instant. Immutable after creation.
	ArchiveDate time.Time `gorm:"uniqueIndex:uniq_name_date;index"`
	// RetentionSeconds is the minimum time the record must be kept before
	// deletion is permitted. The only field mutable after creation.
	RetentionSeconds int64
	Reason           string `gorm:"type:text"`
	// Metadata is a JSON document of facts captured at archive time
	// (byte size, source modification time). Opaque to the store; parsed
	// only by the display projection.
	Metadata string `gorm:"type:text"`
}

// ArchiveBlob holds the archived byte payload, keyed by the owning
// ArchivedFile. Written and deleted in the same transaction as its record.
type ArchiveBlob struct {
	FileID  int64  `gorm:"primaryKey"`
	Content []byte `gorm:"type:blob"`
}

// Statistics is the aggregate view over all archived files.
type Statistics struct {
	TotalArchives    int
	ExpiredCount     int
	ActiveCount      int
	TotalSize        int64
	AvgRetentionDays float64
}
