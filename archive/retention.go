package archive

import "time"

// RetentionInfo is the derived retention state of one archived file,
// computed fresh from the record plus the current time.
type RetentionInfo struct {
	ArchiveDate     time.Time
	RetentionPeriod time.Duration
	// TimeRemaining is nil once the retention period has elapsed.
	TimeRemaining *time.Duration
	CanDelete     bool
}

// ExpiryTime returns the instant at which a record becomes delete-eligible.
func ExpiryTime(archiveDate time.Time, retentionSeconds int64) time.Time {
	return archiveDate.Add(time.Duration(retentionSeconds) * time.Second)
}

// DeleteEligible reports whether the retention period has elapsed at now.
// This is the single expiry predicate: can-delete, cleanup and statistics
// all share it, so a record counted as expired is always deletable.
func DeleteEligible(archiveDate time.Time, retentionSeconds int64, now time.Time) bool {
	return !now.Before(ExpiryTime(archiveDate, retentionSeconds))
}

// Remaining returns the time left until expiry, or false once expired.
func Remaining(archiveDate time.Time, retentionSeconds int64, now time.Time) (time.Duration, bool) {
	expiry := ExpiryTime(archiveDate, retentionSeconds)
	if now.Before(expiry) {
		return expiry.Sub(now), true
	}
	return 0, false
}

func retentionInfoAt(f *ArchivedFile, now time.Time) RetentionInfo {
	info := RetentionInfo{
		ArchiveDate:     f.ArchiveDate,
		RetentionPeriod: time.Duration(f.RetentionSeconds) * time.Second,
		CanDelete:       DeleteEligible(f.ArchiveDate, f.RetentionSeconds, now),
	}
	if rem, ok := Remaining(f.ArchiveDate, f.RetentionSeconds, now); ok {
		info.TimeRemaining = &rem
	}
	return info
}
