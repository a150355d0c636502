package archive

import (
	"testing"
	"time"
)

func TestExpiryTime(t *testing.T) {
	archived := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiry := ExpiryTime(archived, 30*86400)
	want := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	if !expiry.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, expiry)
	}
}

func TestDeleteEligibleBoundary(t *testing.T) {
	archived := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiry := archived.Add(24 * time.Hour)

	if DeleteEligible(archived, 86400, expiry.Add(-time.Second)) {
		t.Fatal("expected not eligible one second before expiry")
	}
	// Exactly at expiry counts as eligible.
	if !DeleteEligible(archived, 86400, expiry) {
		t.Fatal("expected eligible exactly at expiry")
	}
	if !DeleteEligible(archived, 86400, expiry.Add(time.Second)) {
		t.Fatal("expected eligible after expiry")
	}
}

func TestDeleteEligibleZeroRetention(t *testing.T) {
	archived := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if !DeleteEligible(archived, 0, archived) {
		t.Fatal("expected zero retention to be immediately eligible")
	}
}

func TestRemaining(t *testing.T) {
	archived := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rem, ok := Remaining(archived, 86400, archived.Add(6*time.Hour))
	if !ok {
		t.Fatal("expected time remaining before expiry")
	}
	if rem != 18*time.Hour {
		t.Fatalf("expected 18h remaining, got %v", rem)
	}

	if _, ok := Remaining(archived, 86400, archived.Add(24*time.Hour)); ok {
		t.Fatal("expected no time remaining at expiry")
	}
	if _, ok := Remaining(archived, 86400, archived.Add(48*time.Hour)); ok {
		t.Fatal("expected no time remaining after expiry")
	}
}

func TestRetentionInfoAt(t *testing.T) {
	archived := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := &ArchivedFile{ArchiveDate: archived, RetentionSeconds: 30 * 86400}

	info := retentionInfoAt(rec, archived.Add(24*time.Hour))
	if info.CanDelete {
		t.Fatal("expected CanDelete=false inside retention window")
	}
	if info.RetentionPeriod != 30*24*time.Hour {
		t.Fatalf("expected 30 day retention period, got %v", info.RetentionPeriod)
	}
	if info.TimeRemaining == nil || *info.TimeRemaining != 29*24*time.Hour {
		t.Fatalf("expected 29 days remaining, got %v", info.TimeRemaining)
	}

	expired := retentionInfoAt(rec, archived.Add(31*24*time.Hour))
	if !expired.CanDelete {
		t.Fatal("expected CanDelete=true after retention window")
	}
	if expired.TimeRemaining != nil {
		t.Fatalf("expected nil TimeRemaining after expiry, got %v", *expired.TimeRemaining)
	}
}
