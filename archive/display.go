package archive

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// UIMode selects the consuming surface for a display projection. A closed
// set: each mode fixes its own truncation limits.
type UIMode int

const (
	// UIModeCLITerse leaves truncation to the caller.
	UIModeCLITerse UIMode = iota
	UIModeCLIDetailed
	UIModeTUI
	// UIModeGUI handles its own truncation.
	UIModeGUI
)

// DisplayRecord is the presentation-ready view of an archived file.
// Optional fields (Size, Modified, RetentionRemaining) are empty when the
// underlying metadata is missing or malformed.
type DisplayRecord struct {
	ID                 int64
	Name               string
	Path               string
	Format             string
	Archived           string
	Age                string
	Status             string
	Reason             string
	Size               string
	Created            string
	Modified           string
	RetentionRemaining string
}

type truncateLengths struct {
	name int
	path int
}

// limits returns the mode's truncation lengths, or false when the mode
// does not truncate.
func (m UIMode) limits() (truncateLengths, bool) {
	switch m {
	case UIModeCLIDetailed:
		return truncateLengths{name: 30, path: 40}, true
	case UIModeTUI:
		return truncateLengths{name: 20, path: 30}, true
	default:
		return truncateLengths{}, false
	}
}

// Project maps an archived file into its display form for the given
// surface. It has no failure modes: absent or unparseable metadata fields
// simply project as empty strings.
func Project(rec *ArchivedFile, mode UIMode) DisplayRecord {
	return projectAt(rec, mode, time.Now().UTC())
}

func projectAt(rec *ArchivedFile, mode UIMode, now time.Time) DisplayRecord {
	d := DisplayRecord{
		ID:       rec.ID,
		Name:     rec.Name,
		Path:     rec.OriginalPath,
		Format:   rec.Format,
		Archived: FormatTimestamp(rec.ArchiveDate),
		Age:      formatDuration(now.Sub(rec.ArchiveDate)),
		Reason:   rec.Reason,
	}
	if d.Reason == "" {
		d.Reason = "None"
	}

	if rem, ok := Remaining(rec.ArchiveDate, rec.RetentionSeconds, now); ok {
		d.RetentionRemaining = formatDuration(rem)
		d.Status = d.RetentionRemaining + " remaining"
	} else {
		d.Status = "Expired"
	}

	if v := gjson.Get(rec.Metadata, "size"); v.Exists() {
		d.Size = FormatSize(v.Int())
	}
	if v := gjson.Get(rec.Metadata, "created"); v.Exists() {
		d.Created = FormatTimestamp(time.Unix(v.Int(), 0).UTC())
	}
	if v := gjson.Get(rec.Metadata, "modified"); v.Exists() {
		d.Modified = FormatTimestamp(time.Unix(v.Int(), 0).UTC())
	}

	if lim, ok := mode.limits(); ok {
		d.Name = Truncate(d.Name, lim.name)
		d.Path = Truncate(d.Path, lim.path)
	}
	return d
}

// FormatSize renders a byte count in human units: plain bytes below 1 KB,
// two decimals above, 1024-based.
func FormatSize(size int64) string {
	const (
		kb = int64(1024)
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case size >= gb:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(gb))
	case size >= mb:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(mb))
	case size >= kb:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(kb))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// FormatAge renders the elapsed time since date in its coarsest meaningful
// unit.
func FormatAge(date time.Time) string {
	return formatDuration(time.Now().UTC().Sub(date))
}

func formatDuration(d time.Duration) string {
	if days := int(d.Hours() / 24); days > 0 {
		return fmt.Sprintf("%d days", days)
	}
	if hours := int(d.Hours()); hours > 0 {
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d minutes", int(d.Minutes()))
}

// FormatTimestamp renders a UTC instant as a fixed human string.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

// Truncate shortens s to at most maxLen runes, replacing the tail with an
// ellipsis marker when it does.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	cut := maxLen - 3
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + "..."
}
