package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		path string
		want Format
	}{
		{"app.json", FormatJSON},
		{"app.yaml", FormatYAML},
		{"app.yml", FormatYAML},
		{"app.TOML", FormatTOML},
		{"app.ini", FormatINI},
		{"deploy.env", FormatENV},
		{"app.cfg", FormatCFG},
		{"app.conf", FormatCFG},
		{"flake.nix", FormatNix},
	}
	for _, c := range cases {
		got, err := DetectFormat(c.path)
		if err != nil {
			t.Fatalf("DetectFormat(%q): %v", c.path, err)
		}
		if got != c.want {
			t.Fatalf("DetectFormat(%q) = %v, want %v", c.path, got, c.want)
		}
	}

	var invalid *InvalidFormatError
	if _, err := DetectFormat("noext"); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidFormatError for missing extension, got %v", err)
	}
	if _, err := DetectFormat("app.exe"); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidFormatError for unsupported extension, got %v", err)
	}
}

func TestManagerCreate(t *testing.T) {
	m := NewManager()
	path := filepath.Join(t.TempDir(), "sub", "settings.json")

	if err := m.Create("settings", path, FormatJSON, `{"key":"value"}`); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"key":"value"}` {
		t.Fatalf("unexpected file content: %q", got)
	}
	if !m.Exists("settings") {
		t.Fatal("expected config registered after create")
	}

	var exists *ExistsError
	if err := m.Create("settings", path, FormatJSON, ""); !errors.As(err, &exists) {
		t.Fatalf("expected ExistsError for duplicate name, got %v", err)
	}
	other := filepath.Join(filepath.Dir(path), "other.json")
	if err := os.WriteFile(other, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := m.Create("other", other, FormatJSON, ""); !errors.As(err, &exists) {
		t.Fatalf("expected ExistsError for existing file, got %v", err)
	}
}

func TestManagerCreateDefaultContent(t *testing.T) {
	m := NewManager()
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := m.Create("empty", path, FormatYAML, ""); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != FormatYAML.DefaultContent() {
		t.Fatalf("expected default YAML content, got %q", got)
	}
}

func TestManagerAdd(t *testing.T) {
	m := NewManager()
	dir := t.TempDir()
	path := filepath.Join(dir, "existing.toml")
	if err := os.WriteFile(path, []byte("k = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := m.Add(path); err != nil {
		t.Fatal(err)
	}
	f := m.Get("existing.toml")
	if f == nil {
		t.Fatal("expected config registered under its base filename")
	}
	if f.Format != FormatTOML || f.Content != "k = 1\n" {
		t.Fatalf("unexpected config: %+v", f)
	}

	var exists *ExistsError
	if err := m.Add(path); !errors.As(err, &exists) {
		t.Fatalf("expected ExistsError on duplicate add, got %v", err)
	}

	var nf *NotFoundError
	if err := m.Add(filepath.Join(dir, "missing.json")); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for missing file, got %v", err)
	}
}

func TestManagerUpdate(t *testing.T) {
	m := NewManager()
	path := filepath.Join(t.TempDir(), "u.json")
	if err := m.Create("u", path, FormatJSON, `{"v":1}`); err != nil {
		t.Fatal(err)
	}
	before := m.Get("u").LastModified

	if err := m.Update("u", `{"v":2}`); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"v":2}` {
		t.Fatalf("expected updated content on disk, got %q", got)
	}
	if m.Get("u").Content != `{"v":2}` {
		t.Fatal("expected updated content in memory")
	}
	if m.Get("u").LastModified.Before(before) {
		t.Fatal("expected LastModified bumped")
	}

	var nf *NotFoundError
	if err := m.Update("nope", "x"); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	// Backing file removed out from under the manager.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := m.Update("u", `{"v":3}`); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for vanished file, got %v", err)
	}
}

func TestManagerDelete(t *testing.T) {
	m := NewManager()
	path := filepath.Join(t.TempDir(), "d.ini")
	if err := m.Create("d", path, FormatINI, "[s]\nk=v\n"); err != nil {
		t.Fatal(err)
	}

	if err := m.Delete("d"); err != nil {
		t.Fatal(err)
	}
	if m.Exists("d") {
		t.Fatal("expected config removed from registry")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected file removed from disk")
	}

	var nf *NotFoundError
	if err := m.Delete("d"); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError on repeat delete, got %v", err)
	}
}

func TestManagerDeleteMissingFileIsSuccess(t *testing.T) {
	m := NewManager()
	path := filepath.Join(t.TempDir(), "gone.env")
	if err := m.Create("gone", path, FormatENV, "A=1\n"); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete("gone"); err != nil {
		t.Fatalf("expected delete of already-gone file to succeed, got %v", err)
	}
}

type rejectAll struct{}

func (rejectAll) Validate(f *File) error { return errors.New("rejected") }

func TestManagerValidator(t *testing.T) {
	m := NewManagerWithValidator(rejectAll{})
	path := filepath.Join(t.TempDir(), "v.json")

	var ve *ValidationError
	if err := m.Create("v", path, FormatJSON, "{}"); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("rejected create must not write the file")
	}
	if m.Exists("v") {
		t.Fatal("rejected create must not register the config")
	}
}
