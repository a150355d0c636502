package config

import (
	"path/filepath"
	"strings"
)

// Format is the closed set of config-file formats the manager recognizes.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
	FormatINI
	FormatENV
	FormatCFG
	FormatNix
)

// FormatFromExtension maps a file extension (without the dot) to a Format.
func FormatFromExtension(ext string) (Format, bool) {
	switch strings.ToLower(ext) {
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	case "toml":
		return FormatTOML, true
	case "ini":
		return FormatINI, true
	case "env":
		return FormatENV, true
	case "cfg", "conf":
		return FormatCFG, true
	case "nix":
		return FormatNix, true
	default:
		return 0, false
	}
}

// DetectFormat derives the format from a file path's extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, &InvalidFormatError{Path: path, Detail: "file has no extension"}
	}
	f, ok := FormatFromExtension(ext)
	if !ok {
		return 0, &InvalidFormatError{Path: path, Detail: "unsupported extension ." + ext}
	}
	return f, nil
}

// SupportedExtensions lists the recognized file extensions.
func SupportedExtensions() []string {
	return []string{"json", "yaml", "yml", "toml", "ini", "env", "cfg", "conf", "nix"}
}

func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatINI:
		return "ini"
	case FormatENV:
		return "env"
	case FormatCFG:
		return "cfg"
	case FormatNix:
		return "nix"
	default:
		return "unknown"
	}
}

func (f Format) String() string { return f.Extension() }

// DefaultContent is the initial content written when a file is created
// without any.
func (f Format) DefaultContent() string {
	switch f {
	case FormatJSON:
		return "{}\n"
	case FormatYAML:
		return "# empty configuration\n"
	case FormatTOML:
		return "# empty configuration\n"
	case FormatINI, FormatCFG:
		return "; empty configuration\n"
	case FormatENV:
		return "# empty configuration\n"
	case FormatNix:
		return "{ }\n"
	default:
		return ""
	}
}
