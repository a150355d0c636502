package archive

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultDBPath is the archive database filename used when neither the
// config file nor the CLI names one.
const DefaultDBPath = "paramguard.db"

// DefaultRetentionDays applies when a store operation does not specify a
// retention period.
const DefaultRetentionDays = 30

// FileConfig is the tool's YAML settings file. CLI flags override any
// value set here.
type FileConfig struct {
	// DB is the archive database path.
	DB string `yaml:"db"`

	// RetentionDays is the default retention period for new archives.
	RetentionDays int64 `yaml:"retention_days"`

	Debug bool `yaml:"debug"`
}

func LoadConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
