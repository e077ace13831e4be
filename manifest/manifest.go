// Package manifest handles evalload.toml tool configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/seabrook/evalload/remote"
)

// FileName is the configuration file evalload looks for.
const FileName = "evalload.toml"

// Manifest represents an evalload.toml configuration.
type Manifest struct {
	Target TargetConfig `toml:"target"`
	Load   LoadConfig   `toml:"load"`

	// Dir is the directory containing the evalload.toml file (set at load time).
	Dir string `toml:"-"`
}

// TargetConfig describes the target process to connect to.
type TargetConfig struct {
	Address           string `toml:"address"`
	Platform          string `toml:"platform"`             // "standard" or "compact"
	MaxClassFileMajor uint16 `toml:"max-class-file-major"` // 0 = no limit
}

// LoadConfig configures the class-loading behavior.
type LoadConfig struct {
	DefineClasses bool `toml:"define-classes"`
}

// Load parses an evalload.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	// Defaults that toml's zero values would otherwise clobber
	m := Manifest{
		Target: TargetConfig{Platform: "standard"},
		Load:   LoadConfig{DefineClasses: true},
	}
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if _, err := m.TargetCapabilities(); err != nil {
		return nil, err
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find an evalload.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// TargetCapabilities translates the configuration into the capability
// snapshot handed to the wire client at dial time.
func (m *Manifest) TargetCapabilities() (remote.Capabilities, error) {
	caps := remote.Capabilities{
		CanDefineClasses:  m.Load.DefineClasses,
		MaxClassFileMajor: m.Target.MaxClassFileMajor,
	}
	switch m.Target.Platform {
	case "", "standard":
		caps.Platform = remote.PlatformStandard
	case "compact":
		caps.Platform = remote.PlatformCompact
	default:
		return caps, fmt.Errorf("manifest: unknown platform %q", m.Target.Platform)
	}
	return caps, nil
}
