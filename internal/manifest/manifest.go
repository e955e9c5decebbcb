// Package manifest reads and writes the semantic version field of an
// external project manifest. changegov only computes version strings; the
// manifest format belongs to the project, so writes rewrite the version
// field value textually and leave every other byte untouched.
//
// Supported formats, chosen by file extension: JSON ("version" key, as in
// package.json), YAML ("version" key), TOML (top-level or [package] version,
// as in Cargo.toml), and plain files whose entire content is the version
// string (VERSION files).
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/dlevinson-dev/changegov/internal/semver"
)

// FieldNotFoundError is returned when a structured manifest has no version
// field.
type FieldNotFoundError struct {
	Path string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("no version field found in %s", e.Path)
}

// Read extracts the current version from the manifest at path.
// A malformed version value returns *semver.InvalidVersionError.
func Read(path string) (semver.Version, error) {
	raw, err := readVersionString(path)
	if err != nil {
		return semver.Version{}, err
	}
	return semver.Parse(raw)
}

func readVersionString(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return readKoanf(path, json.Parser())
	case ".yaml", ".yml":
		return readKoanf(path, yaml.Parser())
	case ".toml":
		return readTOML(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading manifest: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
}

func readKoanf(path string, parser koanf.Parser) (string, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return "", fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	v := k.String("version")
	if v == "" {
		return "", &FieldNotFoundError{Path: path}
	}
	return v, nil
}

// tomlManifest covers both top-level version fields and Cargo-style
// [package] tables.
type tomlManifest struct {
	Version string `toml:"version"`
	Package struct {
		Version string `toml:"version"`
	} `toml:"package"`
}

func readTOML(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading manifest: %w", err)
	}

	var m tomlManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return "", fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if m.Version != "" {
		return m.Version, nil
	}
	if m.Package.Version != "" {
		return m.Package.Version, nil
	}
	return "", &FieldNotFoundError{Path: path}
}

// versionFieldRe matches a version field assignment in JSON, YAML, or TOML,
// capturing everything up to the value so the replacement preserves
// quoting and spacing.
var versionFieldRe = regexp.MustCompile(`(?m)^(\s*"?version"?\s*[:=]\s*["']?)(v?\d+\.\d+\.\d+)(["']?)`)

// Write replaces the manifest's version field value with v. For structured
// manifests only the matched version value changes; plain files are
// rewritten with the bare version string.
func Write(path string, v semver.Version) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
	case ".toml":
		return writeTOML(path, v)
	default:
		if err := os.WriteFile(path, []byte(v.String()+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing manifest: %w", err)
		}
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	replaced := false
	out := versionFieldRe.ReplaceAllStringFunc(string(data), func(match string) string {
		if replaced {
			return match
		}
		replaced = true
		return versionFieldRe.ReplaceAllString(match, "${1}"+v.String()+"${3}")
	})

	if !replaced {
		return &FieldNotFoundError{Path: path}
	}

	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// writeTOML replaces the version value in the same fields the read path
// consults: top-level, or the [package] table. Version lines in other
// tables ([dependencies] and friends) are left alone.
func writeTOML(path string, v semver.Version) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	table := ""
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			table = strings.Trim(trimmed, "[]")
			continue
		}
		if table != "" && table != "package" {
			continue
		}
		if versionFieldRe.MatchString(line) {
			lines[i] = versionFieldRe.ReplaceAllString(line, "${1}"+v.String()+"${3}")
			if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
				return fmt.Errorf("writing manifest: %w", err)
			}
			return nil
		}
	}

	return &FieldNotFoundError{Path: path}
}
