// Package yamlcheck validates YAML syntax before a file is handed to the
// configuration loader, so syntax errors surface with line information
// instead of as opaque unmarshal failures.
package yamlcheck

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ValidateSyntax validates YAML syntax by streaming through the document.
// Returns nil if the YAML is syntactically valid, or an error with line
// information if syntax errors are found.
func ValidateSyntax(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	for {
		var n yaml.Node
		if err := dec.Decode(&n); err != nil {
			if err == io.EOF {
				return nil // All documents valid
			}
			return err // Syntax error with line info
		}
	}
}

// ValidateFile validates the YAML syntax of the file at path.
func ValidateFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	if err := ValidateSyntax(f); err != nil {
		return fmt.Errorf("YAML syntax error in %s: %w", path, err)
	}
	return nil
}
