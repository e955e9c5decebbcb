package config

// Defaults returns the default configuration values.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"project":       "",
		"ledger_path":   "CHANGELOG.md",
		"manifest_path": "",
		"default_scope": "",
		"strict":        false,
		"plain":         false,
	}
}

// DefaultConfigTemplate returns a commented config template written by
// `changegov init`.
func DefaultConfigTemplate() string {
	return `# changegov configuration

project: ""            # Project name, used in the ledger preamble
ledger_path: CHANGELOG.md   # Append-only changelog ledger
manifest_path: ""      # Manifest holding the version field (package.json, Cargo.toml, VERSION)
default_scope: ""      # Default commit scope when --scope is omitted
strict: false          # Fail on ambiguous classifications instead of prompting
plain: false           # Disable colors and icons in output
`
}
