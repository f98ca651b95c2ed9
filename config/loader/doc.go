// Package loader builds config.Document values from files and raw bytes.
//
// The format is picked from the file extension (.yaml, .yml, .json, .toml)
// unless WithFormat overrides it. The file is read once, at construction time.
//
// Usage:
//
//	doc, err := loader.FromFile("/etc/app/config.yaml")
//	if err != nil {
//	    // Handle error: file not found, path is directory, unknown format, etc.
//	}
//	err = config.Init(doc)
//
// Environment expansion:
//
// WithEnvExpansion replaces ${VAR} and $VAR references in the raw data before
// parsing. WithDotEnv additionally reads variables from .env files through
// github.com/joho/godotenv; variables already set in the process environment
// take precedence, and the process environment itself is never modified.
//
// Error Handling:
//   - Use errors.Is(err, loader.ErrPathIsDirectory) to check for directory errors
//   - Use errors.Is(err, loader.ErrUnknownFormat) to check for unsupported extensions
package loader
