// Package file loads and persists corpora configuration as a TOML file on
// the local filesystem.
package file
