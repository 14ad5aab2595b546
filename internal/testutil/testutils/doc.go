// Package testutils holds fixtures shared by vitedoc tests: fluent builders for
// documentation nodes and assertions over rendered output directories.
package testutils

const (
	// testDirPermissions is the permission mode for creating test directories.
	testDirPermissions = 0o750

	// testFilePermissions is the permission mode for creating test files.
	testFilePermissions = 0o600
)
