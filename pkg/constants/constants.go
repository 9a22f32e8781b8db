// Package constants provides shared constants used throughout the gazetteer
// codebase, such as file permissions and fixed identifier widths.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Identifier width constants for the aggregate registry
const (
	// TerritoryIDLength is the fixed width of an IBGE territory code
	TerritoryIDLength = 7

	// StateCodeLength is the width of a two-letter state subdivision code
	StateCodeLength = 2
)

// JSONIndent is the indentation used when persisting JSON documents
const JSONIndent = "  "
