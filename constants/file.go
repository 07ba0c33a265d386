package constants

import "strings"

// Default names used by the command-line driver when arguments are omitted.
const (
	DefaultInputPath  = "Data Input.pdf"
	DefaultOutputPath = "Output.xlsx"
	DownloadFilename  = "Output.xlsx"
)

// MIME types for uploads and downloads.
const (
	MIMEPDF  = "application/pdf"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// AllowedExtensions holds the document extensions accepted by the front ends.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether ext (with or without the dot) is an accepted document type.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
