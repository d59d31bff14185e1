package constants

import "strings"

// FileType holds the allowed source document types.
type FileType string

const (
	IMAGE FileType = "image"
	PDF   FileType = "pdf"
)

// AllowedExtensions holds the default allowed file extensions for receipts.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to its file type,
// or "" when the extension is not supported.
func MapExtToFormat(ext string) FileType {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "jpg", "jpeg", "png":
		return IMAGE
	}
	return ""
}
