package security

import (
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// AvatarTypes are the accepted avatar file extensions.
var AvatarTypes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// CleanText removes null bytes, trims and caps the result at maxRunes
// characters. Everything else is kept as sent; clients escape on render.
// A maxRunes of zero means no cap.
func CleanText(input string, maxRunes int) string {
	input = strings.TrimSpace(strings.ReplaceAll(input, "\x00", ""))
	if maxRunes > 0 && utf8.RuneCountInString(input) > maxRunes {
		input = string([]rune(input)[:maxRunes])
	}
	return input
}

// SanitizeHTML is CleanText followed by the strict policy: tags are dropped
// and the remaining text is HTML-escaped, so the result is safe to render
// as markup.
func SanitizeHTML(input string, maxRunes int) string {
	return strings.TrimSpace(htmlPolicy.Sanitize(CleanText(input, maxRunes)))
}

// ValidateFileType checks if file extension is allowed
func ValidateFileType(filename string, allowedTypes []string) bool {
	filename = strings.ToLower(filename)
	for _, ext := range allowedTypes {
		if strings.HasSuffix(filename, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// ValidateFileSize checks if file size is within limit
func ValidateFileSize(size int64, maxSize int64) bool {
	return size > 0 && size <= maxSize
}
