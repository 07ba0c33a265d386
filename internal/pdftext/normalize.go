package pdftext

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var crlf = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Normalize converts line endings to LF and composes the text to Unicode NFC.
// Everything else is left as the PDF library produced it, since comment
// excerpts are quoted verbatim.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	return norm.NFC.String(crlf.Replace(s))
}
