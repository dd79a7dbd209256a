// Package render writes engine results as CSV, XLSX and printable PDF files.
package render

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// win1252 maps s onto the single-byte encoding used by the core PDF fonts.
// Runes outside Windows-1252 are dropped.
func win1252(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
		}
	}
	return b.String()
}
