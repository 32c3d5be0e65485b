// Package textenc decodes text exported by spreadsheet tools on different
// locales. Exports frequently arrive as UTF-8 with a BOM (Excel), plain UTF-8,
// or Windows-1251; the decode order tries each in turn and the final fallback
// never fails.
package textenc

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw file bytes to a string. Tries UTF-8 with BOM, then plain
// UTF-8, then Windows-1251 with lossy replacement of undecodable bytes.
func Decode(data []byte) string {
	if bytes.HasPrefix(data, utf8BOM) {
		trimmed := data[len(utf8BOM):]
		if utf8.Valid(trimmed) {
			return string(trimmed)
		}
		data = trimmed
	}
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		// The charmap decoder replaces rather than fails, so this branch is
		// unreachable in practice; keep the raw bytes as a last resort.
		return string(data)
	}
	return string(decoded)
}
