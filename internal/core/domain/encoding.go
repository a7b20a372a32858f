package domain

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText returns raw CSV bytes as UTF-8 text. A leading UTF-8 BOM is
// stripped. Bytes that are not valid UTF-8 are decoded as Windows-1252,
// which older French table exports still use.
func DecodeText(b []byte) []byte {
	b = bytes.TrimPrefix(b, utf8BOM)
	if utf8.Valid(b) {
		return b
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), b)
	if err != nil {
		// Windows-1252 maps every byte, so this is unreachable in
		// practice; return the input unmodified rather than dropping it.
		return b
	}
	return decoded
}
