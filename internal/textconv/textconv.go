// Package textconv normalizes raw file bytes into UTF-8 strings.
//
// Runbook files are occasionally produced by editors that write a byte
// order mark or UTF-16 encodings. The diagnostic engine echoes source
// lines back to the user, so it decodes through this package instead of
// assuming the bytes are already clean UTF-8.
package textconv

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// DecodeText converts file bytes to a UTF-8 string. A UTF-8 BOM is
// stripped; UTF-16 input (either endianness, detected by BOM) is
// transcoded. Bytes without a BOM are returned as-is: invalid sequences
// are left for the caller to render, since a diagnostic that mangles the
// offending line is worse than one with a replacement character.
func DecodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), nil
	case bytes.HasPrefix(data, bomUTF16BE):
		return decodeUTF16(data, unicode.BigEndian)
	case bytes.HasPrefix(data, bomUTF16LE):
		return decodeUTF16(data, unicode.LittleEndian)
	default:
		return string(data), nil
	}
}

func decodeUTF16(data []byte, endian unicode.Endianness) (string, error) {
	dec := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", fmt.Errorf("failed to decode UTF-16 input: %w", err)
	}
	return string(out), nil
}
