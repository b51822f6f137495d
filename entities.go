package abx

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// EscapeText replaces the five predefined XML entities, the same set
// bored-engineer/fastxml's DecodeEntities resolves in the opposite
// direction. Used for every TEXT/STRING/STRING_INTERNED payload rendered on
// decode (spec §4.2); neither the serializer (spec §4.4) nor the xmltree
// driver escapes, so escaping happens only here, on the way out of Decoder.
func EscapeText(s string) string {
	if !strings.ContainsAny(s, "&<>\"'") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sanitizeUTF8 mirrors stringtable.go's substitution of invalid runes and
// embedded NULs when a string-pool entry turns out to be corrupt: rather
// than fail the whole decode, replace the offending rune with U+FFFE so the
// rest of the document still comes out as valid UTF-8 XML.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) && !strings.ContainsRune(s, 0) {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case 0, utf8.RuneError:
			return '￾'
		default:
			return r
		}
	}, s)
}

// EncodeHex and DecodeHex back the BYTES_HEX attribute type (spec §4.3): the
// teacher itself reaches for encoding/hex directly for the same
// bytes-to-text job (see axml2xml/main.go's certificate thumbprints), so no
// third-party replacement is warranted here.
func EncodeHex(b []byte) string { return hex.EncodeToString(b) }

func DecodeHex(s string) ([]byte, error) { return hex.DecodeString(s) }

// EncodeBase64 and DecodeBase64 back the BYTES_BASE64 attribute type (spec
// §4.3), standard alphabet with padding as spec §8's worked example requires.
func EncodeBase64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

func DecodeBase64(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) }
