package route

import (
	"strings"
	"unicode/utf8"
)

// reserved are the characters DecodePath leaves percent-encoded
// so decoding cannot change how a path splits into segments.
const reserved = ";/?:@&=+$,#"

// DecodePath percent-decodes path except for escapes of reserved characters.
// If path contains a malformed escape or decodes into invalid UTF-8,
// DecodePath returns path unchanged.
func DecodePath(path string) string {
	if !strings.Contains(path, "%") {
		return path
	}

	var b strings.Builder
	b.Grow(len(path))
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			b.WriteByte(path[i])
			continue
		}

		if i+2 >= len(path) || !isHex(path[i+1]) || !isHex(path[i+2]) {
			return path
		}

		c := unhex(path[i+1])<<4 | unhex(path[i+2])
		if c < utf8.RuneSelf && strings.IndexByte(reserved, c) >= 0 {
			b.WriteString(path[i : i+3])
		} else {
			b.WriteByte(c)
		}
		i += 2
	}

	decoded := b.String()
	if !utf8.ValidString(decoded) {
		return path
	}

	return decoded
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		return true
	default:
		return false
	}
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
