package lint

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/specvital/speclint/pkg/ast"
	"github.com/specvital/speclint/pkg/domain"
)

// ResolveName maps the first argument of a suite or test call to its title.
// Only quoted string literals yield a literal title. Every other argument,
// template literals included, is Dynamic. The call must have at least one
// argument.
func ResolveName(call ast.Node) domain.NodeName {
	title := ast.Arg(call, 0)
	if title == nil || title.Kind() != "string" {
		return domain.DynamicName()
	}
	return domain.Literal(stringValue(title.Text()))
}

// stringValue decodes a quoted JavaScript string literal.
func stringValue(text string) string {
	if len(text) < 2 {
		return text
	}
	if q := text[0]; (q != '\'' && q != '"') || text[len(text)-1] != q {
		return text
	}
	return decodeEscapes(text[1 : len(text)-1])
}

// decodeEscapes resolves JavaScript escape sequences. Malformed hex
// escapes are kept verbatim.
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			i++
			continue
		}

		c := s[i+1]
		i += 2
		switch c {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case '\n':
			// line continuation
		case '\r':
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case 'x':
			r, n := parseHex(s[i:], 2)
			if n == 0 {
				sb.WriteString(`\x`)
				continue
			}
			sb.WriteRune(r)
			i += n
		case 'u':
			r, n := parseUnicodeEscape(s[i:])
			if n == 0 {
				sb.WriteString(`\u`)
				continue
			}
			i += n
			if utf16.IsSurrogate(r) {
				if low, m := parseSurrogateTail(s[i:]); m > 0 {
					r = utf16.DecodeRune(r, low)
					i += m
				}
			}
			sb.WriteRune(r)
		default:
			// \' \" \\ and any other escaped character stand for themselves.
			r, size := utf8.DecodeRuneInString(s[i-1:])
			i += size - 1
			if r == '\u2028' || r == '\u2029' {
				continue
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// parseUnicodeEscape reads the part after `\u`: four hex digits or {hex}.
func parseUnicodeEscape(s string) (rune, int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0
		}
		return rune(v), end + 1
	}
	return parseHex(s, 4)
}

// parseSurrogateTail reads a `\uXXXX` low surrogate following a high one.
func parseSurrogateTail(s string) (rune, int) {
	if !strings.HasPrefix(s, `\u`) {
		return 0, 0
	}
	r, n := parseHex(s[2:], 4)
	if n == 0 || !utf16.IsSurrogate(r) {
		return 0, 0
	}
	return r, n + 2
}

func parseHex(s string, digits int) (rune, int) {
	if len(s) < digits {
		return 0, 0
	}
	v, err := strconv.ParseUint(s[:digits], 16, 32)
	if err != nil {
		return 0, 0
	}
	return rune(v), digits
}
