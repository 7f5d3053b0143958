package extract

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// unquoteStringLiteral returns the value of a JavaScript string literal
// including its quotes. Escape sequences are decoded; an escaped line
// terminator is a line continuation and contributes nothing.
func unquoteStringLiteral(raw string) string {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		raw = raw[1 : len(raw)-1]
	}
	if !strings.Contains(raw, `\`) {
		return raw
	}

	var units []rune
	flush := func(sb *strings.Builder) {
		if len(units) > 0 {
			sb.WriteString(string(utf16.Decode(toUint16(units))))
			units = units[:0]
		}
	}

	var sb strings.Builder
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			flush(&sb)
			r, size := utf8.DecodeRuneInString(raw[i:])
			sb.WriteRune(r)
			i += size
			continue
		}

		next := raw[i+1]
		switch next {
		case 'u':
			if unit, size, ok := parseUnicodeEscape(raw[i+2:]); ok {
				if unit > 0xFFFF {
					flush(&sb)
					sb.WriteRune(rune(unit))
				} else {
					units = append(units, rune(unit))
				}
				i += 2 + size
				continue
			}
		case 'x':
			if i+4 <= len(raw) {
				if v, err := strconv.ParseUint(raw[i+2:i+4], 16, 8); err == nil {
					flush(&sb)
					sb.WriteRune(rune(v))
					i += 4
					continue
				}
			}
		}

		flush(&sb)
		switch next {
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
		case '\r':
			if i+2 < len(raw) && raw[i+2] == '\n' {
				i++
			}
		default:
			r, size := utf8.DecodeRuneInString(raw[i+1:])
			if r != '\u2028' && r != '\u2029' {
				sb.WriteRune(r)
			}
			i += 1 + size
			continue
		}
		i += 2
	}
	flush(&sb)

	return sb.String()
}

// parseUnicodeEscape parses the part of a \u escape after the "u": either
// four hex digits or a braced code point.
func parseUnicodeEscape(s string) (uint32, int, bool) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, false
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0, false
		}
		return uint32(v), end + 1, true
	}
	if len(s) < 4 {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0, false
	}
	return uint32(v), 4, true
}

func toUint16(units []rune) []uint16 {
	out := make([]uint16, len(units))
	for i, u := range units {
		out[i] = uint16(u)
	}
	return out
}
