// Package record implements the trace log's wire format: the field
// escaping, the lock-serialized append writer, and the exec record layout.
package record

import (
	"errors"
	"strings"
)

// AppendEscaped appends the escaped form of s to dst. A value containing a
// space or newline is wrapped in double quotes; every backslash and double
// quote is preceded by a backslash whether or not the value is quoted. An
// unquoted field therefore ends at the next space or newline, a quoted one
// at its closing quote, and either unescapes back to the original bytes.
func AppendEscaped(dst []byte, s string) []byte {
	quoted := strings.IndexByte(s, ' ') >= 0 || strings.IndexByte(s, '\n') >= 0
	if quoted {
		dst = append(dst, '"')
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '\\' || ch == '"' {
			dst = append(dst, '\\')
		}
		dst = append(dst, ch)
	}
	if quoted {
		dst = append(dst, '"')
	}
	return dst
}

// Escape returns the escaped form of s.
func Escape(s string) string {
	return string(AppendEscaped(nil, s))
}

// ErrBadEscape reports a malformed escaped field.
var ErrBadEscape = errors.New("malformed escaped field")

// Unescape inverts Escape. It exists so tests can prove the encoding is
// reversible; the library itself never reads the log back.
func Unescape(s string) (string, error) {
	quoted := false
	if strings.HasPrefix(s, `"`) {
		if len(s) < 2 || !strings.HasSuffix(s, `"`) {
			return "", ErrBadEscape
		}
		quoted = true
		s = s[1 : len(s)-1]
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '\\' {
			i++
			if i == len(s) {
				return "", ErrBadEscape
			}
			b.WriteByte(s[i])
			continue
		}
		if ch == '"' {
			return "", ErrBadEscape
		}
		b.WriteByte(ch)
	}
	out := b.String()
	if !quoted && (strings.IndexByte(out, ' ') >= 0 || strings.IndexByte(out, '\n') >= 0) {
		return "", ErrBadEscape
	}
	return out, nil
}
