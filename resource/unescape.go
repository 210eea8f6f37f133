package resource

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// reEscape matches the localization tool escape "]HHHH;" (1-4 hex digits).
var reEscape = regexp.MustCompile(`\]([0-9A-Fa-f]{1,4});`)

// Unescape decodes "]xx;" sequences inserted by the localization tool into
// the characters they encode. Anything that does not match is left as is.
//
// Characters above U+FFFF arrive as two adjacent escapes holding a UTF-16
// surrogate pair ("]D83D;]DE00;"); they are joined into one rune. A surrogate
// without its partner becomes U+FFFD.
func Unescape(s string) string {
	matches := reEscape.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for i := 0; i < len(matches); i++ {
		m := matches[i]
		b.WriteString(s[last:m[0]])
		last = m[1]

		code := escapeCode(s, m)
		if utf16.IsSurrogate(code) && i+1 < len(matches) && matches[i+1][0] == m[1] {
			next := matches[i+1]
			if r := utf16.DecodeRune(code, escapeCode(s, next)); r != unicode.ReplacementChar {
				b.WriteRune(r)
				last = next[1]
				i++
				continue
			}
		}
		b.WriteRune(code)
	}
	b.WriteString(s[last:])
	return b.String()
}

// escapeCode returns the code unit of a reEscape submatch index pair.
func escapeCode(s string, m []int) rune {
	// At most four hex digits: parsing cannot fail or overflow.
	code, _ := strconv.ParseUint(s[m[2]:m[3]], 16, 32)
	return rune(code)
}
