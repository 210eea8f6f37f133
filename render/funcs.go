package render

import (
	"encoding/json"
	"html"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Funcs returns the string helpers available to templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"camelize":    Camelize,
		"classify":    Classify,
		"underscored": Underscored,
		"dasherize":   Dasherize,
		"capitalize":  Capitalize,
		"titleize":    Titleize,
		"humanize":    Humanize,
		"quote":       Quote,
		"escapeHTML":  html.EscapeString,
		"trim":        strings.TrimSpace,
		"lower":       strings.ToLower,
		"upper":       strings.ToUpper,
		"join":        func(sep string, parts []string) string { return strings.Join(parts, sep) },
	}
}

// words splits s on separators and on lower→upper case changes:
// "fooBar_baz-qux" → [foo Bar baz qux].
func words(s string) []string {
	var out []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	prev := rune(0)
	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == '.' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return out
}

// Camelize converts "foo_bar-baz" to "fooBarBaz".
func Camelize(s string) string {
	w := words(s)
	for i := range w {
		if i == 0 {
			w[i] = lowerFirst(w[i])
		} else {
			w[i] = Capitalize(w[i])
		}
	}
	return strings.Join(w, "")
}

// Classify converts "foo_bar" to "FooBar".
func Classify(s string) string {
	return Capitalize(Camelize(s))
}

// Underscored converts "fooBar Baz" to "foo_bar_baz".
func Underscored(s string) string {
	return strings.ToLower(strings.Join(words(s), "_"))
}

// Dasherize converts "fooBar_baz" to "foo-bar-baz".
func Dasherize(s string) string {
	return strings.ToLower(strings.Join(words(s), "-"))
}

// Capitalize upper-cases the first character.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// Titleize title-cases every word: "hello wORLD" → "Hello World".
func Titleize(s string) string {
	// Casers are stateful; one per call.
	return cases.Title(language.Und).String(s)
}

// Humanize converts "fooBar_baz" to "Foo bar baz".
func Humanize(s string) string {
	return Capitalize(strings.ToLower(strings.Join(words(s), " ")))
}

// Quote returns s as a double-quoted JavaScript/JSON string literal.
func Quote(s string) string {
	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
