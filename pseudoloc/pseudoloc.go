// Package pseudoloc rewrites strings into pseudo-localized text: Latin letters
// are swapped for accented look-alikes, the text can be padded to simulate
// longer translations and it is wrapped in visible markers. Placeholders
// delimited by Options.StartDelimiter/EndDelimiter survive untouched.
//
// The result is deterministic, so generated modules are reproducible.
package pseudoloc

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Options controls the transformation.
type Options struct {
	// Prepend and Append wrap every transformed string.
	Prepend string `yaml:"prepend"`
	Append  string `yaml:"append"`
	// StartDelimiter and EndDelimiter mark placeholders such as %name%.
	StartDelimiter string `yaml:"start_delimiter"`
	EndDelimiter   string `yaml:"end_delimiter"`
	// Extend pads the text by this fraction of its length (0.3 = 30% longer).
	Extend float64 `yaml:"extend"`
	// Override, when set, replaces every character outside placeholders.
	Override string `yaml:"override"`
}

// DefaultOptions returns the standard settings: "[!!" … "!!]" markers,
// %placeholder% delimiters, no padding.
func DefaultOptions() Options {
	return Options{
		Prepend:        "[!!",
		Append:         "!!]",
		StartDelimiter: "%",
		EndDelimiter:   "%",
	}
}

// padRune fills the extension requested by Options.Extend.
const padRune = '~'

// table maps ASCII letters to accented variants. Variants are picked by
// position so repeated letters do not all look alike.
var table = map[rune][]rune{
	'A': []rune("ÀÁÂÃÄÅĀĂĄ"), 'a': []rune("àáâãäåāăą"),
	'B': []rune("ßƁ"), 'b': []rune("ƀƃ"),
	'C': []rune("ÇĆĈĊČ"), 'c': []rune("çćĉċč"),
	'D': []rune("ĎĐ"), 'd': []rune("ďđ"),
	'E': []rune("ÈÉÊËĒĔĖĘĚ"), 'e': []rune("èéêëēĕėęě"),
	'F': []rune("Ƒ"), 'f': []rune("ƒ"),
	'G': []rune("ĜĞĠĢ"), 'g': []rune("ĝğġģ"),
	'H': []rune("ĤĦ"), 'h': []rune("ĥħ"),
	'I': []rune("ÌÍÎÏĨĪĬĮİ"), 'i': []rune("ìíîïĩīĭįı"),
	'J': []rune("Ĵ"), 'j': []rune("ĵ"),
	'K': []rune("ĶƘ"), 'k': []rune("ķĸ"),
	'L': []rune("ĹĻĽĿŁ"), 'l': []rune("ĺļľŀł"),
	'N': []rune("ÑŃŅŇŊ"), 'n': []rune("ñńņňŋ"),
	'O': []rune("ÒÓÔÕÖØŌŎŐ"), 'o': []rune("òóôõöøōŏő"),
	'P': []rune("Þ"), 'p': []rune("þ"),
	'R': []rune("ŔŖŘ"), 'r': []rune("ŕŗř"),
	'S': []rune("ŚŜŞŠ"), 's': []rune("śŝşš"),
	'T': []rune("ŢŤŦ"), 't': []rune("ţťŧ"),
	'U': []rune("ÙÚÛÜŨŪŬŮŰŲ"), 'u': []rune("ùúûüũūŭůűų"),
	'W': []rune("Ŵ"), 'w': []rune("ŵ"),
	'Y': []rune("ÝŶŸ"), 'y': []rune("ýÿŷ"),
	'Z': []rune("ŹŻŽ"), 'z': []rune("źżž"),
}

// Transformer applies one set of Options. It is safe for concurrent use.
type Transformer struct {
	opts  Options
	token *regexp.Regexp
}

// New compiles a Transformer. Empty delimiters disable placeholder detection.
func New(opts Options) *Transformer {
	t := &Transformer{opts: opts}
	if opts.StartDelimiter != "" && opts.EndDelimiter != "" {
		t.token = regexp.MustCompile(regexp.QuoteMeta(opts.StartDelimiter) +
			`\s*[\w.\s*]+\s*` + regexp.QuoteMeta(opts.EndDelimiter))
	}
	return t
}

// String transforms s with the default options.
func String(s string) string {
	return defaultTransformer.String(s)
}

var defaultTransformer = New(DefaultOptions())

// String transforms s.
func (t *Transformer) String(s string) string {
	var b strings.Builder
	b.WriteString(t.opts.Prepend)

	var tokens [][]int
	if t.token != nil {
		tokens = t.token.FindAllStringIndex(s, -1)
	}

	pos := 0
	for i := 0; i < len(s); {
		if len(tokens) > 0 && tokens[0][0] == i {
			b.WriteString(s[tokens[0][0]:tokens[0][1]])
			i = tokens[0][1]
			tokens = tokens[1:]
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if t.opts.Override != "" {
			b.WriteString(t.accent(t.opts.Override, pos))
		} else {
			b.WriteString(t.accent(string(r), pos))
		}
		pos++
	}

	if extra := int(float64(utf8.RuneCountInString(s))*t.opts.Extend + 0.5); extra > 0 {
		b.WriteString(strings.Repeat(string(padRune), extra))
	}

	b.WriteString(t.opts.Append)
	return b.String()
}

func (t *Transformer) accent(s string, pos int) string {
	var b strings.Builder
	for _, r := range s {
		if variants, ok := table[r]; ok {
			r = variants[pos%len(variants)]
		}
		b.WriteRune(r)
	}
	return b.String()
}
