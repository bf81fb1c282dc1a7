package threejs

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// accentFolds lists the lowercase accented characters folded to ASCII.
// Uppercase keys are derived and map to the uppercased replacement.
var accentFolds = [][2]string{
	{"á", "a"}, {"à", "a"}, {"ã", "a"}, {"â", "a"}, {"ä", "ae"}, {"å", "a"},
	{"č", "c"}, {"ć", "c"},
	{"é", "e"}, {"è", "e"}, {"ê", "e"}, {"ë", "e"},
	{"í", "i"}, {"ì", "i"}, {"î", "i"}, {"ï", "i"},
	{"ñ", "n"},
	{"ó", "o"}, {"ò", "o"}, {"ô", "o"}, {"ö", "oe"}, {"õ", "o"}, {"ø", "o"},
	{"ř", "r"},
	{"š", "s"}, {"ß", "ss"},
	{"ú", "u"}, {"ù", "u"}, {"û", "u"}, {"ü", "ue"}, {"ũ", "u"},
	{"ý", "y"}, {"ž", "z"},
}

var sanitizeReplacer = newSanitizeReplacer()

func newSanitizeReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(accentFolds)*4+6)
	for _, f := range accentFolds {
		pairs = append(pairs, f[0], f[1])
		if up := strings.ToUpper(f[0]); up != f[0] {
			pairs = append(pairs, up, strings.ToUpper(f[1]))
		}
	}
	pairs = append(pairs, " ", "_", "-", "_", ".", "_")
	return strings.NewReplacer(pairs...)
}

// Sanitize folds accented characters to ASCII and replaces spaces,
// hyphens and periods with underscores. It is pure and
// Sanitize(Sanitize(s)) == Sanitize(s).
//
// Input is NFC-normalized first so that decomposed accents fold like
// precomposed ones. Folding can expose a new composable pair (an "ae"
// followed by a combining mark), so the pass repeats until nothing
// changes.
func Sanitize(name string) string {
	for {
		next := sanitizeReplacer.Replace(norm.NFC.String(name))
		if next == name {
			return next
		}
		name = next
	}
}

// Sanitizer issues JavaScript identifiers for one export run and never
// hands out the same identifier twice.
type Sanitizer struct {
	issued map[string]bool
}

// NewSanitizer returns a Sanitizer with the given identifiers already
// taken.
func NewSanitizer(reserved ...string) *Sanitizer {
	s := &Sanitizer{issued: make(map[string]bool, len(reserved))}
	for _, r := range reserved {
		s.issued[r] = true
	}
	return s
}

// Identifier sanitizes a display name and issues it.
func (s *Sanitizer) Identifier(name string) string {
	return s.Unique(Sanitize(name))
}

// Unique issues candidate, or candidate_2, candidate_3, ... if it is
// taken. Runes that cannot appear in a JavaScript identifier become
// underscores, and a leading digit gets an underscore prefix.
func (s *Sanitizer) Unique(candidate string) string {
	candidate = identifierSafe(candidate)
	id := candidate
	for n := 2; s.issued[id]; n++ {
		id = fmt.Sprintf("%s_%d", candidate, n)
	}
	s.issued[id] = true
	return id
}

func identifierSafe(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
