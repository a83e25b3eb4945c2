// Package safety post-processes generated guidance before it reaches a
// patient: overconfident claims are softened and a disclaimer is always
// appended.
package safety

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Disclaimer is appended unconditionally to every assessment.
const Disclaimer = "\n\n---\n" +
	"SAFETY NOTICE: This is educational Ayurvedic guidance only. " +
	"It is NOT a medical diagnosis or prescription. " +
	"Always consult a qualified Ayurvedic practitioner (BAMS) and " +
	"licensed physician before starting any treatment. " +
	"In emergencies, contact medical services immediately."

// Placeholder replaces each overconfident phrase.
const Placeholder = "[may help with]"

// overconfidentPhrases are replaced wherever they occur, including
// inside larger words ("cured" becomes "[may help with]d"). Grammatical
// agreement with the surrounding text is not preserved; this mirrors the
// matching used by the evaluation tooling and must not be tightened.
var overconfidentPhrases = []string{
	"cure",
	"guaranteed",
	"100% effective",
	"stop your medication",
	"replace your doctor",
}

// Sanitize replaces every case-insensitive occurrence of each
// overconfident phrase with Placeholder and appends Disclaimer.
func Sanitize(text string) string {
	for _, phrase := range overconfidentPhrases {
		text = replaceFold(text, phrase, Placeholder)
	}
	return text + Disclaimer
}

// replaceFold replaces all case-insensitive occurrences of old in s.
// Matching walks s itself rune by rune; lowering a copy of s up front
// would skew byte offsets for runes whose lowercase form has a
// different encoded length.
func replaceFold(s, old, new string) string {
	if old == "" {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); {
		if n := foldPrefixLen(s[i:], old); n > 0 {
			b.WriteString(new)
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// foldPrefixLen reports the byte length of the prefix of s matching old
// under case folding, or 0 when s does not start with old.
func foldPrefixLen(s, old string) int {
	i := 0
	for _, or := range old {
		if i >= len(s) {
			return 0
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if sr != or && unicode.ToLower(sr) != unicode.ToLower(or) {
			return 0
		}
		i += size
	}
	return i
}
