package xtts

import (
	"strings"
	"unicode"
)

var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "rev": {},
	"sr": {}, "jr": {}, "st": {}, "vs": {}, "etc": {}, "inc": {},
	"ltd": {}, "co": {}, "corp": {}, "dept": {}, "est": {}, "fig": {},
	"gen": {}, "gov": {}, "hon": {}, "no": {}, "e.g": {}, "i.e": {},
}

func isSentencePunct(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

// endsWithAbbreviation reports whether the text before a period ends in a
// known abbreviation or a single-letter initial like "J.".
func endsWithAbbreviation(s string) bool {
	s = strings.TrimRight(s, ".")
	idx := strings.LastIndexFunc(s, unicode.IsSpace)
	word := strings.ToLower(s[idx+1:])
	if word == "" {
		return false
	}
	if len([]rune(word)) == 1 && unicode.IsLetter([]rune(word)[0]) {
		return true
	}
	_, ok := abbreviations[word]
	return ok
}

// splitSentences breaks text at sentence-final punctuation, keeping the
// punctuation with its sentence. Abbreviations, initials and decimal
// points do not end a sentence; runs like "?!" or "..." split once at the
// end of the run. Text with no boundary comes back as a single sentence.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	var cur strings.Builder

	flush := func() {
		s := strings.TrimSpace(cur.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		cur.Reset()
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		cur.WriteRune(r)

		if !isSentencePunct(r) {
			continue
		}
		if i+1 < len(runes) && isSentencePunct(runes[i+1]) {
			continue
		}
		if r == '.' {
			if i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
				continue
			}
			if endsWithAbbreviation(cur.String()) {
				continue
			}
		}
		// Latin punctuation only splits before whitespace, so paths and
		// hostnames stay intact. The fullwidth marks split unconditionally.
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		flush()
	}
	flush()

	if len(sentences) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return sentences
}
