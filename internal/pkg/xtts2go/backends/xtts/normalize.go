package xtts

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeText brings input into the form the checkpoint was trained on:
// NFC, ASCII quotes and punctuation, collapsed whitespace. English text
// additionally gets contraction and number expansion; other languages rely
// on the vocabulary's own coverage.
func normalizeText(text, lang string) string {
	text = norm.NFC.String(text)
	text = normalizeQuotes(text)
	text = normalizePunctuation(text)
	if lang == "en" {
		text = expandContractions(text)
		text = expandNumbers(text)
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func normalizeQuotes(text string) string {
	text = strings.ReplaceAll(text, "“", "\"")
	text = strings.ReplaceAll(text, "”", "\"")
	text = strings.ReplaceAll(text, "‘", "'")
	text = strings.ReplaceAll(text, "’", "'")
	text = strings.ReplaceAll(text, "«", "\"")
	text = strings.ReplaceAll(text, "»", "\"")
	return text
}

func normalizePunctuation(text string) string {
	text = strings.ReplaceAll(text, "—", ", ")
	text = strings.ReplaceAll(text, "–", ", ")
	text = strings.ReplaceAll(text, "…", "...")
	return text
}

var contractions = map[string]string{
	"won't":     "will not",
	"can't":     "cannot",
	"shan't":    "shall not",
	"let's":     "let us",
	"isn't":     "is not",
	"aren't":    "are not",
	"wasn't":    "was not",
	"weren't":   "were not",
	"haven't":   "have not",
	"hasn't":    "has not",
	"hadn't":    "had not",
	"doesn't":   "does not",
	"don't":     "do not",
	"didn't":    "did not",
	"wouldn't":  "would not",
	"shouldn't": "should not",
	"couldn't":  "could not",
	"mustn't":   "must not",
	"i'm":       "i am",
	"i've":      "i have",
	"i'd":       "i would",
	"i'll":      "i will",
	"you're":    "you are",
	"you've":    "you have",
	"you'd":     "you would",
	"you'll":    "you will",
	"it's":      "it is",
	"we're":     "we are",
	"we've":     "we have",
	"we'll":     "we will",
	"they're":   "they are",
	"they've":   "they have",
	"they'll":   "they will",
}

func expandContractions(text string) string {
	lower := strings.ToLower(text)
	for contraction, expansion := range contractions {
		lower = strings.ReplaceAll(lower, contraction, expansion)
	}
	if len(text) > 0 && unicode.IsUpper(rune(text[0])) {
		runes := []rune(lower)
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		return string(runes)
	}
	return lower
}

var onesWords = []string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tensWords = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

var scaleWords = []string{"", "thousand", "million", "billion", "trillion"}

func numberToWords(n int64) string {
	if n == 0 {
		return "zero"
	}

	negative := false
	if n < 0 {
		negative = true
		n = -n
	}

	var parts []string
	scaleIndex := 0

	for n > 0 {
		chunk := n % 1000
		if chunk > 0 {
			chunkWords := chunkToWords(int(chunk))
			if scaleIndex > 0 && scaleIndex < len(scaleWords) {
				chunkWords += " " + scaleWords[scaleIndex]
			}
			parts = append([]string{chunkWords}, parts...)
		}
		n /= 1000
		scaleIndex++
	}

	result := strings.Join(parts, " ")
	if negative {
		result = "negative " + result
	}
	return result
}

func chunkToWords(n int) string {
	if n == 0 {
		return ""
	}
	if n < 20 {
		return onesWords[n]
	}
	if n < 100 {
		tens := tensWords[n/10]
		ones := n % 10
		if ones == 0 {
			return tens
		}
		return tens + " " + onesWords[ones]
	}
	hundreds := onesWords[n/100] + " hundred"
	remainder := n % 100
	if remainder == 0 {
		return hundreds
	}
	return hundreds + " " + chunkToWords(remainder)
}

var numberRe = regexp.MustCompile(`\b(\d{1,15})\b`)

func expandNumbers(text string) string {
	return numberRe.ReplaceAllStringFunc(text, func(match string) string {
		var n int64
		for _, c := range match {
			n = n*10 + int64(c-'0')
		}
		return numberToWords(n)
	})
}
