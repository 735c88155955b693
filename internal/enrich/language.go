package enrich

import (
	"regexp"
	"unicode"
)

// persianChars matches Arabic-script characters (used by Persian text).
var persianChars = regexp.MustCompile("[؀-ۿ]")

// GuessLanguage is a fast, offline language guesser:
// Arabic-script characters mean "fa", pure-ASCII text means "en",
// anything else is "unknown". It is deliberately crude; the callers
// only need the en / not-en distinction.
func GuessLanguage(text string) string {
	if persianChars.MatchString(text) {
		return "fa"
	}

	for _, r := range text {
		if r > unicode.MaxASCII {
			return "unknown"
		}
	}
	return "en"
}

// mostlyEnglish reports whether at least threshold of the letters in text
// are ASCII letters. Non-letter characters are ignored.
func mostlyEnglish(text string, threshold float64) bool {
	letters, ascii := 0, 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if r <= unicode.MaxASCII {
			ascii++
		}
	}
	if letters == 0 {
		return false
	}
	return float64(ascii)/float64(letters) >= threshold
}
