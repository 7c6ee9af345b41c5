package gallery

import (
	"path"
	"regexp"
	"strings"
)

// noiseTokens are editing-workflow words that carry no meaning for a
// customer-facing title.
var noiseTokens = map[string]bool{
	"final":    true,
	"draft":    true,
	"copy":     true,
	"edit":     true,
	"edited":   true,
	"export":   true,
	"render":   true,
	"untitled": true,
}

var (
	versionToken    = regexp.MustCompile(`^(?i)(v|ver|rev)\d+$`)
	multiDigitToken = regexp.MustCompile(`^\d{2,}$`)
	separators      = regexp.MustCompile(`[_\-.+]+`)
)

// FriendlyName derives a display title from a raw filename: drop the
// extension, turn separators into spaces, strip noise tokens, version
// markers and bare multi-digit numbers, then title-case what is left.
// All-uppercase words are treated as acronyms and kept as-is. Falls
// back to the cleaned raw name when everything was noise.
func FriendlyName(filename string) string {
	base := strings.TrimSuffix(filename, path.Ext(filename))
	spaced := separators.ReplaceAllString(base, " ")

	var kept []string
	for _, word := range strings.Fields(spaced) {
		lower := strings.ToLower(word)
		if noiseTokens[lower] || versionToken.MatchString(word) || multiDigitToken.MatchString(word) {
			continue
		}
		kept = append(kept, titleWord(word))
	}

	if len(kept) == 0 {
		return strings.TrimSpace(spaced)
	}
	return strings.Join(kept, " ")
}

func titleWord(word string) string {
	if word == strings.ToUpper(word) && len(word) > 1 {
		// Acronyms like HVAC or LED stay uppercase.
		return word
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
