// Package slug provides URL-friendly slug generation from arbitrary titles.
package slug

import (
	"strings"
	"unicode"
)

// cyrillic maps Cyrillic runes to their ASCII transliteration. Titles in
// this system are frequently Russian, so the mapping has to be
// deterministic: the same title must always produce the same token.
var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "j", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "c", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
	// Ukrainian / Belarusian extras show up in titles occasionally.
	'є': "ye", 'і': "i", 'ї': "yi", 'ґ': "g", 'ў': "u",
}

// Normalize creates a URL-friendly slug from the given string.
// Example: "Запуск, день первый! 2026" → "zapusk-den-pervyj-2026"
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.Is(unicode.Cyrillic, r):
			b.WriteString(cyrillic[r])
		case r == ' ' || r == '-' || r == '_' || r == '\t':
			b.WriteByte('-')
		default:
			// Everything else (punctuation, emoji, other scripts) is dropped.
		}
	}

	return collapseHyphens(b.String())
}

// collapseHyphens squeezes runs of hyphens into one and trims the ends.
func collapseHyphens(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevHyphen := false
	for _, r := range s {
		if r == '-' {
			prevHyphen = true
			continue
		}
		if prevHyphen && b.Len() > 0 {
			b.WriteByte('-')
		}
		prevHyphen = false
		b.WriteRune(r)
	}
	return b.String()
}
