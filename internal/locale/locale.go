// Package locale canonicalizes language tags and folds text for
// language-insensitive matching.
package locale

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidLanguage is returned for tags that do not parse as BCP 47.
var ErrInvalidLanguage = errors.New("invalid language")

// Default is the language used when none is configured.
const Default = "en"

// Canonical parses lang as a BCP 47 tag and returns its canonical form,
// e.g. "pt_br" becomes "pt-BR". Empty and undetermined tags are rejected.
func Canonical(lang string) (string, error) {
	lang = strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if lang == "" {
		return "", fmt.Errorf("%w: empty tag", ErrInvalidLanguage)
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidLanguage, lang, err)
	}

	if tag == language.Und {
		return "", fmt.Errorf("%w %q: undetermined", ErrInvalidLanguage, lang)
	}

	return tag.String(), nil
}

// Base returns the base language of a canonical tag, e.g. "pt" for "pt-BR".
func Base(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}

	base, _ := tag.Base()

	return base.String()
}

// Fold lowercases s and strips diacritics, so that "Côte d'Ivoire" and
// "cote d'ivoire" compare equal.
func Fold(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
		cases.Fold(),
	)

	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}

	return out
}

// Contains reports whether the folded haystack contains the folded needle.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
