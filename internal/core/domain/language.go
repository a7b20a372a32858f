package domain

import "fmt"

// Language is the publication language of a dataset.
type Language string

const (
	// LanguageEnglish selects the English edition of a table.
	LanguageEnglish Language = "en"

	// LanguageFrench selects the French edition of a table.
	LanguageFrench Language = "fr"
)

// ParseLanguage converts a user-supplied language code.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageFrench:
		return LanguageFrench, nil
	default:
		return "", fmt.Errorf("%w: unknown language %q", ErrInvalidInput, s)
	}
}

// String returns the two-letter language code.
func (l Language) String() string {
	return string(l)
}

// ArchiveURL returns the download URL for a table's zipped CSV export.
// English archives carry an "-eng" suffix; other languages use the
// language code itself.
func (l Language) ArchiveURL(tableNumber string) string {
	if l == LanguageEnglish {
		return fmt.Sprintf("https://www150.statcan.gc.ca/n1/%s/tbl/csv/%s-eng.zip", l, tableNumber)
	}
	return fmt.Sprintf("https://www150.statcan.gc.ca/n1/%s/tbl/csv/%s-%s.zip", l, tableNumber, l)
}
