package keys

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NameKey produces the canonical lookup key for a dex or player-facing name.
// Behavior: trims, case-folds, collapses inner whitespace and replaces it with
// a single dash ("Stealth  Rock" -> "stealth-rock"). Underscores count as
// spaces so config files may use either form.
func NameKey(name string) string {
	s := strings.ReplaceAll(strings.TrimSpace(name), "_", " ")
	parts := strings.Fields(cases.Fold().String(s))
	return strings.Join(parts, "-")
}

// DisplayName title-cases a loosely written name for messages
// ("thunder wave" -> "Thunder Wave").
func DisplayName(name string) string {
	s := strings.ReplaceAll(strings.TrimSpace(name), "_", " ")
	return cases.Title(language.English).String(strings.Join(strings.Fields(s), " "))
}
