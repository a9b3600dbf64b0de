// Package langpref resolves the active interface/response language from four
// ordered sources. URL intent (arriving from a localized bot button) always
// beats stored preference; stored preference beats whatever the last session
// left in the local envelope.
package langpref

import (
	"strings"

	"finance-advisor/api/models"
)

// Sources carries the candidate language inputs available at launch.
type Sources struct {
	// URLParam is the optional language code from the page query parameter
	// set by the messaging-bot deep link.
	URLParam string
	// CachedUser is the previously cached authenticated-user record, if any.
	CachedUser *models.AuthUser
	// CachedState is the previously cached local envelope, if any.
	CachedState *models.PersistedState
}

// Resolve evaluates the sources in strict precedence order, first match wins:
// URL parameter, cached preferred_lang, cached envelope lang, default.
func Resolve(src Sources) models.Language {
	if l, ok := Normalize(src.URLParam); ok {
		return l
	}
	if src.CachedUser != nil {
		if l, ok := Normalize(string(src.CachedUser.PreferredLang)); ok {
			return l
		}
	}
	if src.CachedState != nil {
		if l, ok := Normalize(string(src.CachedState.Lang)); ok {
			return l
		}
	}
	return models.DefaultLanguage
}

// ApplyRemote decides whether a profile-embedded language returned by a
// successful remote fetch may replace the currently resolved one. Explicit
// navigation intent (a URL parameter) is never silently overridden.
func ApplyRemote(current models.Language, remote models.Language, hadURLParam bool) models.Language {
	if hadURLParam {
		return current
	}
	if l, ok := Normalize(string(remote)); ok {
		return l
	}
	return current
}

// Normalize maps a loosely cased code ("ru", "Uz") onto a supported language.
func Normalize(code string) (models.Language, bool) {
	l := models.Language(strings.ToUpper(strings.TrimSpace(code)))
	if models.IsSupportedLanguage(l) {
		return l, true
	}
	return "", false
}
