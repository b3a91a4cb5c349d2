package i18n

import "golang.org/x/text/language"

// Negotiate picks the best supported locale for an Accept-Language header,
// falling back to the default locale when nothing matches.
func (s *Set) Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return s.defaultLocale
	}

	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return s.defaultLocale
	}

	_, idx, confidence := s.matcher.Match(prefs...)
	if confidence == language.No || idx < 0 || idx >= len(s.locales) {
		return s.defaultLocale
	}
	return s.locales[idx]
}
