package props

import (
	"fmt"
	"strings"

	jj "github.com/cloudfoundry/jibber_jabber"
	"golang.org/x/text/language"
)

// ScriptsForLocale returns the scripts used to write the language of a locale,
// e.g. [Katakana Hiragana Han] for "ja" or [Cyrillic] for "ru-RU". Locales may be
// given as IETF tags ("zh-Hant") or in ICU form ("ko_KR"). A script name or code
// may be given instead of a locale, yielding just this script.
func ScriptsForLocale(locale string) ([]Script, error) {
	if s, err := ScriptByName(locale); err == nil && s != Unknown {
		return []Script{s}, nil
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return nil, fmt.Errorf("%w: locale %q", ErrUnknownValue, locale)
	}
	script, confidence := tag.Script()
	if confidence == language.No {
		return nil, fmt.Errorf("%w: no script for locale %q", ErrUnknownValue, locale)
	}
	T().P("locale", locale).Debugf("locale is written in script %s", script)
	var codes []string
	switch code := script.String(); code {
	case "Jpan":
		codes = []string{"Kana", "Hira", "Hani"}
	case "Kore":
		codes = []string{"Hang", "Hani"}
	case "Hans", "Hant", "Hanb":
		codes = []string{"Hani"}
	default:
		codes = []string{code}
	}
	scripts := make([]Script, 0, len(codes))
	for _, code := range codes {
		s, err := ScriptByName(code)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, s)
	}
	return scripts, nil
}

// LocaleFromEnvironment returns the user's locale as an IETF tag. If the locale
// cannot be detected or is not a valid language tag, "en-US" is returned.
func LocaleFromEnvironment() string {
	userLocale, err := jj.DetectIETF()
	if err == nil {
		_, err = language.Parse(userLocale) // "C" or "POSIX" are no language tags
	}
	if err != nil {
		T().Errorf(err.Error())
		userLocale = "en-US"
		T().Infof("props sets default user locale %v", userLocale)
	} else {
		T().Infof("props detected user locale %v", userLocale)
	}
	return userLocale
}
