package locale

import "slices"

// Display languages supported by the site. Japanese is the default and
// the fallback for every multilingual field.
const (
	Japanese = "ja"
	English  = "en"
	Chinese  = "zh"
)

var Supported = []string{Japanese, English, Chinese}

func IsSupported(code string) bool {
	return slices.Contains(Supported, code)
}

// Normalize maps an arbitrary request value onto a supported locale,
// falling back to the configured default (or Japanese when unset).
func Normalize(code, fallback string) string {
	if IsSupported(code) {
		return code
	}

	if IsSupported(fallback) {
		return fallback
	}

	return Japanese
}

// Resolve picks the variant for the requested locale, falling back to
// the default locale's value when the requested one is empty.
func Resolve(code, ja, en, zh string) string {
	var value string

	switch code {
	case English:
		value = en
	case Chinese:
		value = zh
	default:
		value = ja
	}

	if value != "" {
		return value
	}

	return ja
}

// ResolveWithBase behaves like Resolve but prefers a non-localized base
// value over the default-locale fallback, matching how contact messages
// store the submitted text alongside its translations.
func ResolveWithBase(code, base, ja, en, zh string) string {
	var value string

	switch code {
	case English:
		value = en
	case Chinese:
		value = zh
	default:
		value = ja
	}

	if value != "" {
		return value
	}

	if base != "" {
		return base
	}

	return ja
}
