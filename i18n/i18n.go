// Package i18n translates locgen's own user-facing messages.
//
// Catalogs are gettext PO files embedded from locales/{lang}/LC_MESSAGES/locgen.po
// and read with gotext. Messages without a translation are returned as is.
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed all:locales
var locales embed.FS

// domain is the gettext domain of locgen's catalogs.
const domain = "locgen"

// EnvLang overrides the language detected from the locale variables.
const EnvLang = "LOCGEN_LANG"

var catalog *gotext.Locale

// Init loads the catalog for lang, or for the environment's language when
// lang is empty, and returns the language used.
func Init(lang string) string {
	if lang == "" {
		lang = detectLanguage()
	}

	catalog = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	catalog.AddDomain(domain)
	catalog.SetDomain(domain)
	return lang
}

// T translates msgid.
func T(msgid string) string {
	if catalog == nil {
		return msgid
	}
	return catalog.Get(msgid)
}

// Tf translates format and then formats it with args.
func Tf(format string, args ...any) string {
	return fmt.Sprintf(T(format), args...)
}

// detectLanguage follows GNU gettext: LANGUAGE > LC_ALL > LC_MESSAGES > LANG,
// with LOCGEN_LANG taking precedence over all of them.
func detectLanguage() string {
	for _, env := range []string{EnvLang, "LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// "ru_RU.UTF-8@euro" -> "ru_RU"
		if idx := strings.IndexAny(val, ".@"); idx >= 0 {
			val = val[:idx]
		}
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		return val
	}
	return "en"
}
