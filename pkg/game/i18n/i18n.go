// Package i18n installs the embedded translation catalogues for gotext.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var catalogues embed.FS

// DefaultLanguage is used when no catalogue matches.
const DefaultLanguage = "en"

// Languages lists the embedded catalogues.
func Languages() []string {
	entries, _ := catalogues.ReadDir("locales")
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".po"))
	}
	return langs
}

// Init makes lang the global gotext locale. Region suffixes are dropped, so
// "nl_BE" and "nl-BE" both select "nl".
func Init(lang string) error {
	lang = normalize(lang)

	data, err := catalogues.ReadFile("locales/" + lang + ".po")
	if err != nil {
		return fmt.Errorf("language %q: no catalogue", lang)
	}

	po := gotext.NewPo()
	po.Parse(data)

	locale := gotext.NewLocale("locales", lang)
	locale.AddTranslator("default", po)
	gotext.SetStorage(locale)
	return nil
}

func normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "_-."); i >= 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}
