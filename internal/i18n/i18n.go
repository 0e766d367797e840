// Package i18n loads the embedded translations and resolves the display locale.
//
// Translation files are nested JSON documents; a nested key is addressed by joining its
// path with dots, so {"modlist": {"fetching_msg": "..."}} is "modlist.fetching_msg".
// Every locale falls back to en-CA for keys it does not translate.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Locale is one of the fully translated locales
type Locale string

const (
	LocaleEnCA Locale = "en-CA"
	LocaleEnUS Locale = "en-US"
	LocaleES   Locale = "es"
	LocaleFrFR Locale = "fr-FR"
)

// DefaultLocale holds the base keys every other locale falls back to
const DefaultLocale = LocaleEnCA

// Locales lists the supported locales in preference order
var Locales = []Locale{LocaleEnCA, LocaleEnUS, LocaleES, LocaleFrFR}

//go:embed locales/*.json
var localeFS embed.FS

// LocaleNames maps each locale to its name in its own language
var LocaleNames = mustLoadNames()

var bundle = mustLoadBundle()

// Tag returns the language tag of l
func (l Locale) Tag() language.Tag {
	return language.Make(string(l))
}

// Name returns the display name of l
func (l Locale) Name() string {
	if name, ok := LocaleNames[l]; ok {
		return name
	}
	return string(l)
}

// IsSupported reports whether l has a translation file
func IsSupported(l Locale) bool {
	for _, s := range Locales {
		if s == l {
			return true
		}
	}
	return false
}

// ResolveLocale picks the supported locale that best fits the preferred list.
// Each preferred locale is matched on its two-letter language; an exact match ends the
// search, otherwise the last locale sharing the language is kept and the next preference
// is tried.
func ResolveLocale(preferred []string) Locale {
	final := DefaultLocale

	for _, p := range preferred {
		p = normalize(p)
		if len(p) < 2 {
			continue
		}
		lang := p[:2]
		found := false

		for _, l := range Locales {
			if !strings.HasPrefix(string(l), lang) {
				continue
			}
			final = l
			if string(l) == p {
				found = true
				break
			}
		}

		if found {
			break
		}
	}

	return final
}

// PreferredFromEnv reads the user's locale from the POSIX environment variables
func PreferredFromEnv() []string {
	var out []string
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		out = append(out, normalize(v))
	}
	return out
}

// normalize turns "fr_FR.UTF-8" into "fr-FR"
func normalize(s string) string {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if tag, err := language.Parse(s); err == nil {
		return tag.String()
	}
	return s
}

// Translator renders messages for one locale
type Translator struct {
	locale    Locale
	localizer *goi18n.Localizer
	fallback  *goi18n.Localizer
}

// NewTranslator creates a translator; unsupported locales use the default locale
func NewTranslator(l Locale) *Translator {
	if !IsSupported(l) {
		l = DefaultLocale
	}
	return &Translator{
		locale:    l,
		localizer: goi18n.NewLocalizer(bundle, string(l)),
		fallback:  goi18n.NewLocalizer(bundle, string(DefaultLocale)),
	}
}

// Locale returns the translator's locale
func (t *Translator) Locale() Locale {
	return t.locale
}

// T renders key with the given template data. Unknown keys render as the key itself.
func (t *Translator) T(key string, data map[string]any) string {
	cfg := &goi18n.LocalizeConfig{MessageID: key, TemplateData: data}

	msg, err := t.localizer.Localize(cfg)
	if err == nil {
		return msg
	}
	if msg, err = t.fallback.Localize(cfg); err == nil {
		return msg
	}
	return key
}

// Tf renders key with a single Count value
func (t *Translator) Tf(key string, count any) string {
	return t.T(key, map[string]any{"Count": count})
}

func mustLoadBundle() *goi18n.Bundle {
	b := goi18n.NewBundle(DefaultLocale.Tag())
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, l := range Locales {
		file := path.Join("locales", string(l)+".json")
		data, err := localeFS.ReadFile(file)
		if err != nil {
			panic(fmt.Sprintf("missing translations for %s: %v", l, err))
		}
		if _, err := b.ParseMessageFileBytes(data, file); err != nil {
			panic(fmt.Sprintf("broken translations for %s: %v", l, err))
		}
	}

	return b
}

func mustLoadNames() map[Locale]string {
	data, err := localeFS.ReadFile("locales/localeNames.json")
	if err != nil {
		panic(fmt.Sprintf("missing locale names: %v", err))
	}
	names := make(map[Locale]string)
	if err := json.Unmarshal(data, &names); err != nil {
		panic(fmt.Sprintf("broken locale names: %v", err))
	}
	return names
}

// SortedLocales returns the supported locales ordered by display name
func SortedLocales() []Locale {
	out := make([]Locale, len(Locales))
	copy(out, Locales)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})
	return out
}
