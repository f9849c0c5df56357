// Package i18n provides internationalization support for error messages.
package i18n

import (
	"bytes"
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

// BaseLocale is the fallback locale for every lookup.
const BaseLocale = "en-US"

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// catalogs is read-only after init.
var catalogs = map[string]*Catalog{
	enUSCatalog.locale: enUSCatalog,
	ptBRCatalog.locale: ptBRCatalog,
}

// GetCatalog returns the catalog that best matches locale. Unknown or
// malformed locales fall back to en-US.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}
	if c, ok := lookupCatalog(requested); ok {
		return c
	}
	if c, ok := lookupCatalog(matchLocale(requested)); ok {
		return c
	}
	c, _ := lookupCatalog(BaseLocale)
	return c
}

// matchLocale negotiates requested (a BCP 47 tag or Accept-Language value)
// against the registered catalogs.
func matchLocale(requested string) string {
	locales := make([]string, 0, len(catalogs))
	locales = append(locales, BaseLocale)
	for locale := range catalogs {
		if locale != BaseLocale {
			locales = append(locales, locale)
		}
	}

	tags := make([]language.Tag, 0, len(locales))
	names := make([]string, 0, len(locales))
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, locale)
	}
	if len(tags) == 0 {
		return BaseLocale
	}

	desired, _, err := language.ParseAcceptLanguage(requested)
	if err != nil || len(desired) == 0 {
		return BaseLocale
	}
	_, index, confidence := language.NewMatcher(tags).Match(desired...)
	if confidence == language.No {
		return BaseLocale
	}
	return names[index]
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

func lookupCatalog(locale string) (*Catalog, bool) {
	cat, ok := catalogs[locale]
	return cat, ok
}
