package templates

import (
	"regexp"
	"time"

	"wedding-backend/internal/domain"

	"github.com/goodsign/monday"
)

var placeholderRe = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// Variables are the per-family values a template may reference.
type Variables struct {
	FamilyName     string
	CoupleNames    string
	WeddingDate    time.Time
	WeddingTime    string
	Location       string
	MagicLink      string
	RSVPCutoffDate time.Time
	ReferenceCode  string
}

// Values flattens v into placeholder values, formatting dates for lang.
func (v Variables) Values(lang domain.Language) map[string]string {
	return map[string]string{
		"familyName":     v.FamilyName,
		"coupleNames":    v.CoupleNames,
		"weddingDate":    FormatDate(v.WeddingDate, lang),
		"weddingTime":    v.WeddingTime,
		"location":       v.Location,
		"magicLink":      v.MagicLink,
		"rsvpCutoffDate": FormatDate(v.RSVPCutoffDate, lang),
		"referenceCode":  v.ReferenceCode,
	}
}

// Render replaces {{name}} tokens found in values in a single pass. Unknown tokens are left as
// written; substituted values are never re-scanned.
func Render(tmpl string, values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(tok string) string {
		name := placeholderRe.FindStringSubmatch(tok)[1]
		if val, ok := values[name]; ok {
			return val
		}
		return tok
	})
}

type dateFormat struct {
	layout string
	locale monday.Locale
}

var dateFormats = map[domain.Language]dateFormat{
	domain.LanguageES: {"2 de January de 2006", monday.LocaleEsES},
	domain.LanguageEN: {"January 2, 2006", monday.LocaleEnUS},
	domain.LanguageFR: {"2 January 2006", monday.LocaleFrFR},
	domain.LanguageIT: {"2 January 2006", monday.LocaleItIT},
	domain.LanguageDE: {"2. January 2006", monday.LocaleDeDE},
}

// FormatDate renders t as a long date in lang ("14 de junio de 2025", "June 14, 2025").
// Unknown languages use Spanish.
func FormatDate(t time.Time, lang domain.Language) string {
	if t.IsZero() {
		return ""
	}
	f, ok := dateFormats[lang]
	if !ok {
		f = dateFormats[domain.LanguageES]
	}
	return monday.Format(t, f.layout, f.locale)
}
