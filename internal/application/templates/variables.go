package templates

import (
	"strings"

	"wedding-backend/internal/domain"
)

// MagicLink is the guest's RSVP URL.
func MagicLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/rsvp/" + token
}

// VariablesFor collects the placeholder values for one family of a wedding.
func VariablesFor(w *domain.Wedding, f *domain.Family, baseURL string) Variables {
	v := Variables{
		FamilyName:     f.Name,
		CoupleNames:    w.CoupleNames,
		WeddingDate:    w.WeddingDate,
		WeddingTime:    w.WeddingTime,
		Location:       w.Location,
		MagicLink:      MagicLink(baseURL, f.MagicToken),
		RSVPCutoffDate: w.RSVPCutoffDate,
	}
	if f.ReferenceCode != nil {
		v.ReferenceCode = *f.ReferenceCode
	}
	return v
}
