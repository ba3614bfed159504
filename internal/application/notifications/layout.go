package notifications

import (
	"fmt"
	"html"
	"strings"
	"time"
)

const (
	themeAccent  = "#9C6B4E"
	themeText    = "#2F2A26"
	themeBgBody  = "#F6F1EC"
	themeWhite   = "#FFFFFF"
	themeDivider = "#E8DED5"
)

// EmailLayout wraps a plain-text body in the branded HTML shell. Blank lines split paragraphs.
func EmailLayout(brand string, msg EmailMessage) string {
	var content strings.Builder
	if msg.ImageURL != "" {
		fmt.Fprintf(&content, `<img src="%s" alt="" width="504" style="display:block;width:100%%;border-radius:6px;margin-bottom:24px;" />`, html.EscapeString(msg.ImageURL))
	}
	for _, para := range strings.Split(strings.ReplaceAll(msg.Body, "\r\n", "\n"), "\n\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		lines := strings.Split(html.EscapeString(para), "\n")
		fmt.Fprintf(&content, "<p>%s</p>\n", strings.Join(lines, "<br>"))
	}
	if msg.CTAURL != "" {
		cta := msg.CTA
		if cta == "" {
			cta = msg.CTAURL
		}
		fmt.Fprintf(&content, `<center><a href="%s" class="cta-button">%s</a></center>`, html.EscapeString(msg.CTAURL), html.EscapeString(cta))
	}

	lang := strings.ToLower(string(msg.Language))
	if lang == "" {
		lang = "es"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="%s">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <style>
    body { margin: 0; padding: 0; background-color: %s; }
    body, td, p, a { font-family: Georgia, 'Times New Roman', serif; color: %s; }
    .content-body p { margin: 0 0 20px 0; font-size: 16px; line-height: 1.6; }
    .cta-button { display: inline-block; background-color: %s; color: #ffffff !important; padding: 12px 32px; text-decoration: none; border-radius: 24px; font-size: 15px; margin: 12px 0; }
    .footer-text { color: #8A7F76; font-size: 12px; }
  </style>
</head>
<body>
  <table role="presentation" width="100%%" cellspacing="0" cellpadding="0" style="background-color: %s;">
    <tr>
      <td align="center" style="padding: 40px 0;">
        <table role="presentation" width="600" cellspacing="0" cellpadding="0" style="width: 600px; background-color: %s; border-radius: 8px;">
          <tr><td class="content-body" style="padding: 48px;">%s</td></tr>
          <tr><td style="padding: 0 48px;"><div style="height: 1px; background-color: %s;"></div></td></tr>
          <tr><td align="center" style="padding: 24px 48px 32px 48px;"><p class="footer-text">&copy; %d %s</p></td></tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`,
		lang, html.EscapeString(msg.Subject), themeBgBody, themeText, themeAccent,
		themeBgBody, themeWhite, content.String(), themeDivider, time.Now().Year(), html.EscapeString(brand))
}
