// Package templates renders the invitation landing page.
package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/i18n"
)

const (
	stylesheetPath = "/invite.css"
	scriptPath     = "/invite.js"
)

// StoreLinks holds the app download destinations. Empty links are not rendered.
type StoreLinks struct {
	AppStore   string
	GooglePlay string
}

// Page describes one invitation page render.
type Page struct {
	Lang i18n.Language
	Copy i18n.Entry
	// APIPath is the metadata endpoint the page script reads. Empty renders a
	// page without project details.
	APIPath string
	// QRPath is the QR image shown to desktop visitors. Empty hides it.
	QRPath string
	Stores StoreLinks
}

// InvitePage returns the full HTML document for page.
func InvitePage(page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var b strings.Builder
		lang := string(page.Lang)
		if lang == "" {
			lang = string(i18n.Default)
		}
		text := page.Copy

		b.WriteString("<!DOCTYPE html>\n")
		b.WriteString(`<html lang="` + templ.EscapeString(lang) + `">`)
		b.WriteString(`<head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString("<title>" + templ.EscapeString(text.Title) + "</title>")
		b.WriteString(`<meta name="description" content="` + templ.EscapeString(text.Subtitle) + `">`)
		b.WriteString(`<link rel="stylesheet" href="` + stylesheetPath + `">`)
		b.WriteString("</head><body>")

		b.WriteString(`<main id="invite" class="invite"`)
		if page.APIPath != "" {
			b.WriteString(` data-api="` + templ.EscapeString(page.APIPath) + `"`)
		}
		b.WriteString(` data-default-name="` + templ.EscapeString(text.DefaultName) + `">`)
		b.WriteString(`<span class="invite__badge">` + templ.EscapeString(text.Badge) + "</span>")
		b.WriteString(`<h1 class="invite__title">` + templ.EscapeString(text.Title) + "</h1>")

		name := text.DefaultName
		if page.APIPath != "" {
			name = text.Loading
		}
		b.WriteString(`<p id="invite-name" class="invite__name">` + templ.EscapeString(name) + "</p>")
		b.WriteString(`<p class="invite__subtitle">` + templ.EscapeString(text.Subtitle) + "</p>")

		if page.APIPath != "" {
			b.WriteString(`<div id="invite-stats" class="invite__stats" hidden>`)
			writeStat(&b, "invite-members", text.StatMembers)
			writeStat(&b, "invite-cycles", text.StatCycles)
			b.WriteString("</div>")
		}

		b.WriteString(`<div class="invite__downloads">`)
		writeStoreLink(&b, page.Stores.AppStore, text.DownloadIOS)
		writeStoreLink(&b, page.Stores.GooglePlay, text.DownloadAndroid)
		b.WriteString("</div>")

		if page.QRPath != "" {
			b.WriteString(`<figure class="invite__qr">`)
			b.WriteString(`<img src="` + templ.EscapeString(page.QRPath) + `" alt="` + templ.EscapeString(text.QRLabel) + `" width="180" height="180">`)
			b.WriteString(`<figcaption class="invite__qr-label">` + templ.EscapeString(text.QRLabel) + "</figcaption>")
			b.WriteString("</figure>")
		}
		b.WriteString("</main>")

		if page.APIPath != "" {
			b.WriteString(`<script src="` + scriptPath + `" defer></script>`)
		}
		b.WriteString("</body></html>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeStat(b *strings.Builder, id, label string) {
	b.WriteString("<div>")
	b.WriteString(`<span id="` + id + `" class="invite__stat-value">-</span>`)
	b.WriteString(`<span class="invite__stat-label">` + templ.EscapeString(label) + "</span>")
	b.WriteString("</div>")
}

func writeStoreLink(b *strings.Builder, href, label string) {
	href = strings.TrimSpace(href)
	if href == "" {
		return
	}
	b.WriteString(`<a class="invite__download" href="` + templ.EscapeString(string(templ.URL(href))) + `" rel="noopener">` + templ.EscapeString(label) + "</a>")
}
