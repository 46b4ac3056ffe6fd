// Package routepath stores canonical HTTP paths for the invitation service.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root                    = "/"
	Health                  = "/up"
	InvitePrefix            = "/invite/"
	InvitePattern           = InvitePrefix + "{projectType}/{id}"
	APIPrefix               = "/api/"
	APIPattern              = APIPrefix + "{projectType}/{id}"
	QRPrefix                = "/qr/"
	QRPattern               = QRPrefix + "{projectType}/{id}"
	WellKnownPrefix         = "/.well-known/"
	AppleAppSiteAssociation = WellKnownPrefix + "apple-app-site-association"
	AssetLinks              = WellKnownPrefix + "assetlinks.json"
)

// Invite returns the invitation page path for a project.
func Invite(projectType, id string) string {
	return InvitePrefix + escapeSegment(projectType) + "/" + escapeSegment(id)
}

// API returns the metadata proxy path for a project.
func API(projectType, id string) string {
	return APIPrefix + escapeSegment(projectType) + "/" + escapeSegment(id)
}

// QR returns the QR image path for a project.
func QR(projectType, id string) string {
	return QRPrefix + escapeSegment(projectType) + "/" + escapeSegment(id)
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
