package invite

import (
	"log"
	"net/http"
	"strings"

	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/templates"
)

// Config defines startup inputs for the invitation service.
type Config struct {
	HTTPAddr string
	// APIURL is the backend API root.
	APIURL string
	// RootRedirectURL is the fallback destination for the root path and, in
	// production, for unknown projects and routes.
	RootRedirectURL string
	Development     bool
	// PublicDir overrides the embedded public assets when set.
	PublicDir string
	// UsePublicEndpoint reads projects through their unauthenticated variant.
	UsePublicEndpoint   bool
	TrustForwardedProto bool
	// QRCacheSize bounds memoized QR images. Zero disables the cache.
	QRCacheSize int
	Stores      templates.StoreLinks
	// BackendTransport overrides the outbound transport to the backend API.
	BackendTransport http.RoundTripper
	Logger           *log.Logger
}

// FallbackURL returns the redirect target used for unknown projects and
// routes, or "" when those requests should get a 404 instead.
func (c Config) FallbackURL() string {
	if c.Development {
		return ""
	}
	return strings.TrimSpace(c.RootRedirectURL)
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}
