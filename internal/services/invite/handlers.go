package invite

import (
	"errors"
	"io/fs"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/backend"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/i18n"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/identifier"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/platform/httpx"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/platform/requestmeta"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/projecttype"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/qrcode"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/routepath"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/templates"
)

const (
	projectTypeParam = "projectType"
	idParam          = "id"
)

type handlers struct {
	service      *Service
	resolver     *i18n.Resolver
	qr           *qrcode.Generator
	assets       fs.FS
	fallbackURL  string
	rootRedirect string
	schemePolicy requestmeta.SchemePolicy
	stores       templates.StoreLinks
	logger       *log.Logger
}

func (h handlers) register(mux *http.ServeMux) {
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleRoot)
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	mux.HandleFunc(http.MethodGet+" "+routepath.InvitePattern, h.handleInvite)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIPattern, h.handleMetadata)
	mux.HandleFunc(http.MethodGet+" "+routepath.QRPattern, h.handleQR)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppleAppSiteAssociation, h.handleWellKnown)
	mux.HandleFunc(http.MethodGet+" "+routepath.AssetLinks, h.handleWellKnown)
	mux.HandleFunc(routepath.Root, h.handleFallthrough)
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	if h.rootRedirect != "" {
		http.Redirect(w, r, h.rootRedirect, http.StatusMovedPermanently)
		return
	}
	lang := i18n.DetectLanguage(r)
	h.renderPage(w, r, templates.Page{
		Lang:   lang,
		Copy:   h.resolver.Resolve(lang, ""),
		Stores: h.stores,
	})
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteText(w, http.StatusOK, "ok")
}

func (h handlers) handleInvite(w http.ResponseWriter, r *http.Request) {
	projectType := strings.TrimSpace(r.PathValue(projectTypeParam))
	id := identifier.Normalize(r.PathValue(idParam))

	if projecttype.IsDeprecated(projectType) {
		target := routepath.Invite(projecttype.Canonical, id)
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		h.logger.Printf("invite deprecated project_type=%s id=%s redirect=%s", projectType, id, target)
		http.Redirect(w, r, target, http.StatusMovedPermanently)
		return
	}
	if !h.service.Supports(projectType) {
		h.logger.Printf("invite unsupported project_type=%s id=%s", projectType, id)
		h.notFound(w, r, "Project type not supported")
		return
	}
	if id == "" {
		h.notFound(w, r, "Project not found")
		return
	}
	// Unknown existence still serves the page.
	if h.service.CheckExistence(httpx.RequestContext(r), projectType, id) == backend.Missing {
		h.logger.Printf("invite missing project_type=%s id=%s fallback=%s", projectType, id, h.fallbackURL)
		h.notFound(w, r, "Project not found")
		return
	}

	lang := i18n.DetectLanguage(r)
	h.renderPage(w, r, templates.Page{
		Lang:    lang,
		Copy:    h.resolver.Resolve(lang, projectType),
		APIPath: routepath.API(projectType, id),
		QRPath:  routepath.QR(projectType, id),
		Stores:  h.stores,
	})
}

func (h handlers) handleMetadata(w http.ResponseWriter, r *http.Request) {
	projectType := strings.TrimSpace(r.PathValue(projectTypeParam))
	id := identifier.Normalize(r.PathValue(idParam))

	result := h.service.FetchMetadata(httpx.RequestContext(r), projectType, id)
	if result.Redirect {
		http.Redirect(w, r, h.fallbackURL, http.StatusMovedPermanently)
		return
	}
	if err := httpx.WriteJSON(w, result.StatusCode, result.Body); err != nil {
		h.logger.Printf("write metadata response id=%s error=%v", id, err)
	}
}

func (h handlers) handleQR(w http.ResponseWriter, r *http.Request) {
	projectType := projecttype.CanonicalPublic(strings.TrimSpace(r.PathValue(projectTypeParam)))
	id := identifier.Normalize(r.PathValue(idParam))

	inviteURL := requestmeta.BaseURL(r, h.schemePolicy) + routepath.Invite(projectType, id)
	png, err := h.qr.Generate(inviteURL)
	if err != nil {
		h.logger.Printf("qr generation failed url=%s error=%v", inviteURL, err)
		_ = httpx.WriteText(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}
	httpx.SetNoCache(w)
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.Printf("write qr response url=%s error=%v", inviteURL, err)
	}
}

func (h handlers) handleWellKnown(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	data, err := fs.ReadFile(h.assets, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.logger.Printf("read well-known file path=%s error=%v", r.URL.Path, err)
		}
		h.notFound(w, r, "Not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleFallthrough serves public files for GET and HEAD and treats every
// other unmatched request as not found.
func (h handlers) handleFallthrough(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name != "" && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		if info, err := fs.Stat(h.assets, name); err == nil && !info.IsDir() {
			http.ServeFileFS(w, r, h.assets, name)
			return
		}
	}
	h.notFound(w, r, "Not found")
}

func (h handlers) renderPage(w http.ResponseWriter, r *http.Request, page templates.Page) {
	templ.Handler(templates.InvitePage(page), templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			h.logger.Printf("render invite page path=%s error=%v", r.URL.Path, err)
			_ = httpx.WriteText(w, http.StatusInternalServerError, "Internal server error")
		})
	})).ServeHTTP(w, r)
}

// notFound redirects to the fallback in production and answers 404 otherwise.
func (h handlers) notFound(w http.ResponseWriter, r *http.Request, message string) {
	if h.fallbackURL != "" {
		http.Redirect(w, r, h.fallbackURL, http.StatusMovedPermanently)
		return
	}
	_ = httpx.WriteText(w, http.StatusNotFound, message)
}
