// Package invite hosts the invitation landing service: localized invitation
// pages, the project metadata proxy, QR images and app link files.
package invite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/ccotek/cocoti-invitation-page/internal/platform/i18n/catalog"
	"github.com/ccotek/cocoti-invitation-page/internal/platform/timeouts"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/backend"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/i18n"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/platform/httpx"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/platform/observability"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/platform/requestmeta"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/projecttype"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/qrcode"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/routepath"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/static"
)

// Server hosts the invitation HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler with all invitation routes.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.logger()

	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	records, err := backend.NewClient(backend.Options{
		BaseURL:   cfg.APIURL,
		Transport: cfg.BackendTransport,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init backend client: %w", err)
	}
	service, err := NewService(ServiceOptions{
		Records:     records,
		Registry:    projecttype.DefaultRegistry(cfg.UsePublicEndpoint),
		FallbackURL: cfg.FallbackURL(),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init invite service: %w", err)
	}
	qr, err := qrcode.NewGenerator(qrcode.Options{CacheSize: cfg.QRCacheSize})
	if err != nil {
		return nil, fmt.Errorf("init qr generator: %w", err)
	}
	assets, err := static.FS(cfg.PublicDir)
	if err != nil {
		return nil, fmt.Errorf("open public assets: %w", err)
	}

	for _, name := range []string{routepath.AppleAppSiteAssociation, routepath.AssetLinks} {
		data, err := fs.ReadFile(assets, strings.TrimPrefix(name, "/"))
		if err == nil && bytes.Contains(data, []byte(static.PlaceholderMarker)) {
			logger.Printf("app link file has placeholder values path=%s public_dir=%q", name, cfg.PublicDir)
		}
	}

	resolver := i18n.NewResolver(bundle, logger)
	logger.Printf("translations loaded locales=%v project_types=%v", bundle.Locales(), resolver.SupportedProjectTypes())

	h := handlers{
		service:      service,
		resolver:     resolver,
		qr:           qr,
		assets:       assets,
		fallbackURL:  cfg.FallbackURL(),
		rootRedirect: strings.TrimSpace(cfg.RootRedirectURL),
		schemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		stores:       cfg.Stores,
		logger:       logger,
	}
	mux := http.NewServeMux()
	h.register(mux)
	return httpx.Chain(mux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
	), nil
}

// NewServer validates config and constructs an invitation server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose invite handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("invite server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown invite http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve invite http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
