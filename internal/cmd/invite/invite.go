// Package invite parses invitation service configuration and launches the
// HTTP server.
package invite

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"

	entrypoint "github.com/ccotek/cocoti-invitation-page/internal/platform/cmd"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/templates"
)

// Config holds invitation command configuration.
type Config struct {
	Port                string `env:"PORT"                  envDefault:"3001"`
	APIURL              string `env:"API_URL"               envDefault:"http://localhost:8001/api/v1"`
	RootRedirectURL     string `env:"ROOT_REDIRECT_URL"`
	Environment         string `env:"ENVIRONMENT"`
	PublicDir           string `env:"PUBLIC_DIR"`
	APIPublicEndpoint   bool   `env:"API_PUBLIC_ENDPOINT"   envDefault:"true"`
	TrustForwardedProto bool   `env:"TRUST_FORWARDED_PROTO" envDefault:"false"`
	QRCacheSize         int    `env:"QR_CACHE_SIZE"         envDefault:"256"`
	AppStoreURL         string `env:"APP_STORE_URL"`
	PlayStoreURL        string `env:"PLAY_STORE_URL"        envDefault:"https://play.google.com/store/apps/details?id=com.cocoti.app"`
}

// ParseConfig loads .env and the process environment into a Config.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsDevelopment reports whether ENVIRONMENT selects development mode.
func (c Config) IsDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "dev", "development":
		return true
	default:
		return false
	}
}

// HTTPAddr returns the listen address for Port.
func (c Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if strings.Contains(port, ":") {
		return port
	}
	return net.JoinHostPort("", port)
}

func (c Config) serviceConfig() invite.Config {
	return invite.Config{
		HTTPAddr:            c.HTTPAddr(),
		APIURL:              c.APIURL,
		RootRedirectURL:     c.RootRedirectURL,
		Development:         c.IsDevelopment(),
		PublicDir:           c.PublicDir,
		UsePublicEndpoint:   c.APIPublicEndpoint,
		TrustForwardedProto: c.TrustForwardedProto,
		QRCacheSize:         c.QRCacheSize,
		Stores: templates.StoreLinks{
			AppStore:   c.AppStoreURL,
			GooglePlay: c.PlayStoreURL,
		},
	}
}

// Run starts the invitation server and blocks until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceInvite, func(ctx context.Context) error {
		server, err := invite.NewServer(ctx, cfg.serviceConfig())
		if err != nil {
			return fmt.Errorf("init invite server: %w", err)
		}
		defer server.Close()

		mode := "production"
		if cfg.IsDevelopment() {
			mode = "development"
		}
		log.Printf("invite listening addr=%s mode=%s api_url=%s public_endpoint=%t", server.Addr(), mode, cfg.APIURL, cfg.APIPublicEndpoint)
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve invite: %w", err)
		}
		return nil
	})
}
