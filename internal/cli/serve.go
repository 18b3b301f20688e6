package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	adapthttp "fitmetrics/internal/adapter/http"
	"fitmetrics/internal/config"
)

// localUsername owns all data when authentication is disabled.
const localUsername = "local"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and serve the web app",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, c *config.Config) error {
	st, closeStore, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	svc := buildServices(c, st)
	srv := adapthttp.New(svc, c.WebDir).WithCORS(c.CORS.AllowedOrigins)

	if c.Auth.Disabled {
		user, err := svc.Auth.ValidateForwardAuth(ctx, localUsername)
		if err != nil {
			return fmt.Errorf("provision local user: %w", err)
		}
		srv = srv.WithoutAuth(user)
		log.Printf("authentication disabled; all requests act as %q", localUsername)
	}

	if c.Auth.TrustForwardAuth {
		srv = srv.WithForwardAuth()
		log.Printf("trusting Remote-User header from reverse proxy")
	}

	if c.OIDC.Enabled() {
		provider, err := oidc.NewProvider(ctx, c.OIDC.Issuer)
		if err != nil {
			return fmt.Errorf("oidc provider: %w", err)
		}
		srv = srv.WithOIDC(adapthttp.OIDCConfig{
			Enabled:  true,
			Provider: provider,
			OAuth2Config: oauth2.Config{
				ClientID:     c.OIDC.ClientID,
				ClientSecret: c.OIDC.ClientSecret,
				RedirectURL:  c.OIDC.RedirectURL,
				Endpoint:     provider.Endpoint(),
				Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			},
		})
		log.Printf("sso enabled via %s", c.OIDC.Issuer)
	}

	httpSrv := &http.Server{
		Addr:              c.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (database: %s)", c.Addr, c.Database.Driver)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
