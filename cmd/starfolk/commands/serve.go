package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"starfolk-client/internal/app"
	"starfolk-client/internal/auth"
	"starfolk-client/internal/config"
	"starfolk-client/internal/database"
	"starfolk-client/internal/handlers"
	"starfolk-client/internal/realtime"
	"starfolk-client/internal/routes"
	"starfolk-client/internal/session"
	"starfolk-client/internal/tui"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// serve runs handler on addr until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.With(zerr.Wrap(err, "serving"), "addr", addr)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		logger.Info("server stopping", "addr", addr)
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (c *CLI) ginMode() {
	if strings.EqualFold(c.cfg.Log.Level, "debug") {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}

func (c *CLI) newBrowseCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the terminal browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app.New(c.newService(), c.appOptions(path))
			return tui.Run(cmd.Context(), a)
		},
	}
	cmd.Flags().StringVar(&path, "path", "/", "location to open at, e.g. /character/1")
	return cmd
}

func (c *CLI) newGatewayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gateway",
		Short: "Serve sessions of the application core over HTTP and websockets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.cfg.ValidateGatewaySecret(); err != nil {
				return err
			}
			c.ginMode()
			gw := c.cfg.Gateway
			if gw.Secret == config.DevelopmentSecret {
				c.logger.Warn("gateway tokens are signed with the development secret", "env", config.EnvSessionSecret)
			}

			// one facade and request cache shared by every session
			svc := c.newService()
			registry := session.NewRegistry(func() *app.App {
				return app.New(svc, c.appOptions("/"))
			}, gw.SessionTTL, c.logger)
			defer registry.Close()

			signer := auth.NewSigner(gw.Secret, gw.Issuer, gw.Audience, gw.SessionTTL)
			gateway := handlers.NewGateway(registry, signer, realtime.NewHub(), c.logger)
			router := routes.SetupGatewayRoutes(gateway, signer, registry)

			c.logger.Info("gateway configured", "api_base", c.cfg.API.BaseURL, "session_ttl", gw.SessionTTL.String())
			return serve(cmd.Context(), gw.Listen, router, c.logger)
		},
	}
}

func (c *CLI) newStubCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stub",
		Short: "Serve a local catalog seeded with demo characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.ginMode()
			st := c.cfg.Stub

			db, err := database.Open(st.Database, strings.EqualFold(c.cfg.Log.Level, "debug"))
			if err != nil {
				return err
			}
			n, err := database.Seed(db)
			if err != nil {
				return err
			}
			if n > 0 {
				c.logger.Info("database seeded", "characters", n)
			}

			router := routes.SetupStubRoutes(db, st.Latency)
			return serve(cmd.Context(), st.Listen, router, c.logger)
		},
	}
}

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "starfolk version %s (commit: %s, date: %s)\n", Version, Commit, Date)
		},
	}
}
