package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/imagewall/internal/server"
	"github.com/matzehuels/imagewall/pkg/selection"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		delta   bool
		noWatch bool
	)
	flags := newSettingsFlags()

	cmd := &cobra.Command{
		Use:   "serve [points.json]",
		Short: "Serve a dataset over HTTP",
		Long: `Serve a dataset over HTTP.

Clients read the current frame as JSON, SVG or PNG, toggle points and clear
the selection. The dataset file is watched and reloaded when it changes;
toggles still in flight across a reload are discarded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := flags.settings(cmd)
			if err != nil {
				return err
			}
			policy := selection.PolicyRecompute
			if delta {
				policy = selection.PolicyDelta
			}
			srv, err := server.New(cmd.Context(), server.Config{
				DatasetPath: args[0],
				Settings:    settings,
				Viewport:    flags.viewport(),
				Selection:   flags.identities(),
				Policy:      policy,
				Runner:      c.newRunner(flags.noCache),
				Logger:      c.Logger,
			})
			if err != nil {
				return err
			}
			defer srv.Close()
			return c.runServe(cmd.Context(), srv, addr, !noWatch)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().BoolVar(&delta, "delta", false, "repaint only changed points on selection clears")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the dataset on change")

	return cmd
}

// runServe serves until ctx is cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, srv *server.Server, addr string, watch bool) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	})
	if watch {
		g.Go(func() error { return srv.Watch(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	printSuccess("Serving on %s", StyleLink.Render("http://"+addr))
	printDetail("GET /frame  GET /frame.svg  POST /points/{key}/toggle  DELETE /selection")
	if watch {
		printInfo("Watching dataset for changes")
	}

	err := g.Wait()
	if ctx.Err() != nil {
		printInfo("Server stopped")
		return nil
	}
	return err
}
