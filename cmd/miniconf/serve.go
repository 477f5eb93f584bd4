package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"impractical.co/miniconf/internal/logging"
	"impractical.co/miniconf/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site for preview, reloading it when its files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := logging.FromContext(ctx)

			static, err := a.staticFS()
			if err != nil {
				return err
			}
			srv, err := server.New(ctx, server.Options{
				Data:      a.dataFS(),
				Templates: a.templateFS(),
				Static:    static,
			})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()
			if a.cfg.Watch {
				dirs := []string{a.cfg.DataDir}
				if a.cfg.TemplateDir != "" {
					dirs = append(dirs, a.cfg.TemplateDir)
				}
				go func() {
					if err := srv.Watch(ctx, dirs...); err != nil {
						log.ErrorContext(ctx, "error watching for changes", "error", err)
					}
				}()
			}

			httpServer := &http.Server{
				Addr:              a.cfg.Addr,
				Handler:           srv,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errs := make(chan error, 1)
			go func() {
				errs <- httpServer.ListenAndServe()
			}()
			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s/\n", a.cfg.Addr)

			select {
			case err := <-errs:
				return fmt.Errorf("error serving: %w", err)
			case <-ctx.Done():
			}
			shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer shutdownCancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("error shutting down: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "", "address to listen on")
	cmd.Flags().Bool("watch", true, "reload the site when its data or templates change")
	return cmd
}
