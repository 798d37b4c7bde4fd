package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inkwell/app"
	"inkwell/app/database"
	"inkwell/app/routes"
)

const addrFlag = "addr"

func (c *cli) newServeCommand() *cobra.Command {
	flags := map[string]cobraflags.Flag{
		addrFlag: &cobraflags.StringFlag{
			Name:  addrFlag,
			Value: "",
			Usage: "Listen address, overrides server.addr",
		},
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and run the blog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr := flags[addrFlag].GetString(); addr != "" {
				c.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	a, err := app.New(c.cfg, c.log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			c.log.Warn("shutdown", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:         c.cfg.Server.Addr,
		Handler:      routes.SetupRoutes(a),
		ReadTimeout:  c.cfg.Server.ReadTimeout,
		WriteTimeout: c.cfg.Server.WriteTimeout,
		ErrorLog:     zap.NewStdLog(c.log.Named("http")),
	}
	c.log.Info("starting blog service", zap.String("addr", srv.Addr))
	return runServer(ctx, srv, c.cfg.Server.ShutdownTimeout, c.log)
}

// runServer serves until ctx is cancelled, then shuts down gracefully within timeout.
func runServer(ctx context.Context, srv *http.Server, timeout time.Duration, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", timeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (c *cli) newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.Open(c.cfg.Database, c.log)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database migrated successfully")
			return nil
		},
	}
}
