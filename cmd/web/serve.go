package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Abhinavgupta8977/dietitian-website/internal/config"
)

var (
	serveAddr string
	serveDev  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := bootstrap(func(cfg *config.Config) {
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = serveAddr
			}
			if cmd.Flags().Changed("dev") {
				cfg.Server.Dev = serveDev
			}
		})
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, logger)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "reload templates when they change")
	rootCmd.AddCommand(serveCmd)
}

// serve runs the HTTP server, the view state sweeper and, in dev mode, the
// template watcher until ctx is cancelled.
func serve(ctx context.Context, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              appConfig.Server.Addr,
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       appConfig.Server.ReadTimeout,
		WriteTimeout:      appConfig.Server.WriteTimeout,
		IdleTimeout:       appConfig.Server.IdleTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("web listening", zap.String("addr", srv.Addr), zap.Bool("dev", devMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		err := srv.Shutdown(shutdownCtx)
		// Pending chat replies and form resets are cancelled with their owners.
		viewStore.Close()
		return err
	})
	g.Go(func() error {
		return sweepViewState(ctx, logger, appConfig.ViewState.SweepInterval)
	})
	if devMode {
		g.Go(func() error {
			return watchTemplates(ctx, logger)
		})
	}
	return g.Wait()
}

func sweepViewState(ctx context.Context, logger *zap.Logger, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := viewStore.Sweep(); n > 0 {
				logger.Debug("view state swept", zap.Int("evicted", n), zap.Int("live", viewStore.Len()))
			}
		}
	}
}

// watchTemplates drops the template cache whenever a .tmpl file changes;
// the next render reparses.
func watchTemplates(ctx context.Context, logger *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("template watcher: %w", err)
	}
	defer watcher.Close()

	// fsnotify is not recursive.
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("watch %s: %w", templatesDir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(ev.Name) != ".tmpl" {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				storeTemplates(nil)
				logger.Debug("templates changed", zap.String("file", ev.Name))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("template watcher", zap.Error(err))
		}
	}
}
