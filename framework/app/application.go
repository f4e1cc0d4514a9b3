// Package app bootstraps a bean-driven application.
package app

import (
	"context"
	"net"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/beans/foreground"
	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/routing"
)

// Application is the initialized application: its configuration, logger and
// bean registry.
type Application struct {
	config     *config.Config
	logger     *zap.Logger
	registry   *beans.BeanRegistry
	foreground *foreground.Holder
}

// Config returns the boot configuration.
func (a *Application) Config() *config.Config { return a.config }

// Logger returns the application logger.
func (a *Application) Logger() *zap.Logger { return a.logger }

// Registry returns the bean registry.
func (a *Application) Registry() *beans.BeanRegistry { return a.registry }

// Foreground returns the holder driving the foreground scope.
func (a *Application) Foreground() *foreground.Holder { return a.foreground }

// Router returns the "router" bean.
func (a *Application) Router() *routing.Router {
	return beans.MustLookUpBean[*routing.Router](a.registry, "router")
}

// Environment returns APP_ENV.
func (a *Application) Environment() string { return a.config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsDebug() bool       { return a.config.App.Debug }

// Run serves the router on APP_PORT until ctx is done, then shuts the
// server down within APP_SHUTDOWN_TIMEOUT.
func (a *Application) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", ":"+a.config.App.Port)
	if err != nil {
		return errors.Wrap(err, "failed to listen")
	}
	return a.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (a *Application) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{Handler: a.Router()}
	defer func() { _ = a.logger.Sync() }()

	served := make(chan error, 1)
	go func() {
		a.logger.Info("serving",
			zap.String("app", a.config.App.Name),
			zap.String("addr", listener.Addr().String()),
			zap.String("env", a.Environment()))
		served <- server.Serve(listener)
	}()

	select {
	case err := <-served:
		return errors.Wrap(err, "server stopped")
	case <-ctx.Done():
	}

	a.logger.Info("shutting down", zap.Duration("timeout", a.config.App.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down")
	}
	return nil
}
