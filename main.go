package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/app"
	fapp "github.com/km-arc/go-beans/framework/app"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup happens before exit.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads .env, then every configuration named by bean-configurations/*.yaml.
	application, err := fapp.New().
		AddCatalog(app.Catalog()).
		Initialize(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := serve(ctx, application); err != nil {
		application.Logger().Error("application stopped", zap.Error(err))
		return 1
	}
	return 0
}

// serve runs application with a session in the foreground until it stops.
func serve(ctx context.Context, application *fapp.Application) error {
	session := app.NewSession(fmt.Sprintf("session-%d", os.Getpid()))
	application.Foreground().Resumed(session)
	defer application.Foreground().Destroyed(session)

	return application.Run(ctx)
}
