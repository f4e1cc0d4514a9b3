package app

import (
	"context"
	"io/fs"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/beans/foreground"
	"github.com/km-arc/go-beans/framework/beans/manifest"
	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/logging"
	"github.com/km-arc/go-beans/framework/providers"
)

// Initializer assembles an Application: it loads the configuration, builds
// the logger and the bean registry, discovers manifest configurations and
// collects every bean.
//
//	application, err := app.New().
//	    AddCatalog(catalog).
//	    AddConfigurations(NewGreetingConfiguration()).
//	    Initialize(ctx)
type Initializer struct {
	envFiles       []string
	parent         beans.BeansProvider
	scopes         []beans.ScopedFactoryBeanHandler
	configurations []beans.BeanConfiguration
	catalog        *manifest.Catalog
	manifests      fs.FS
	logger         *zap.Logger
}

// New creates an Initializer reading envFiles, ".env" when none is given.
func New(envFiles ...string) *Initializer {
	return &Initializer{
		envFiles:  envFiles,
		catalog:   manifest.NewCatalog(),
		manifests: os.DirFS("."),
	}
}

// WithParent makes lookups fall back to parent.
func (i *Initializer) WithParent(parent beans.BeansProvider) *Initializer {
	i.parent = parent
	return i
}

// WithManifests reads manifests from fsys instead of the working directory.
func (i *Initializer) WithManifests(fsys fs.FS) *Initializer {
	i.manifests = fsys
	return i
}

// WithLogger replaces the logger built from the configuration.
func (i *Initializer) WithLogger(logger *zap.Logger) *Initializer {
	i.logger = logger
	return i
}

// AddScope registers an additional bean scope.
func (i *Initializer) AddScope(handler beans.ScopedFactoryBeanHandler) *Initializer {
	i.scopes = append(i.scopes, handler)
	return i
}

// AddConfigurations adds configurations collected after the framework ones.
func (i *Initializer) AddConfigurations(configurations ...beans.BeanConfiguration) *Initializer {
	i.configurations = append(i.configurations, configurations...)
	return i
}

// AddCatalog makes the identifiers of catalog available to manifests.
func (i *Initializer) AddCatalog(catalog *manifest.Catalog) *Initializer {
	i.catalog.Merge(catalog)
	return i
}

// Initialize builds the Application and installs its registry as the
// global beans provider.
func (i *Initializer) Initialize(ctx context.Context) (*Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.Load(i.envFiles...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := i.logger
	if logger == nil {
		var err error
		if logger, err = logging.New(cfg.Log, cfg.App.Env); err != nil {
			return nil, err
		}
	}

	registry := beans.NewBeanRegistry(beans.WithParent(i.parent), beans.WithLogger(logger))
	holder := foreground.NewHolder(logger)
	registry.AddBeanScope(foreground.NewHandler(holder))
	for _, scope := range i.scopes {
		registry.AddBeanScope(scope)
	}

	discovered, err := manifest.NewScanner(i.catalog, cfg, logger).Scan(i.manifests, cfg.Beans.ManifestDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to discover bean configurations")
	}

	configurations := providers.Framework(cfg, logger, registry)
	configurations = append(configurations, i.configurations...)
	configurations = append(configurations, discovered...)

	if err := beans.NewCollector(registry).CollectBeans(configurations); err != nil {
		return nil, err
	}
	beans.Install(registry)

	logger.Info("application initialized",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.Int("beans", registry.Len()))

	application := &Application{
		config:     cfg,
		logger:     logger,
		registry:   registry,
		foreground: holder,
	}
	if application.IsProduction() && application.IsDebug() {
		logger.Warn("debug mode is enabled in production")
	}
	if application.IsLocal() {
		logger.Debug("registered beans", zap.Strings("names", registry.BeanNames()))
	}
	return application, nil
}
