// Package providers holds the bean configurations every application starts
// with.
//
// Registered beans:
//   - "config"      → *config.Config
//   - "logger"      → *zap.Logger
//   - "router"      → *routing.Router
//   - "routes"      → *RouteMounter, mounts every routing.Registrar bean once collection ends
//   - "inspector"   → *gohttp.Inspector, only when BEANS_INSPECT is on
package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/config"
	gohttp "github.com/km-arc/go-beans/framework/http"
	"github.com/km-arc/go-beans/framework/routing"
)

// Framework returns the framework configurations for registry.
//
//	configurations := providers.Framework(cfg, logger, registry)
func Framework(cfg *config.Config, logger *zap.Logger, registry *beans.BeanRegistry) []beans.BeanConfiguration {
	return []beans.BeanConfiguration{
		Core(cfg, logger),
		NewRoutingConfiguration(),
		NewInspectorConfiguration(registry),
	}
}

// ── Core ──────────────────────────────────────────────────────────────────────

// Core registers the boot configuration and the logger built from it.
func Core(cfg *config.Config, logger *zap.Logger) beans.BeanConfiguration {
	return beans.ConfigurationFunc(func(c beans.BeansCollector) error {
		c.DefineNamedBean("config", cfg)
		c.DefineNamedBean("logger", logger)
		return nil
	})
}

// ── Routing ───────────────────────────────────────────────────────────────────

// RoutingConfiguration registers the HTTP router and its RouteMounter.
type RoutingConfiguration struct {
	beans.BaseConfiguration
	logger *beans.OptionalSingleBeanDependency[*zap.Logger]
}

// NewRoutingConfiguration creates the configuration. The router logs
// requests through the *zap.Logger bean when there is one.
func NewRoutingConfiguration() *RoutingConfiguration {
	c := &RoutingConfiguration{}
	c.logger = beans.RequireOptionalBean[*zap.Logger](c)
	return c
}

func (c *RoutingConfiguration) DefineBeans(collector beans.BeansCollector) error {
	logger, _ := c.logger.Get()
	router := routing.New(logger)
	collector.DefineNamedBean("router", router)
	collector.DefineNamedBean("routes", &RouteMounter{router: router})
	return nil
}

// RouteMounter hands the router to every local routing.Registrar bean, in
// registration order, once all configurations defined their beans.
type RouteMounter struct {
	router *routing.Router
}

func (m *RouteMounter) PostProcessBeanRegistry(registry *beans.BeanRegistry) error {
	for _, bean := range registry.LookUpLocalBeans(beans.TypeOf[routing.Registrar]()) {
		bean.(routing.Registrar).RegisterRoutes(m.router)
	}
	registry.Logger().Debug("mounted routes", zap.Int("routes", len(m.router.Routes())))
	return nil
}

// ── Inspector ─────────────────────────────────────────────────────────────────

// InspectorConfiguration registers the bean inspector when the
// configuration enables it.
type InspectorConfiguration struct {
	beans.BaseConfiguration
	registry *beans.BeanRegistry
	config   *beans.SingleBeanDependency[*config.Config]
}

// NewInspectorConfiguration creates the configuration inspecting registry.
func NewInspectorConfiguration(registry *beans.BeanRegistry) *InspectorConfiguration {
	c := &InspectorConfiguration{registry: registry}
	c.config = beans.RequireBean[*config.Config](c)
	return c
}

func (c *InspectorConfiguration) DefineBeans(collector beans.BeansCollector) error {
	cfg, _ := c.config.Get()
	if !cfg.Beans.Inspect {
		return nil
	}
	collector.DefineNamedBean("inspector", gohttp.NewInspector(c.registry))
	return nil
}
