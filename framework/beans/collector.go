package beans

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BeansCollector is what a configuration sees while it defines its beans.
type BeansCollector interface {
	BeansProvider

	// DefineBean registers bean under a generated name.
	DefineBean(bean any) string

	// DefineNamedBean registers bean under name.
	DefineNamedBean(name string, bean any)

	// RegisterBeanPostProcessor adds pp to the registry without making it a bean.
	RegisterBeanPostProcessor(pp BeanPostProcessor)
}

// ── Collector ─────────────────────────────────────────────────────────────────

// Collector runs bean configurations in an order that satisfies their
// dependencies and registers the beans they define into a BeanRegistry.
//
// Configurations are retried until none is left. When a full round makes
// no progress, configurations that only wait for optional dependencies are
// let through, one at a time. When even that makes no progress the
// remaining configurations have an unsatisfiable required dependency and
// collection fails.
type Collector struct {
	registry *BeanRegistry
	logger   *zap.Logger
}

// NewCollector creates a collector registering into registry. It logs
// through the registry logger.
func NewCollector(registry *BeanRegistry) *Collector {
	return &Collector{registry: registry, logger: registry.Logger()}
}

// Registry returns the target registry.
func (c *Collector) Registry() *BeanRegistry { return c.registry }

// CollectBeans processes configurations and then applies every
// BeanRegistryPostProcessor, in registration order, once.
//
// A failing DefineBeans or an unsatisfiable dependency aborts collection
// with a *BeanInstantiationError. Beans registered before the failure stay
// in the registry.
func (c *Collector) CollectBeans(configurations []BeanConfiguration) error {
	remaining := make([]BeanConfiguration, len(configurations))
	copy(remaining, configurations)

	includingDelayed := false
	limit := len(remaining)

	for len(remaining) > 0 && limit > 0 {
		configuration := remaining[0]
		remaining = remaining[1:]

		readiness := configuration.IsReadyToDefineBeans(c)
		if readiness == Ready || (includingDelayed && readiness == Delay) {
			c.logger.Debug("defining beans",
				zap.String("configuration", configurationName(configuration)),
				zap.Stringer("readiness", readiness))
			if err := configuration.DefineBeans(c); err != nil {
				c.logger.Error("bean configuration failed",
					zap.String("configuration", configurationName(configuration)), zap.Error(err))
				if IsBeanInstantiationError(err) {
					return err
				}
				return NewBeanInstantiationError(configurationName(configuration), err)
			}
			includingDelayed = false
			limit = len(remaining)
		} else {
			remaining = append(remaining, configuration)
			limit--
		}

		if limit == 0 && !includingDelayed && len(remaining) > 0 {
			c.logger.Debug("no ready configuration left, including delayed ones",
				zap.Int("remaining", len(remaining)))
			includingDelayed = true
			limit = len(remaining)
		}
	}

	if len(remaining) > 0 {
		err := NewBeanInstantiationError("bean configurations", unresolvedError(c, remaining))
		c.logger.Error("bean collection failed", zap.Error(err))
		return err
	}

	for _, bean := range c.registry.LookUpLocalBeans(TypeOf[BeanRegistryPostProcessor]()) {
		pp := bean.(BeanRegistryPostProcessor)
		if err := pp.PostProcessBeanRegistry(c.registry); err != nil {
			return NewBeanInstantiationError(fmt.Sprintf("registry post-processor %T", pp), err)
		}
	}

	c.logger.Info("collected beans",
		zap.Int("configurations", len(configurations)),
		zap.Int("beans", c.registry.Len()))
	return nil
}

// ── BeansCollector ────────────────────────────────────────────────────────────

func (c *Collector) DefineBean(bean any) string {
	return c.registry.RegisterBean(bean)
}

func (c *Collector) DefineNamedBean(name string, bean any) {
	c.registry.RegisterNamedBean(name, bean)
}

func (c *Collector) RegisterBeanPostProcessor(pp BeanPostProcessor) {
	c.registry.RegisterBeanPostProcessor(pp)
}

func (c *Collector) LookUpOptionalBean(name string, typ reflect.Type) (any, bool) {
	return c.registry.LookUpOptionalBean(name, typ)
}

func (c *Collector) LookUpOptionalBeanByType(typ reflect.Type) (any, bool) {
	return c.registry.LookUpOptionalBeanByType(typ)
}

func (c *Collector) LookUpBeans(typ reflect.Type) []any {
	return c.registry.LookUpBeans(typ)
}

// ── diagnostics ───────────────────────────────────────────────────────────────

func configurationName(configuration BeanConfiguration) string {
	if s, ok := configuration.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", configuration)
}

// unresolvedError lists the configurations left over together with the
// dependencies they still wait for.
func unresolvedError(p BeansProvider, remaining []BeanConfiguration) error {
	var b strings.Builder
	b.WriteString("unresolvable dependencies in")
	for _, configuration := range remaining {
		b.WriteString(" ")
		b.WriteString(configurationName(configuration))
		var missing []string
		for _, d := range configuration.Dependencies() {
			if d.Fulfill(p) == Fulfilled {
				continue
			}
			if s, ok := d.(fmt.Stringer); ok {
				missing = append(missing, s.String())
			}
		}
		if len(missing) > 0 {
			b.WriteString(" [" + strings.Join(missing, ", ") + "]")
		}
		b.WriteString(";")
	}
	return errors.New(strings.TrimSuffix(b.String(), ";"))
}
