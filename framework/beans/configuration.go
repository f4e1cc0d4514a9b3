package beans

import "fmt"

// ── Readiness ─────────────────────────────────────────────────────────────────

// Readiness tells the Collector whether a configuration may define its beans.
type Readiness int

const (
	// Unready configurations miss a required dependency.
	Unready Readiness = iota
	// Delay configurations only miss optional dependencies.
	Delay
	// Ready configurations have every dependency fulfilled.
	Ready
)

func (r Readiness) String() string {
	switch r {
	case Unready:
		return "unready"
	case Delay:
		return "delay"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("Readiness(%d)", int(r))
	}
}

// ReadinessOf maps the least satisfied fulfillment to a Readiness.
func ReadinessOf(f Fulfillment) Readiness {
	switch f {
	case Fulfilled:
		return Ready
	case UnfulfilledOptional:
		return Delay
	default:
		return Unready
	}
}

// ── BeanConfiguration ─────────────────────────────────────────────────────────

// BeanConfiguration is a unit of bean declarations processed by the Collector.
//
// Dependencies are declared while the configuration is built. The collector
// asks IsReadyToDefineBeans until the answer allows it to proceed, and then
// calls DefineBeans exactly once.
type BeanConfiguration interface {
	Dependencies() []BeanDependency
	IsReadyToDefineBeans(p BeansProvider) Readiness
	DefineBeans(c BeansCollector) error
}

// DependencyDeclarer accepts dependencies. BaseConfiguration implements it,
// so any struct embedding it can be passed to RequireBean and friends.
type DependencyDeclarer interface {
	AddDependency(d BeanDependency)
}

// BaseConfiguration is an embeddable dependency tracker that implements
// Dependencies and IsReadyToDefineBeans. Embed it and implement DefineBeans.
//
//	type CacheConfiguration struct {
//	    beans.BaseConfiguration
//	    redis *beans.SingleBeanDependency[*redis.Client]
//	}
type BaseConfiguration struct {
	dependencies []BeanDependency
	sealed       bool
}

// AddDependency declares d. It panics with ErrDependenciesSealed once the
// readiness of the configuration was evaluated.
func (b *BaseConfiguration) AddDependency(d BeanDependency) {
	if b.sealed {
		panic(ErrDependenciesSealed)
	}
	b.dependencies = append(b.dependencies, d)
}

// Dependencies returns the declared dependencies.
func (b *BaseConfiguration) Dependencies() []BeanDependency { return b.dependencies }

// IsReadyToDefineBeans fulfills every dependency against p and folds the
// results. A configuration without dependencies is always Ready.
func (b *BaseConfiguration) IsReadyToDefineBeans(p BeansProvider) Readiness {
	b.sealed = true
	fulfillments := make([]Fulfillment, 0, len(b.dependencies))
	for _, d := range b.dependencies {
		fulfillments = append(fulfillments, d.Fulfill(p))
	}
	return ReadinessOf(MinFulfillment(fulfillments...))
}

// ── Dependency declaration helpers ────────────────────────────────────────────

// RequireBean declares a required dependency on any bean of type T.
//
//	c.settings = beans.RequireBean[*Settings](c)
func RequireBean[T any](c DependencyDeclarer) *SingleBeanDependency[T] {
	return RequireNamedBean[T](c, "")
}

// RequireNamedBean declares a required dependency on the T named name.
func RequireNamedBean[T any](c DependencyDeclarer, name string) *SingleBeanDependency[T] {
	d := NewSingleBeanDependency[T](name)
	c.AddDependency(d)
	return d
}

// RequireOptionalBean declares an optional dependency on any bean of type T.
func RequireOptionalBean[T any](c DependencyDeclarer) *OptionalSingleBeanDependency[T] {
	return RequireOptionalNamedBean[T](c, "")
}

// RequireOptionalNamedBean declares an optional dependency on the T named name.
func RequireOptionalNamedBean[T any](c DependencyDeclarer, name string) *OptionalSingleBeanDependency[T] {
	d := NewOptionalSingleBeanDependency[T](name)
	c.AddDependency(d)
	return d
}

// RequireBeans declares a dependency on all beans of type T.
//
//	c.handlers = beans.RequireBeans[http.Handler](c)
func RequireBeans[T any](c DependencyDeclarer) *BeansOfTypeDependency[T] {
	d := NewBeansOfTypeDependency[T]()
	c.AddDependency(d)
	return d
}

// ── ConfigurationFunc ─────────────────────────────────────────────────────────

// ConfigurationFunc adapts a function to a BeanConfiguration without
// dependencies.
//
//	beans.ConfigurationFunc(func(c beans.BeansCollector) error {
//	    c.DefineNamedBean("clock", NewClock())
//	    return nil
//	})
type ConfigurationFunc func(c BeansCollector) error

func (f ConfigurationFunc) Dependencies() []BeanDependency                 { return nil }
func (f ConfigurationFunc) IsReadyToDefineBeans(_ BeansProvider) Readiness { return Ready }
func (f ConfigurationFunc) DefineBeans(c BeansCollector) error             { return f(c) }
