// Package beans provides a bean registry and an iterative bean collector
// for Go applications.
//
// # Overview
//
// A bean is any application object managed by a BeanRegistry: it is named,
// looked up by name and/or type, and possibly produced lazily through a scope.
// Beans are contributed by BeanConfigurations. Each configuration declares
// its dependencies up front and defines its beans once the Collector decides
// it is ready to do so. There is no static dependency graph: the collector
// keeps retrying configurations until every one of them ran or no further
// progress is possible.
//
// # Lifecycle
//
//  1. Create: registry := beans.NewBeanRegistry()
//  2. Collect: beans.NewCollector(registry).CollectBeans(configurations)
//  3. Look up: beans.LookUpBean[*Mailer](registry, "mailer")
//
// # Configurations
//
//	type MailConfiguration struct {
//	    beans.BaseConfiguration
//	    settings *beans.SingleBeanDependency[*Settings]
//	}
//
//	func NewMailConfiguration() *MailConfiguration {
//	    c := &MailConfiguration{}
//	    c.settings = beans.RequireBean[*Settings](c)
//	    return c
//	}
//
//	func (c *MailConfiguration) DefineBeans(collector beans.BeansCollector) error {
//	    settings, _ := c.settings.Get()
//	    collector.DefineNamedBean("mailer", NewMailer(settings))
//	    return nil
//	}
//
// # Declarative configurations
//
//	d := beans.NewDeclarativeConfiguration()
//	settings := beans.Declare(d, "", func(beans.BeansProvider) (*Settings, error) {
//	    return &Settings{Host: "smtp.local"}, nil
//	})
//	beans.Declare(d, "mailer", func(p beans.BeansProvider) (*Mailer, error) {
//	    return NewMailer(settings.Use()), nil
//	})
//
// # Scopes
//
//	// Produced on first lookup, then cached.
//	collector.DefineNamedBean("clock", beans.Lazy(func(beans.BeansProvider) (*Clock, error) {
//	    return NewClock(), nil
//	}))
//
//	// Produced on every lookup.
//	collector.DefineBean(beans.Prototype(func(beans.BeansProvider) (*Request, error) {
//	    return &Request{}, nil
//	}))
package beans
