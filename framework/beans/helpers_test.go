package beans_test

import (
	"reflect"

	"github.com/km-arc/go-beans/framework/beans"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type greeter interface{ Greet() string }

type englishGreeter struct{ name string }

func (g *englishGreeter) Greet() string { return "hello " + g.name }

type frenchGreeter struct{}

func (g *frenchGreeter) Greet() string { return "bonjour" }

type store struct{ id int }

// testConfiguration is a hand-written configuration counting DefineBeans calls.
type testConfiguration struct {
	beans.BaseConfiguration
	label  string
	define func(c beans.BeansCollector) error
	calls  int
}

func newTestConfiguration(label string, define func(c beans.BeansCollector) error) *testConfiguration {
	return &testConfiguration{label: label, define: define}
}

func (c *testConfiguration) DefineBeans(collector beans.BeansCollector) error {
	c.calls++
	if c.define == nil {
		return nil
	}
	return c.define(collector)
}

func (c *testConfiguration) String() string { return c.label }

// defines returns a define func registering bean under name.
func defines(name string, bean any) func(c beans.BeansCollector) error {
	return func(c beans.BeansCollector) error {
		c.DefineNamedBean(name, bean)
		return nil
	}
}

// countingProvider counts the lookups reaching the wrapped provider.
type countingProvider struct {
	beans.BeansProvider
	lookups int
}

func (p *countingProvider) LookUpOptionalBean(name string, typ reflect.Type) (any, bool) {
	p.lookups++
	return p.BeansProvider.LookUpOptionalBean(name, typ)
}

func (p *countingProvider) LookUpOptionalBeanByType(typ reflect.Type) (any, bool) {
	p.lookups++
	return p.BeansProvider.LookUpOptionalBeanByType(typ)
}

// recordingProcessor records the names it post-processed.
type recordingProcessor struct {
	seen []string
}

func (p *recordingProcessor) PostProcessBean(name string, bean any) any {
	p.seen = append(p.seen, name)
	return bean
}

// switchableScope is a custom scope that can be turned on and off.
type switchableScope struct {
	active bool
	beans  map[string]any
}

func newSwitchableScope() *switchableScope {
	return &switchableScope{beans: make(map[string]any)}
}

func (s *switchableScope) Name() string   { return "switchable" }
func (s *switchableScope) IsActive() bool { return s.active }

func (s *switchableScope) GetBean(name string, factory beans.ScopedFactoryBean, p beans.BeansProvider) (any, error) {
	if bean, ok := s.beans[name]; ok {
		return bean, nil
	}
	bean, err := factory.ProduceBean(p)
	if err != nil {
		return nil, err
	}
	s.beans[name] = bean
	return bean, nil
}
