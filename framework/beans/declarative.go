package beans

import (
	"reflect"

	"github.com/pkg/errors"
)

// ── DeclarativeConfiguration ──────────────────────────────────────────────────

// DeclarativeConfiguration defines its beans from BeanDefinitions declared
// up front, instead of a hand-written DefineBeans.
//
// Definitions are produced in declaration order. When a producer looks up a
// bean that is not registered yet but a pending sibling definition can
// produce it, that sibling is produced first, so declaration order only
// matters for beans nobody asks for.
//
//	d := beans.NewDeclarativeConfiguration()
//	store := beans.Declare(d, "store", func(beans.BeansProvider) (*Store, error) {
//	    return NewStore(), nil
//	})
//	beans.Declare(d, "", func(p beans.BeansProvider) (*Service, error) {
//	    return &Service{Store: store.Use()}, nil
//	})
type DeclarativeConfiguration struct {
	BaseConfiguration
	definitions []*BeanDefinition
	active      *definitionsProvider
}

// NewDeclarativeConfiguration creates an empty declarative configuration.
func NewDeclarativeConfiguration() *DeclarativeConfiguration {
	return &DeclarativeConfiguration{}
}

// AddBeanDefinition appends def.
func (d *DeclarativeConfiguration) AddBeanDefinition(def *BeanDefinition) {
	d.definitions = append(d.definitions, def)
}

// BeanDefinitions returns the declared definitions in declaration order.
func (d *DeclarativeConfiguration) BeanDefinitions() []*BeanDefinition { return d.definitions }

// DefineBeans produces every pending definition and defines its bean in c.
func (d *DeclarativeConfiguration) DefineBeans(c BeansCollector) (err error) {
	p := &definitionsProvider{owner: d, collector: c}
	d.active = p
	defer func() {
		d.active = nil
		if r := recover(); r != nil {
			re, ok := r.(referenceError)
			if !ok {
				panic(r)
			}
			err = re.err
		}
	}()

	for _, def := range d.definitions {
		if def.State() != Pending {
			continue
		}
		if _, err := p.produce(def); err != nil {
			return err
		}
	}
	return nil
}

// Declare adds a definition for a bean of type T and returns a reference to it.
func Declare[T any](d *DeclarativeConfiguration, name string, producer func(p BeansProvider) (T, error)) BeanReference[T] {
	def := NewBeanDefinition(name, TypeOf[T](), func(p BeansProvider) (any, error) {
		return producer(p)
	})
	d.AddBeanDefinition(def)
	return BeanReference[T]{definition: def, owner: d}
}

// DeclareScoped adds a scoped factory bean producing T within scope.
// Lookups for T resolve through the scope handler once it is registered.
//
//	beans.DeclareScoped(d, "session", beans.PrototypeScope, func(p beans.BeansProvider) (*Session, error) {
//	    return NewSession(), nil
//	})
func DeclareScoped[T any](d *DeclarativeConfiguration, name, scope string, producer func(p BeansProvider) (T, error)) BeanReference[*GenericScopedFactoryBean[T]] {
	factory := NewScopedFactoryBean(scope, producer)
	def := NewScopedBeanDefinition(name, TypeOf[*GenericScopedFactoryBean[T]](), TypeOf[T](), func(BeansProvider) (any, error) {
		return factory, nil
	})
	d.AddBeanDefinition(def)
	return BeanReference[*GenericScopedFactoryBean[T]]{definition: def, owner: d}
}

// ── BeanReference ─────────────────────────────────────────────────────────────

// BeanReference is a typed handle on a declared BeanDefinition.
type BeanReference[T any] struct {
	definition *BeanDefinition
	owner      *DeclarativeConfiguration
}

// Definition returns the underlying definition.
func (r BeanReference[T]) Definition() *BeanDefinition { return r.definition }

// Use returns the produced bean. Inside a producer of the same configuration
// a pending definition is produced on demand. Anywhere else, reading a
// reference before its definition was produced panics with ErrBeanNotProduced.
func (r BeanReference[T]) Use() T {
	if r.owner != nil && r.owner.active != nil {
		switch r.definition.State() {
		case Pending:
			if _, err := r.owner.active.produce(r.definition); err != nil {
				panic(referenceError{err})
			}
		case Producing:
			panic(referenceError{NewBeanInstantiationError(r.definition.String(), errors.WithStack(ErrBeanInProduction))})
		}
	}
	return r.definition.Bean().(T)
}

// ── on-demand production ──────────────────────────────────────────────────────

// referenceError carries a production failure out of a nested producer.
type referenceError struct {
	err error
}

// definitionsProvider is the provider handed to producers of one
// configuration. It falls back to pending sibling definitions.
type definitionsProvider struct {
	owner     *DeclarativeConfiguration
	collector BeansCollector
}

// produce runs def and defines its bean, returning the name it was defined
// under. An unnamed bean may receive a suffixed name when its preferred one
// is taken.
func (p *definitionsProvider) produce(def *BeanDefinition) (string, error) {
	bean, err := def.Produce(p)
	if err != nil {
		if IsBeanInstantiationError(err) {
			return "", err
		}
		return "", NewBeanInstantiationError(def.String(), err)
	}
	if def.Name() == "" {
		return p.collector.DefineBean(bean), nil
	}
	p.collector.DefineNamedBean(def.Name(), bean)
	return def.Name(), nil
}

func (p *definitionsProvider) produceOnDemand(def *BeanDefinition) string {
	name, err := p.produce(def)
	if err != nil {
		panic(referenceError{err})
	}
	return name
}

func (p *definitionsProvider) pending(match func(def *BeanDefinition) bool) []*BeanDefinition {
	var out []*BeanDefinition
	for _, def := range p.owner.definitions {
		if def.State() == Pending && match(def) {
			out = append(out, def)
		}
	}
	return out
}

func (p *definitionsProvider) LookUpOptionalBean(name string, typ reflect.Type) (any, bool) {
	if bean, ok := p.collector.LookUpOptionalBean(name, typ); ok {
		return bean, true
	}
	candidates := p.pending(func(def *BeanDefinition) bool {
		named := def.Name() == name || (def.Name() == "" && PreferredBeanName(def.Type()) == name)
		return named && def.CanProduce(typ)
	})
	if len(candidates) == 0 {
		return nil, false
	}
	return p.collector.LookUpOptionalBean(p.produceOnDemand(candidates[0]), typ)
}

func (p *definitionsProvider) LookUpOptionalBeanByType(typ reflect.Type) (any, bool) {
	if bean, ok := p.collector.LookUpOptionalBeanByType(typ); ok {
		return bean, true
	}
	candidates := p.pending(func(def *BeanDefinition) bool { return def.CanProduce(typ) })
	if len(candidates) == 0 {
		return nil, false
	}
	p.produceOnDemand(candidates[0])
	return p.collector.LookUpOptionalBeanByType(typ)
}

func (p *definitionsProvider) LookUpBeans(typ reflect.Type) []any {
	for _, def := range p.pending(func(def *BeanDefinition) bool { return def.CanProduce(typ) }) {
		if def.State() == Pending {
			p.produceOnDemand(def)
		}
	}
	return p.collector.LookUpBeans(typ)
}
