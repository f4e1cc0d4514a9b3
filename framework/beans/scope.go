package beans

import "reflect"

// ── Scoped factory beans ──────────────────────────────────────────────────────

// ScopedFactoryBean is registered in place of a bean whose lifetime is
// governed by a scope. Lookups for BeanType are answered by the handler of
// Scope, which decides when ProduceBean runs.
type ScopedFactoryBean interface {
	Scope() string
	BeanType() reflect.Type
	ProduceBean(p BeansProvider) (any, error)
}

// ScopedFactoryBeanHandler implements one scope.
type ScopedFactoryBeanHandler interface {
	// Name is the scope name factories refer to.
	Name() string

	// IsActive reports whether the scope can currently serve beans.
	// GetBean must only be called while it returns true.
	IsActive() bool

	// GetBean returns the bean registered under name, producing it with
	// factory when the scope holds no instance yet.
	GetBean(name string, factory ScopedFactoryBean, p BeansProvider) (any, error)
}

// GenericScopedFactoryBean is a ScopedFactoryBean backed by a function.
type GenericScopedFactoryBean[T any] struct {
	scope    string
	producer func(p BeansProvider) (T, error)
}

// NewScopedFactoryBean creates a factory bean for scope.
//
//	collector.DefineNamedBean("session", beans.NewScopedFactoryBean("foreground",
//	    func(p beans.BeansProvider) (*Session, error) { return NewSession(), nil }))
func NewScopedFactoryBean[T any](scope string, producer func(p BeansProvider) (T, error)) *GenericScopedFactoryBean[T] {
	return &GenericScopedFactoryBean[T]{scope: scope, producer: producer}
}

func (f *GenericScopedFactoryBean[T]) Scope() string          { return f.scope }
func (f *GenericScopedFactoryBean[T]) BeanType() reflect.Type { return TypeOf[T]() }

func (f *GenericScopedFactoryBean[T]) ProduceBean(p BeansProvider) (any, error) {
	bean, err := f.producer(p)
	if err != nil {
		return nil, err
	}
	if IsNil(bean) {
		return nil, ErrNilBean
	}
	return bean, nil
}

// Lazy creates a singleton-scoped factory bean: produced on first lookup,
// then cached.
func Lazy[T any](producer func(p BeansProvider) (T, error)) *GenericScopedFactoryBean[T] {
	return NewScopedFactoryBean(SingletonScope, producer)
}

// Prototype creates a prototype-scoped factory bean: produced on every lookup.
func Prototype[T any](producer func(p BeansProvider) (T, error)) *GenericScopedFactoryBean[T] {
	return NewScopedFactoryBean(PrototypeScope, producer)
}

// ── post-processing decorator ─────────────────────────────────────────────────

// postProcessedFactoryBean runs the registry post-processors over every bean
// the wrapped factory produces.
type postProcessedFactoryBean struct {
	ScopedFactoryBean
	postProcess func(bean any) any
}

func (f *postProcessedFactoryBean) ProduceBean(p BeansProvider) (any, error) {
	bean, err := f.ScopedFactoryBean.ProduceBean(p)
	if err != nil {
		return nil, err
	}
	return f.postProcess(bean), nil
}
