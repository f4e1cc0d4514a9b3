package beans

import (
	"reflect"

	"go.uber.org/zap"
)

// ── BeanRegistry ──────────────────────────────────────────────────────────────

// BeanRegistry stores beans by name and implements BeansProvider.
//
// Entries that are ScopedFactoryBeans are resolved through the handler of
// their scope when a lookup asks for the type they produce. Lookups fall back
// to an optional parent provider after local entries.
//
// Registration is not safe for concurrent use. Lookups are, once
// registration has finished.
type BeanRegistry struct {
	beans          map[string]any
	names          []string
	postProcessors []namedPostProcessor
	scopes         map[string]ScopedFactoryBeanHandler
	parent         BeansProvider
	hierarchy      *HierarchicalBeansProvider
	logger         *zap.Logger
}

// BeanEntry describes one registry entry.
type BeanEntry struct {
	Name string
	// Type is the bean's runtime type, or the produced type for scoped beans.
	Type reflect.Type
	// Scope is empty for plain beans.
	Scope string
}

// RegistryOption configures a BeanRegistry.
type RegistryOption func(r *BeanRegistry)

// WithParent makes lookups fall back to parent.
func WithParent(parent BeansProvider) RegistryOption {
	return func(r *BeanRegistry) { r.parent = parent }
}

// WithLogger sets the logger used by the registry and by collectors built on it.
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *BeanRegistry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewBeanRegistry creates a registry with the singleton and prototype scopes.
//
//	registry := beans.NewBeanRegistry(beans.WithParent(frameworkBeans), beans.WithLogger(logger))
func NewBeanRegistry(opts ...RegistryOption) *BeanRegistry {
	r := &BeanRegistry{
		beans:  make(map[string]any),
		scopes: make(map[string]ScopedFactoryBeanHandler),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.hierarchy = NewHierarchicalBeansProvider(r, r.parent)

	r.AddBeanScope(NewSingletonScopedFactoryBeanHandler())
	r.AddBeanScope(NewPrototypeScopedFactoryBeanHandler())
	return r
}

// Logger returns the registry logger.
func (r *BeanRegistry) Logger() *zap.Logger { return r.logger }

// Parent returns the parent provider, or nil.
func (r *BeanRegistry) Parent() BeansProvider { return r.parent }

// ── Scopes ────────────────────────────────────────────────────────────────────

// AddBeanScope registers handler under its name, replacing any handler of
// the same name.
func (r *BeanRegistry) AddBeanScope(handler ScopedFactoryBeanHandler) {
	r.scopes[handler.Name()] = handler
}

// BeanScope returns the handler registered for name.
func (r *BeanRegistry) BeanScope(name string) (ScopedFactoryBeanHandler, bool) {
	h, ok := r.scopes[name]
	return h, ok
}

// ── Registration ──────────────────────────────────────────────────────────────

// RegisterBean registers bean under a generated name and returns the name.
// The name is PreferredBeanName of the bean's type, or of the produced type
// for a ScopedFactoryBean, with 2, 3, ... appended while it is taken.
func (r *BeanRegistry) RegisterBean(bean any) string {
	if IsNil(bean) {
		panic(ErrNilBean)
	}
	typ := reflect.TypeOf(bean)
	if factory, ok := bean.(ScopedFactoryBean); ok {
		typ = factory.BeanType()
	}
	name := uniqueName(PreferredBeanName(typ), r.Contains)
	r.RegisterNamedBean(name, bean)
	return name
}

// RegisterNamedBean runs bean through the post-processors and stores it
// under name, overwriting any existing entry. A post-processor that is
// overwritten stops processing.
//
//	registry.RegisterNamedBean("mailer", mail.NewSMTP(cfg))
func (r *BeanRegistry) RegisterNamedBean(name string, bean any) {
	if IsNil(bean) {
		panic(ErrNilBean)
	}
	_, exists := r.beans[name]
	if exists {
		r.dropPostProcessors(name)
	}
	if _, scoped := bean.(ScopedFactoryBean); !scoped {
		bean = r.postProcess(name, bean)
	}

	if exists {
		r.logger.Debug("overwriting bean", zap.String("name", name))
	} else {
		r.names = append(r.names, name)
	}
	r.beans[name] = bean
	r.logger.Debug("registered bean", zap.String("name", name), zap.String("type", reflect.TypeOf(bean).String()))

	if pp, ok := bean.(BeanPostProcessor); ok {
		r.addPostProcessor(name, pp)
	}
}

// RegisterBeanPostProcessor adds pp without registering it as a bean and
// applies it to every bean already present.
func (r *BeanRegistry) RegisterBeanPostProcessor(pp BeanPostProcessor) {
	r.addPostProcessor("", pp)
}

// namedPostProcessor remembers which bean a post-processor was registered
// as. Processors added through RegisterBeanPostProcessor have no name.
type namedPostProcessor struct {
	name string
	BeanPostProcessor
}

func (r *BeanRegistry) addPostProcessor(own string, pp BeanPostProcessor) {
	r.postProcessors = append(r.postProcessors, namedPostProcessor{name: own, BeanPostProcessor: pp})
	for _, name := range r.names {
		if name == own {
			continue
		}
		bean := r.beans[name]
		if _, scoped := bean.(ScopedFactoryBean); scoped {
			continue
		}
		if processed := pp.PostProcessBean(name, bean); !IsNil(processed) {
			r.beans[name] = processed
		}
	}
}

// dropPostProcessors forgets the processors registered as bean name.
func (r *BeanRegistry) dropPostProcessors(name string) {
	kept := r.postProcessors[:0]
	for _, pp := range r.postProcessors {
		if pp.name == "" || pp.name != name {
			kept = append(kept, pp)
		}
	}
	r.postProcessors = kept
}

func (r *BeanRegistry) postProcess(name string, bean any) any {
	for _, pp := range r.postProcessors {
		if processed := pp.PostProcessBean(name, bean); !IsNil(processed) {
			bean = processed
		}
	}
	return bean
}

// ── Inspection ────────────────────────────────────────────────────────────────

// Contains reports whether name is registered locally.
func (r *BeanRegistry) Contains(name string) bool {
	_, ok := r.beans[name]
	return ok
}

// Len returns the number of local entries.
func (r *BeanRegistry) Len() int { return len(r.names) }

// BeanNames returns the local names in registration order.
func (r *BeanRegistry) BeanNames() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Entry describes the local entry registered under name without producing
// scoped beans.
func (r *BeanRegistry) Entry(name string) (BeanEntry, bool) {
	bean, ok := r.beans[name]
	if !ok {
		return BeanEntry{}, false
	}
	if factory, scoped := bean.(ScopedFactoryBean); scoped {
		return BeanEntry{Name: name, Type: factory.BeanType(), Scope: factory.Scope()}, true
	}
	return BeanEntry{Name: name, Type: reflect.TypeOf(bean)}, true
}

// Entries describes every local entry in registration order.
func (r *BeanRegistry) Entries() []BeanEntry {
	out := make([]BeanEntry, 0, len(r.names))
	for _, name := range r.names {
		entry, _ := r.Entry(name)
		out = append(out, entry)
	}
	return out
}

// ── BeansProvider ─────────────────────────────────────────────────────────────

func (r *BeanRegistry) LookUpOptionalBean(name string, typ reflect.Type) (any, bool) {
	return r.hierarchy.LookUpOptionalBean(name, typ)
}

func (r *BeanRegistry) LookUpOptionalBeanByType(typ reflect.Type) (any, bool) {
	return r.hierarchy.LookUpOptionalBeanByType(typ)
}

func (r *BeanRegistry) LookUpBeans(typ reflect.Type) []any {
	return r.hierarchy.LookUpBeans(typ)
}

// ── LocalBeansProvider ────────────────────────────────────────────────────────

func (r *BeanRegistry) LookUpOptionalLocalBean(name string, typ reflect.Type) (any, bool) {
	candidate, ok := r.beans[name]
	if !ok {
		return nil, false
	}
	return r.resolve(name, candidate, typ)
}

// LookUpOptionalLocalBeanByType tries the preferred name of typ before
// scanning every entry in registration order.
func (r *BeanRegistry) LookUpOptionalLocalBeanByType(typ reflect.Type) (any, bool) {
	if bean, ok := r.LookUpOptionalLocalBean(PreferredBeanName(typ), typ); ok {
		return bean, true
	}
	for _, name := range r.names {
		if bean, ok := r.resolve(name, r.beans[name], typ); ok {
			return bean, true
		}
	}
	return nil, false
}

func (r *BeanRegistry) LookUpLocalBeans(typ reflect.Type) []any {
	var out []any
	for _, name := range r.names {
		if bean, ok := r.resolve(name, r.beans[name], typ); ok {
			out = append(out, bean)
		}
	}
	return out
}

// resolve matches one entry against typ. A scoped factory producing typ is
// resolved through its scope, and only while that scope is active.
func (r *BeanRegistry) resolve(name string, candidate any, typ reflect.Type) (any, bool) {
	if factory, ok := candidate.(ScopedFactoryBean); ok && factory.BeanType().AssignableTo(typ) {
		if bean, ok := r.produceScoped(name, factory); ok {
			return bean, true
		}
	}
	if assignable(candidate, typ) {
		return candidate, true
	}
	return nil, false
}

func (r *BeanRegistry) produceScoped(name string, factory ScopedFactoryBean) (any, bool) {
	handler, ok := r.scopes[factory.Scope()]
	if !ok {
		r.logger.Debug("no handler for bean scope", zap.String("name", name), zap.String("scope", factory.Scope()))
		return nil, false
	}
	if !handler.IsActive() {
		return nil, false
	}

	decorated := &postProcessedFactoryBean{
		ScopedFactoryBean: factory,
		postProcess:       func(bean any) any { return r.postProcess(name, bean) },
	}
	bean, err := handler.GetBean(name, decorated, r)
	if err != nil {
		r.logger.Error("failed to produce scoped bean",
			zap.String("name", name), zap.String("scope", factory.Scope()), zap.Error(err))
		return nil, false
	}
	return bean, true
}
