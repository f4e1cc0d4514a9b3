package beans

import (
	"fmt"
	"reflect"
)

// ── Fulfillment ───────────────────────────────────────────────────────────────

// Fulfillment is the outcome of trying to satisfy a BeanDependency.
// The values are ordered: Unfulfilled < UnfulfilledOptional < Fulfilled.
type Fulfillment int

const (
	// Unfulfilled blocks the owning configuration.
	Unfulfilled Fulfillment = iota
	// UnfulfilledOptional means the configuration may proceed without it.
	UnfulfilledOptional
	// Fulfilled means the dependency is satisfied.
	Fulfilled
)

func (f Fulfillment) String() string {
	switch f {
	case Unfulfilled:
		return "unfulfilled"
	case UnfulfilledOptional:
		return "unfulfilled-optional"
	case Fulfilled:
		return "fulfilled"
	default:
		return fmt.Sprintf("Fulfillment(%d)", int(f))
	}
}

// MinFulfillment folds fulfillments to the least satisfied one.
// No fulfillments at all reduce to Fulfilled.
func MinFulfillment(fulfillments ...Fulfillment) Fulfillment {
	result := Fulfilled
	for _, f := range fulfillments {
		if f < result {
			result = f
		}
	}
	return result
}

// ── BeanDependency ────────────────────────────────────────────────────────────

// BeanDependency is a need for one or more beans, declared by a configuration.
type BeanDependency interface {
	// Fulfill tries to satisfy the dependency against p.
	Fulfill(p BeansProvider) Fulfillment
}

// SingleBeanDependency requires exactly one bean of type T, optionally named.
// Once found, the bean is cached and p is never queried again.
type SingleBeanDependency[T any] struct {
	name  string
	bean  T
	found bool
}

// NewSingleBeanDependency creates a required dependency. An empty name
// matches any bean of type T.
func NewSingleBeanDependency[T any](name string) *SingleBeanDependency[T] {
	return &SingleBeanDependency[T]{name: name}
}

func (d *SingleBeanDependency[T]) Fulfill(p BeansProvider) Fulfillment {
	if lookUpOnce(p, d.name, &d.bean, &d.found) {
		return Fulfilled
	}
	return Unfulfilled
}

// Get returns the bean once the dependency was fulfilled.
func (d *SingleBeanDependency[T]) Get() (T, bool) { return d.bean, d.found }

func (d *SingleBeanDependency[T]) String() string {
	return describe("required bean", d.name, TypeOf[T]())
}

// OptionalSingleBeanDependency is SingleBeanDependency for a bean the
// configuration can do without.
type OptionalSingleBeanDependency[T any] struct {
	name  string
	bean  T
	found bool
}

// NewOptionalSingleBeanDependency creates an optional dependency.
func NewOptionalSingleBeanDependency[T any](name string) *OptionalSingleBeanDependency[T] {
	return &OptionalSingleBeanDependency[T]{name: name}
}

func (d *OptionalSingleBeanDependency[T]) Fulfill(p BeansProvider) Fulfillment {
	if lookUpOnce(p, d.name, &d.bean, &d.found) {
		return Fulfilled
	}
	return UnfulfilledOptional
}

// Get returns the bean if it was found.
func (d *OptionalSingleBeanDependency[T]) Get() (T, bool) { return d.bean, d.found }

func (d *OptionalSingleBeanDependency[T]) String() string {
	return describe("optional bean", d.name, TypeOf[T]())
}

// BeansOfTypeDependency asks for every bean of type T. More beans may appear
// at any time, so it is never Fulfilled and Get queries the provider live.
type BeansOfTypeDependency[T any] struct {
	provider BeansProvider
}

// NewBeansOfTypeDependency creates an all-of-type dependency.
func NewBeansOfTypeDependency[T any]() *BeansOfTypeDependency[T] {
	return &BeansOfTypeDependency[T]{}
}

func (d *BeansOfTypeDependency[T]) Fulfill(p BeansProvider) Fulfillment {
	d.provider = p
	return UnfulfilledOptional
}

// Get returns the beans currently known to the provider seen by the last
// Fulfill. It panics with ErrDependencyNotFulfilled before that.
func (d *BeansOfTypeDependency[T]) Get() []T {
	if d.provider == nil {
		panic(ErrDependencyNotFulfilled)
	}
	return LookUpBeans[T](d.provider)
}

func (d *BeansOfTypeDependency[T]) String() string {
	return describe("all beans", "", TypeOf[T]())
}

func lookUpOnce[T any](p BeansProvider, name string, bean *T, found *bool) bool {
	if *found {
		return true
	}
	if name == "" {
		*bean, *found = LookUpOptionalBeanOfType[T](p)
	} else {
		*bean, *found = LookUpOptionalBean[T](p, name)
	}
	return *found
}

func describe(kind, name string, typ reflect.Type) string {
	if name == "" {
		return fmt.Sprintf("%s of type '%s'", kind, typeName(typ))
	}
	return fmt.Sprintf("%s of type '%s' named '%s'", kind, typeName(typ), name)
}
