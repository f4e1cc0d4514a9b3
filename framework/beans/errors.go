package beans

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// ── Sentinels ─────────────────────────────────────────────────────────────────

var (
	// ErrBeanAlreadyProduced is returned when a definition is asked to produce twice.
	ErrBeanAlreadyProduced = errors.New("beans: bean definition was already produced")

	// ErrBeanNotProduced is the panic value when a reference is read before production.
	ErrBeanNotProduced = errors.New("beans: bean definition was not produced yet")

	// ErrBeanInProduction is returned when a bean is requested again while it is being produced.
	ErrBeanInProduction = errors.New("beans: bean definition is currently being produced")

	// ErrDependencyNotFulfilled is the panic value when an all-of-type
	// dependency is read before it was fulfilled.
	ErrDependencyNotFulfilled = errors.New("beans: dependency was not fulfilled yet")

	// ErrDependenciesSealed is the panic value when a configuration declares a
	// dependency after its readiness was evaluated.
	ErrDependenciesSealed = errors.New("beans: dependencies must be declared before readiness is evaluated")

	// ErrNilBean is the panic value when nil is registered as a bean.
	ErrNilBean = errors.New("beans: cannot register a nil bean")

	// ErrNotInitialized is the panic value when the global provider is used
	// before Install.
	ErrNotInitialized = errors.New("beans: global beans provider is not installed")
)

// ── NoSuchBeanError ───────────────────────────────────────────────────────────

// NoSuchBeanError reports a failed required lookup.
type NoSuchBeanError struct {
	Name string
	Type reflect.Type
}

func (e *NoSuchBeanError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("no bean of type '%s' found", typeName(e.Type))
	}
	return fmt.Sprintf("no bean of type '%s' named '%s' found", typeName(e.Type), e.Name)
}

// ── BeanInstantiationError ────────────────────────────────────────────────────

// BeanInstantiationError aborts bean collection. Subject names what could not
// be instantiated: a configuration, a definition or a manifest entry.
type BeanInstantiationError struct {
	Subject string
	Err     error
}

// NewBeanInstantiationError wraps cause for subject.
func NewBeanInstantiationError(subject string, cause error) *BeanInstantiationError {
	return &BeanInstantiationError{Subject: subject, Err: cause}
}

func (e *BeanInstantiationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to instantiate %s", e.Subject)
	}
	return fmt.Sprintf("failed to instantiate %s: %v", e.Subject, e.Err)
}

func (e *BeanInstantiationError) Unwrap() error { return e.Err }

// Cause lets errors.Cause walk through the error.
func (e *BeanInstantiationError) Cause() error { return e.Err }

// IsBeanInstantiationError reports whether err wraps a *BeanInstantiationError.
func IsBeanInstantiationError(err error) bool {
	var target *BeanInstantiationError
	return errors.As(err, &target)
}

func typeName(typ reflect.Type) string {
	if typ == nil {
		return "<nil>"
	}
	return typ.String()
}
