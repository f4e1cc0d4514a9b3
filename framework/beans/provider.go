package beans

import "reflect"

// ── BeansProvider ─────────────────────────────────────────────────────────────

// BeansProvider gives read access to beans.
//
// A request for type T matches every bean whose runtime type is assignable
// to T, so asking for an interface returns any bean implementing it.
type BeansProvider interface {
	// LookUpOptionalBean returns the bean registered under name if it is
	// assignable to typ.
	LookUpOptionalBean(name string, typ reflect.Type) (any, bool)

	// LookUpOptionalBeanByType returns one bean assignable to typ. Which one
	// is returned when several match is unspecified.
	LookUpOptionalBeanByType(typ reflect.Type) (any, bool)

	// LookUpBeans returns every bean assignable to typ.
	LookUpBeans(typ reflect.Type) []any
}

// TypeOf returns the type tag used to look up beans of type T.
//
//	beans.TypeOf[*Mailer]()      // concrete pointer type
//	beans.TypeOf[io.Closer]()    // interface type
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// assignable reports whether bean can be used as a value of typ.
func assignable(bean any, typ reflect.Type) bool {
	if bean == nil {
		return false
	}
	return reflect.TypeOf(bean).AssignableTo(typ)
}

// IsNil reports whether v is nil or a typed nil.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// ── Generic lookups ───────────────────────────────────────────────────────────

// LookUpOptionalBean returns the bean named name if it is a T.
//
//	mailer, ok := beans.LookUpOptionalBean[*Mailer](registry, "mailer")
func LookUpOptionalBean[T any](p BeansProvider, name string) (T, bool) {
	bean, ok := p.LookUpOptionalBean(name, TypeOf[T]())
	if !ok {
		var zero T
		return zero, false
	}
	return bean.(T), true
}

// LookUpOptionalBeanOfType returns any bean that is a T.
func LookUpOptionalBeanOfType[T any](p BeansProvider) (T, bool) {
	bean, ok := p.LookUpOptionalBeanByType(TypeOf[T]())
	if !ok {
		var zero T
		return zero, false
	}
	return bean.(T), true
}

// LookUpBean is LookUpOptionalBean returning a *NoSuchBeanError when absent.
//
//	mailer, err := beans.LookUpBean[*Mailer](registry, "mailer")
func LookUpBean[T any](p BeansProvider, name string) (T, error) {
	bean, ok := LookUpOptionalBean[T](p, name)
	if !ok {
		return bean, &NoSuchBeanError{Name: name, Type: TypeOf[T]()}
	}
	return bean, nil
}

// LookUpBeanOfType is LookUpOptionalBeanOfType returning a *NoSuchBeanError
// when absent.
func LookUpBeanOfType[T any](p BeansProvider) (T, error) {
	bean, ok := LookUpOptionalBeanOfType[T](p)
	if !ok {
		return bean, &NoSuchBeanError{Type: TypeOf[T]()}
	}
	return bean, nil
}

// LookUpBeans returns every bean that is a T.
//
//	closers := beans.LookUpBeans[io.Closer](registry)
func LookUpBeans[T any](p BeansProvider) []T {
	found := p.LookUpBeans(TypeOf[T]())
	out := make([]T, 0, len(found))
	for _, bean := range found {
		out = append(out, bean.(T))
	}
	return out
}

// MustLookUpBean is LookUpBean for beans the caller cannot do without.
// It panics with the *NoSuchBeanError.
func MustLookUpBean[T any](p BeansProvider, name string) T {
	bean, err := LookUpBean[T](p, name)
	if err != nil {
		panic(err)
	}
	return bean
}

// MustLookUpBeanOfType panics with a *NoSuchBeanError when no T exists.
func MustLookUpBeanOfType[T any](p BeansProvider) T {
	bean, err := LookUpBeanOfType[T](p)
	if err != nil {
		panic(err)
	}
	return bean
}
