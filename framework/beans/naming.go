package beans

import (
	"reflect"
	"strconv"
)

// PreferredBeanName returns the name generated for unnamed beans of typ:
// the package-qualified type name with pointers dereferenced.
//
//	beans.PreferredBeanName(beans.TypeOf[*mail.Mailer]())  // "example.com/app/mail.Mailer"
func PreferredBeanName(typ reflect.Type) string {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Name() == "" || typ.PkgPath() == "" {
		return typ.String()
	}
	return typ.PkgPath() + "." + typ.Name()
}

// uniqueName appends 2, 3, ... to base until taken reports false.
func uniqueName(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for i := 2; ; i++ {
		name := base + strconv.Itoa(i)
		if !taken(name) {
			return name
		}
	}
}
