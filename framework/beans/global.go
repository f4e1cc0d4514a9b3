package beans

import "sync/atomic"

// global is the provider installed by the application bootstrap, for entry
// points that cannot be handed a provider explicitly.
var global atomic.Pointer[BeansProvider]

// Install makes p the process-wide provider returned by Global.
func Install(p BeansProvider) {
	global.Store(&p)
}

// Installed reports whether Install was called.
func Installed() bool {
	return global.Load() != nil
}

// Global returns the installed provider. Calling it before Install is a
// programming error and panics with ErrNotInitialized.
//
//	mailer := beans.MustLookUpBean[*Mailer](beans.Global(), "mailer")
func Global() BeansProvider {
	p := global.Load()
	if p == nil {
		panic(ErrNotInitialized)
	}
	return *p
}

// Reset uninstalls the global provider.
func Reset() {
	global.Store(nil)
}
