package beans

import (
	"sync"

	"github.com/pkg/errors"
)

// SingletonScope is the name of the singleton scope.
const SingletonScope = "singleton"

// SingletonScopedFactoryBeanHandler produces each bean once and caches it
// by name. It is always active.
type SingletonScopedFactoryBeanHandler struct {
	mu      sync.Mutex
	entries map[string]*singletonEntry
}

// singletonEntry is guarded by the handler lock, which is released while
// the bean is produced so producers may look up other singletons.
type singletonEntry struct {
	bean      any
	done      bool
	producing bool
}

// NewSingletonScopedFactoryBeanHandler creates an empty singleton scope.
func NewSingletonScopedFactoryBeanHandler() *SingletonScopedFactoryBeanHandler {
	return &SingletonScopedFactoryBeanHandler{entries: make(map[string]*singletonEntry)}
}

func (h *SingletonScopedFactoryBeanHandler) Name() string   { return SingletonScope }
func (h *SingletonScopedFactoryBeanHandler) IsActive() bool { return true }

// GetBean returns the cached bean for name. A failed production is not
// cached, so the next lookup tries again. Asking for name while it is being
// produced fails with ErrBeanInProduction.
func (h *SingletonScopedFactoryBeanHandler) GetBean(name string, factory ScopedFactoryBean, p BeansProvider) (any, error) {
	h.mu.Lock()
	entry, ok := h.entries[name]
	if !ok {
		entry = &singletonEntry{}
		h.entries[name] = entry
	}
	switch {
	case entry.done:
		bean := entry.bean
		h.mu.Unlock()
		return bean, nil
	case entry.producing:
		h.mu.Unlock()
		return nil, errors.WithStack(ErrBeanInProduction)
	}
	entry.producing = true
	h.mu.Unlock()

	bean, err := factory.ProduceBean(p)

	h.mu.Lock()
	defer h.mu.Unlock()
	entry.producing = false
	if err != nil {
		return nil, err
	}
	entry.bean, entry.done = bean, true
	return bean, nil
}
