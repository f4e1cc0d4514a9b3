// Package foreground provides a bean scope bound to the lifecycle of the
// controller currently in the foreground: a screen, a console session, any
// unit of UI that comes and goes.
//
// Beans of the scope live in the controller's BeanStore. A controller that is
// recreated with the same store keeps its beans; a destroyed controller
// loses them.
//
//	holder := foreground.NewHolder(logger)
//	registry.AddBeanScope(foreground.NewHandler(holder))
//	collector.DefineNamedBean("presenter", foreground.Scoped(func(p beans.BeansProvider) (*Presenter, error) {
//	    return NewPresenter(), nil
//	}))
//
//	holder.Resumed(screen)   // lookups of "presenter" now succeed
//	holder.Destroyed(screen) // and fail again
package foreground

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/beans"
)

// Scope is the name of the foreground scope.
const Scope = "foreground"

// ErrNoForegroundController is returned by GetBean when no controller is resumed.
var ErrNoForegroundController = errors.New("foreground: no controller in the foreground")

// Controller is a unit of UI whose lifecycle is reported to a Holder.
// Controllers are compared with ==, so they are usually pointers.
type Controller interface {
	BeanStore() *BeanStore
}

// Aware beans are told which controller they currently serve. They get nil
// when that controller goes away.
type Aware interface {
	SetController(c Controller)
}

// ── BeanStore ─────────────────────────────────────────────────────────────────

// BeanStore holds the foreground-scoped beans of one controller.
type BeanStore struct {
	mu    sync.Mutex
	beans map[string]any
}

// NewBeanStore creates an empty store.
func NewBeanStore() *BeanStore {
	return &BeanStore{beans: make(map[string]any)}
}

// Get returns the bean stored under name.
func (s *BeanStore) Get(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bean, ok := s.beans[name]
	return bean, ok
}

// PutIfAbsent stores bean under name unless a bean is stored there already,
// and returns the stored bean.
func (s *BeanStore) PutIfAbsent(name string, bean any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.beans[name]; ok {
		return existing
	}
	s.beans[name] = bean
	return bean
}

// Len returns the number of stored beans.
func (s *BeanStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.beans)
}

// Release pushes nil into every Aware bean and keeps the beans.
func (s *BeanStore) Release() {
	for _, bean := range s.snapshot() {
		if aware, ok := bean.(Aware); ok {
			aware.SetController(nil)
		}
	}
}

// Clear releases and drops every bean.
func (s *BeanStore) Clear() {
	s.Release()
	s.mu.Lock()
	s.beans = make(map[string]any)
	s.mu.Unlock()
}

func (s *BeanStore) snapshot() []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]any, 0, len(s.beans))
	for _, bean := range s.beans {
		out = append(out, bean)
	}
	return out
}

// ── Holder ────────────────────────────────────────────────────────────────────

// Holder tracks the controller in the foreground.
type Holder struct {
	mu      sync.RWMutex
	current Controller
	logger  *zap.Logger
}

// NewHolder creates a holder with no foreground controller. logger may be nil.
func NewHolder(logger *zap.Logger) *Holder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Holder{logger: logger}
}

// Current returns the foreground controller, or nil.
func (h *Holder) Current() Controller {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Resumed brings c to the foreground.
func (h *Holder) Resumed(c Controller) {
	h.mu.Lock()
	h.current = c
	h.mu.Unlock()
	h.logger.Debug("controller resumed", zap.Any("controller", c))
}

// Paused moves c out of the foreground if it is there.
func (h *Holder) Paused(c Controller) {
	h.leave(c)
	h.logger.Debug("controller paused", zap.Any("controller", c))
}

// Detached is reported when c goes away but a recreated controller will
// take over its store. Aware beans forget c and the beans are kept.
func (h *Holder) Detached(c Controller) {
	h.leave(c)
	c.BeanStore().Release()
	h.logger.Debug("controller detached", zap.Any("controller", c))
}

// Destroyed is reported when c goes away for good. Its beans are dropped.
func (h *Holder) Destroyed(c Controller) {
	h.leave(c)
	c.BeanStore().Clear()
	h.logger.Debug("controller destroyed", zap.Any("controller", c))
}

func (h *Holder) leave(c Controller) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == c {
		h.current = nil
	}
}

// ── Handler ───────────────────────────────────────────────────────────────────

// Handler is the ScopedFactoryBeanHandler of the foreground scope.
type Handler struct {
	holder *Holder
}

var _ beans.ScopedFactoryBeanHandler = (*Handler)(nil)

// NewHandler creates the scope handler backed by holder.
func NewHandler(holder *Holder) *Handler {
	return &Handler{holder: holder}
}

func (h *Handler) Name() string { return Scope }

// IsActive reports whether a controller is in the foreground.
func (h *Handler) IsActive() bool { return h.holder.Current() != nil }

// GetBean returns the bean from the foreground controller's store, producing
// it on first use. Aware beans are handed the controller on every call.
func (h *Handler) GetBean(name string, factory beans.ScopedFactoryBean, p beans.BeansProvider) (any, error) {
	c := h.holder.Current()
	if c == nil {
		return nil, errors.WithStack(ErrNoForegroundController)
	}

	store := c.BeanStore()
	bean, ok := store.Get(name)
	if !ok {
		produced, err := factory.ProduceBean(p)
		if err != nil {
			return nil, err
		}
		bean = store.PutIfAbsent(name, produced)
	}

	if aware, ok := bean.(Aware); ok {
		aware.SetController(c)
	}
	return bean, nil
}

// Scoped creates a factory bean for the foreground scope.
func Scoped[T any](producer func(p beans.BeansProvider) (T, error)) *beans.GenericScopedFactoryBean[T] {
	return beans.NewScopedFactoryBean(Scope, producer)
}
