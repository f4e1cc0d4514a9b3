package beans

// PrototypeScope is the name of the prototype scope.
const PrototypeScope = "prototype"

// PrototypeScopedFactoryBeanHandler produces a new bean on every lookup.
type PrototypeScopedFactoryBeanHandler struct{}

// NewPrototypeScopedFactoryBeanHandler creates the prototype scope.
func NewPrototypeScopedFactoryBeanHandler() *PrototypeScopedFactoryBeanHandler {
	return &PrototypeScopedFactoryBeanHandler{}
}

func (h *PrototypeScopedFactoryBeanHandler) Name() string   { return PrototypeScope }
func (h *PrototypeScopedFactoryBeanHandler) IsActive() bool { return true }

func (h *PrototypeScopedFactoryBeanHandler) GetBean(_ string, factory ScopedFactoryBean, p BeansProvider) (any, error) {
	return factory.ProduceBean(p)
}
