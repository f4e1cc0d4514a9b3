package beans

// BeanPostProcessor transforms beans as they are registered. The returned
// bean replaces the original and must stay assignable to the original's
// type. Returning nil keeps the original.
//
// A registered bean that implements BeanPostProcessor becomes a post-processor
// itself: it is applied to every bean registered afterwards and, once, to
// every bean already present except itself.
type BeanPostProcessor interface {
	PostProcessBean(name string, bean any) any
}

// BeanPostProcessorFunc adapts a function to a BeanPostProcessor.
//
//	registry.RegisterBeanPostProcessor(beans.BeanPostProcessorFunc(func(name string, bean any) any {
//	    log.Printf("registered %s", name)
//	    return bean
//	}))
type BeanPostProcessorFunc func(name string, bean any) any

func (f BeanPostProcessorFunc) PostProcessBean(name string, bean any) any { return f(name, bean) }

// BeanRegistryPostProcessor gets the fully populated registry once, after
// the Collector processed every configuration.
type BeanRegistryPostProcessor interface {
	PostProcessBeanRegistry(r *BeanRegistry) error
}

// BeansOfTypeConsumer is a post-processor handing every bean of type T to a
// consumer, including beans registered before it.
//
//	collector.DefineBean(beans.NewBeansOfTypeConsumer(func(h Handler) {
//	    router.Mount(h)
//	}))
type BeansOfTypeConsumer[T any] struct {
	consumer func(bean T)
}

// NewBeansOfTypeConsumer creates a consumer post-processor.
func NewBeansOfTypeConsumer[T any](consumer func(bean T)) *BeansOfTypeConsumer[T] {
	return &BeansOfTypeConsumer[T]{consumer: consumer}
}

func (c *BeansOfTypeConsumer[T]) PostProcessBean(_ string, bean any) any {
	if typed, ok := bean.(T); ok {
		c.consumer(typed)
	}
	return bean
}
