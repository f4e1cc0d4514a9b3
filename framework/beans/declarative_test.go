package beans_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-beans/framework/beans"
)

func collect(t *testing.T, r *beans.BeanRegistry, configurations ...beans.BeanConfiguration) error {
	t.Helper()
	return beans.NewCollector(r).CollectBeans(configurations)
}

func TestBeanDefinition_CanProduce(t *testing.T) {
	def := beans.NewBeanDefinition("", beans.TypeOf[*englishGreeter](), nil)
	assert.True(t, def.CanProduce(beans.TypeOf[*englishGreeter]()))
	assert.True(t, def.CanProduce(beans.TypeOf[greeter]()))
	assert.True(t, def.CanProduce(beans.TypeOf[any]()))
	assert.False(t, def.CanProduce(beans.TypeOf[*frenchGreeter]()))

	scoped := beans.NewScopedBeanDefinition("", beans.TypeOf[*store](), beans.TypeOf[*englishGreeter](), nil)
	assert.True(t, scoped.CanProduce(beans.TypeOf[greeter]()), "a scoped definition also produces its target type")
}

func TestBeanDefinition_ProducesOnlyOnce(t *testing.T) {
	def := beans.NewBeanDefinition("s", beans.TypeOf[*store](), func(beans.BeansProvider) (any, error) {
		return &store{}, nil
	})
	r := beans.NewBeanRegistry()

	assert.Equal(t, beans.Pending, def.State())
	_, err := def.Produce(r)
	require.NoError(t, err)
	assert.Equal(t, beans.Produced, def.State())

	_, err = def.Produce(r)
	assert.ErrorIs(t, err, beans.ErrBeanAlreadyProduced)
}

func TestBeanDefinition_RejectsWrongTypeAndNil(t *testing.T) {
	r := beans.NewBeanRegistry()

	wrong := beans.NewBeanDefinition("", beans.TypeOf[*store](), func(beans.BeansProvider) (any, error) {
		return &frenchGreeter{}, nil
	})
	_, err := wrong.Produce(r)
	assert.Error(t, err)
	assert.Equal(t, beans.Pending, wrong.State())

	var none *store
	nilBean := beans.NewBeanDefinition("", beans.TypeOf[*store](), func(beans.BeansProvider) (any, error) {
		return none, nil
	})
	_, err = nilBean.Produce(r)
	assert.ErrorIs(t, err, beans.ErrNilBean)
}

func TestBeanReference_UseBeforeProductionPanics(t *testing.T) {
	d := beans.NewDeclarativeConfiguration()
	ref := beans.Declare(d, "s", func(beans.BeansProvider) (*store, error) { return &store{}, nil })

	assert.PanicsWithValue(t, beans.ErrBeanNotProduced, func() { ref.Use() })
}

func TestDeclarativeConfiguration_DefinesInOrder(t *testing.T) {
	d := beans.NewDeclarativeConfiguration()
	first := beans.Declare(d, "first", func(beans.BeansProvider) (*store, error) { return &store{id: 1}, nil })
	beans.Declare(d, "", func(beans.BeansProvider) (*englishGreeter, error) {
		return &englishGreeter{name: "unnamed"}, nil
	})

	r := beans.NewBeanRegistry()
	require.NoError(t, collect(t, r, d))

	assert.Equal(t, 1, first.Use().id)
	assert.Equal(t, []string{"first", "github.com/km-arc/go-beans/framework/beans_test.englishGreeter"}, r.BeanNames())
}

func TestDeclarativeConfiguration_ProducesSiblingsOnDemand(t *testing.T) {
	d := beans.NewDeclarativeConfiguration()
	storeCalls := 0

	beans.Declare(d, "service", func(p beans.BeansProvider) (*englishGreeter, error) {
		s, err := beans.LookUpBean[*store](p, "store")
		if err != nil {
			return nil, err
		}
		return &englishGreeter{name: string(rune('0' + s.id))}, nil
	})
	beans.Declare(d, "store", func(beans.BeansProvider) (*store, error) {
		storeCalls++
		return &store{id: 4}, nil
	})

	r := beans.NewBeanRegistry()
	require.NoError(t, collect(t, r, d))

	assert.Equal(t, "hello 4", beans.MustLookUpBean[greeter](r, "service").Greet())
	assert.Equal(t, 1, storeCalls)
	assert.Equal(t, []string{"store", "service"}, r.BeanNames())
}

func TestDeclarativeConfiguration_UnnamedSiblingUnderSuffixedName(t *testing.T) {
	r := beans.NewBeanRegistry()
	r.RegisterNamedBean(storeName, "not a store")

	d := beans.NewDeclarativeConfiguration()
	var found *store
	beans.Declare(d, "consumer", func(p beans.BeansProvider) (*englishGreeter, error) {
		s, ok := beans.LookUpOptionalBean[*store](p, storeName)
		if !ok {
			return nil, errors.New("unnamed sibling was not found")
		}
		found = s
		return &englishGreeter{name: "consumer"}, nil
	})
	beans.Declare(d, "", func(beans.BeansProvider) (*store, error) { return &store{id: 7}, nil })

	require.NoError(t, collect(t, r, d))
	require.NotNil(t, found)
	assert.Equal(t, 7, found.id)
	assert.Same(t, found, beans.MustLookUpBean[*store](r, storeName+"2"))
	assert.Equal(t, "not a store", beans.MustLookUpBean[string](r, storeName))
}

func TestDeclarativeConfiguration_ReferencesProduceOnDemand(t *testing.T) {
	d := beans.NewDeclarativeConfiguration()
	var storeRef beans.BeanReference[*store]

	beans.Declare(d, "service", func(beans.BeansProvider) (*englishGreeter, error) {
		return &englishGreeter{name: "with store"}, nil
	})
	consumer := beans.Declare(d, "consumer", func(beans.BeansProvider) (*store, error) {
		return &store{id: storeRef.Use().id * 10}, nil
	})
	storeRef = beans.Declare(d, "store", func(beans.BeansProvider) (*store, error) {
		return &store{id: 2}, nil
	})

	require.NoError(t, collect(t, beans.NewBeanRegistry(), d))
	assert.Equal(t, 20, consumer.Use().id)
}

func TestDeclarativeConfiguration_ByTypeAndAllOfTypeLookups(t *testing.T) {
	d := beans.NewDeclarativeConfiguration()
	var seen int

	beans.Declare(d, "count", func(p beans.BeansProvider) (*store, error) {
		seen = len(beans.LookUpBeans[greeter](p))
		first, err := beans.LookUpBeanOfType[*frenchGreeter](p)
		if err != nil {
			return nil, err
		}
		_ = first
		return &store{id: seen}, nil
	})
	beans.Declare(d, "en", func(beans.BeansProvider) (*englishGreeter, error) { return &englishGreeter{}, nil })
	beans.Declare(d, "fr", func(beans.BeansProvider) (*frenchGreeter, error) { return &frenchGreeter{}, nil })

	require.NoError(t, collect(t, beans.NewBeanRegistry(), d))
	assert.Equal(t, 2, seen)
}

func TestDeclarativeConfiguration_SiblingCycleFails(t *testing.T) {
	d := beans.NewDeclarativeConfiguration()
	beans.Declare(d, "a", func(p beans.BeansProvider) (*store, error) {
		return beans.LookUpBean[*store](p, "b")
	})
	beans.Declare(d, "b", func(p beans.BeansProvider) (*store, error) {
		return beans.LookUpBean[*store](p, "a")
	})

	r := beans.NewBeanRegistry()
	err := collect(t, r, d)

	require.Error(t, err)
	assert.True(t, beans.IsBeanInstantiationError(err))
	var noSuchBean *beans.NoSuchBeanError
	assert.ErrorAs(t, err, &noSuchBean)
	assert.Equal(t, 0, r.Len())
}

func TestDeclarativeConfiguration_SelfReferenceFails(t *testing.T) {
	d := beans.NewDeclarativeConfiguration()
	var self beans.BeanReference[*store]
	self = beans.Declare(d, "self", func(beans.BeansProvider) (*store, error) {
		return self.Use(), nil
	})

	err := collect(t, beans.NewBeanRegistry(), d)
	assert.ErrorIs(t, err, beans.ErrBeanInProduction)
}

func TestDeclarativeConfiguration_ProducerErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	d := beans.NewDeclarativeConfiguration()
	beans.Declare(d, "s", func(beans.BeansProvider) (*store, error) { return nil, boom })

	err := collect(t, beans.NewBeanRegistry(), d)
	require.ErrorIs(t, err, boom)

	var instantiation *beans.BeanInstantiationError
	require.ErrorAs(t, err, &instantiation)
	assert.Equal(t, "bean definition of type '*beans_test.store' named 's'", instantiation.Subject)
}

func TestDeclarativeConfiguration_WaitsForOtherConfigurations(t *testing.T) {
	d := beans.NewDeclarativeConfiguration()
	dep := beans.RequireNamedBean[*store](d, "external")
	beans.Declare(d, "derived", func(beans.BeansProvider) (*store, error) {
		s, _ := dep.Get()
		return &store{id: s.id + 1}, nil
	})
	external := beans.ConfigurationFunc(func(c beans.BeansCollector) error {
		c.DefineNamedBean("external", &store{id: 10})
		return nil
	})

	r := beans.NewBeanRegistry()
	require.NoError(t, collect(t, r, d, external))
	assert.Equal(t, 11, beans.MustLookUpBean[*store](r, "derived").id)
}

func TestDeclareScoped_ResolvesThroughScope(t *testing.T) {
	d := beans.NewDeclarativeConfiguration()
	calls := 0
	beans.DeclareScoped(d, "proto", beans.PrototypeScope, func(beans.BeansProvider) (*store, error) {
		calls++
		return &store{id: calls}, nil
	})
	var viaType *store
	beans.Declare(d, "user", func(p beans.BeansProvider) (*englishGreeter, error) {
		s, err := beans.LookUpBeanOfType[*store](p)
		viaType = s
		return &englishGreeter{}, err
	})

	r := beans.NewBeanRegistry()
	require.NoError(t, collect(t, r, d))

	require.NotNil(t, viaType)
	assert.Equal(t, 1, viaType.id)
	assert.Equal(t, 2, beans.MustLookUpBean[*store](r, "proto").id)
}
