package beans_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-beans/framework/beans"
)

func TestMinFulfillment(t *testing.T) {
	U, O, F := beans.Unfulfilled, beans.UnfulfilledOptional, beans.Fulfilled
	tests := []struct {
		name string
		in   []beans.Fulfillment
		want beans.Fulfillment
	}{
		{"empty is fulfilled", nil, F},
		{"all fulfilled", []beans.Fulfillment{F, F}, F},
		{"optional wins over fulfilled", []beans.Fulfillment{F, O, F}, O},
		{"unfulfilled wins over everything", []beans.Fulfillment{O, F, U}, U},
		{"order does not matter", []beans.Fulfillment{U, O, F}, U},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, beans.MinFulfillment(tt.in...))
		})
	}
}

func TestReadinessOf(t *testing.T) {
	assert.Equal(t, beans.Ready, beans.ReadinessOf(beans.Fulfilled))
	assert.Equal(t, beans.Delay, beans.ReadinessOf(beans.UnfulfilledOptional))
	assert.Equal(t, beans.Unready, beans.ReadinessOf(beans.Unfulfilled))
}

func TestSingleBeanDependency_CachesOnceFound(t *testing.T) {
	r := beans.NewBeanRegistry()
	p := &countingProvider{BeansProvider: r}
	d := beans.NewSingleBeanDependency[*store]("store")

	assert.Equal(t, beans.Unfulfilled, d.Fulfill(p))
	_, ok := d.Get()
	assert.False(t, ok)

	s := &store{id: 1}
	r.RegisterNamedBean("store", s)
	assert.Equal(t, beans.Fulfilled, d.Fulfill(p))
	lookups := p.lookups

	r.RegisterNamedBean("store", &store{id: 2})
	assert.Equal(t, beans.Fulfilled, d.Fulfill(p))
	assert.Equal(t, lookups, p.lookups, "a fulfilled dependency must not query again")

	got, ok := d.Get()
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestSingleBeanDependency_ByType(t *testing.T) {
	r := beans.NewBeanRegistry()
	d := beans.NewSingleBeanDependency[greeter]("")

	assert.Equal(t, beans.Unfulfilled, d.Fulfill(r))
	r.RegisterBean(&frenchGreeter{})
	assert.Equal(t, beans.Fulfilled, d.Fulfill(r))
}

func TestOptionalSingleBeanDependency(t *testing.T) {
	r := beans.NewBeanRegistry()
	d := beans.NewOptionalSingleBeanDependency[*store]("")

	assert.Equal(t, beans.UnfulfilledOptional, d.Fulfill(r))
	r.RegisterBean(&store{id: 3})
	assert.Equal(t, beans.Fulfilled, d.Fulfill(r))

	got, ok := d.Get()
	require.True(t, ok)
	assert.Equal(t, 3, got.id)
}

func TestBeansOfTypeDependency_IsNeverFulfilledAndReadsLive(t *testing.T) {
	r := beans.NewBeanRegistry()
	d := beans.NewBeansOfTypeDependency[greeter]()

	assert.PanicsWithValue(t, beans.ErrDependencyNotFulfilled, func() { d.Get() })

	r.RegisterBean(&frenchGreeter{})
	assert.Equal(t, beans.UnfulfilledOptional, d.Fulfill(r))
	assert.Len(t, d.Get(), 1)

	r.RegisterBean(&englishGreeter{})
	assert.Len(t, d.Get(), 2, "beans registered after Fulfill must be visible")
}

func TestDependency_String(t *testing.T) {
	assert.Equal(t, "required bean of type '*beans_test.store' named 's'",
		beans.NewSingleBeanDependency[*store]("s").String())
	assert.Equal(t, "optional bean of type 'beans_test.greeter'",
		beans.NewOptionalSingleBeanDependency[greeter]("").String())
	assert.Equal(t, "all beans of type 'beans_test.greeter'",
		beans.NewBeansOfTypeDependency[greeter]().String())
}

// ── BaseConfiguration ─────────────────────────────────────────────────────────

func TestBaseConfiguration_Readiness(t *testing.T) {
	r := beans.NewBeanRegistry()

	empty := newTestConfiguration("empty", nil)
	assert.Equal(t, beans.Ready, empty.IsReadyToDefineBeans(r))

	c := newTestConfiguration("c", nil)
	beans.RequireNamedBean[*store](c, "store")
	beans.RequireOptionalBean[greeter](c)
	assert.Len(t, c.Dependencies(), 2)
	assert.Equal(t, beans.Unready, c.IsReadyToDefineBeans(r))

	r.RegisterNamedBean("store", &store{})
	assert.Equal(t, beans.Delay, c.IsReadyToDefineBeans(r))

	r.RegisterBean(&frenchGreeter{})
	assert.Equal(t, beans.Ready, c.IsReadyToDefineBeans(r))
}

func TestBaseConfiguration_DependenciesSealedAfterReadiness(t *testing.T) {
	c := newTestConfiguration("c", nil)
	c.IsReadyToDefineBeans(beans.NewBeanRegistry())

	assert.PanicsWithValue(t, beans.ErrDependenciesSealed, func() {
		beans.RequireBean[*store](c)
	})
}
