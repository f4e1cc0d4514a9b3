package beans_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-beans/framework/beans"
)

func TestGlobal_PanicsBeforeInstall(t *testing.T) {
	beans.Reset()
	t.Cleanup(beans.Reset)

	assert.False(t, beans.Installed())
	assert.PanicsWithValue(t, beans.ErrNotInitialized, func() { beans.Global() })
}

func TestGlobal_ReturnsInstalledProvider(t *testing.T) {
	t.Cleanup(beans.Reset)

	r := beans.NewBeanRegistry()
	r.RegisterNamedBean("s", &store{id: 1})
	beans.Install(r)

	assert.True(t, beans.Installed())
	assert.Equal(t, 1, beans.MustLookUpBean[*store](beans.Global(), "s").id)
}
