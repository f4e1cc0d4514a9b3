package main

import (
	"context"
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/km-arc/go-beans/app"
	fapp "github.com/km-arc/go-beans/framework/app"
	"github.com/km-arc/go-beans/framework/beans"
)

func TestServe_DestroysSessionWhenRunFails(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()

	t.Setenv("APP_ENV", "testing")
	t.Setenv("APP_PORT", strconv.Itoa(busy.Addr().(*net.TCPAddr).Port))
	t.Cleanup(beans.Reset)

	application, err := fapp.New(filepath.Join(t.TempDir(), "missing.env")).
		WithLogger(zaptest.NewLogger(t)).
		WithManifests(fstest.MapFS{}).
		AddCatalog(app.Catalog()).
		Initialize(context.Background())
	require.NoError(t, err)

	err = serve(context.Background(), application)
	assert.ErrorContains(t, err, "failed to listen")
	assert.Nil(t, application.Foreground().Current(), "the session must leave the foreground")
}
