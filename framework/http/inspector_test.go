package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-beans/framework/beans"
	gohttp "github.com/km-arc/go-beans/framework/http"
	"github.com/km-arc/go-beans/framework/routing"
)

type clock struct{}

type greeter struct{ greeting string }

func newInspectedRouter(t *testing.T) *routing.Router {
	t.Helper()
	registry := beans.NewBeanRegistry()
	registry.RegisterNamedBean("clock", &clock{})
	registry.RegisterNamedBean("greeter", beans.Lazy(func(beans.BeansProvider) (*greeter, error) {
		t.Fatal("the inspector must not produce scoped beans")
		return nil, nil
	}))

	router := routing.New(nil)
	gohttp.NewInspector(registry).RegisterRoutes(router)
	return router
}

func get(t *testing.T, router *routing.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var body struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body.Data
}

func TestInspector_List(t *testing.T) {
	rr := get(t, newInspectedRouter(t), "/beans")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	views := decode[[]gohttp.BeanView](t, rr)
	assert.Equal(t, []gohttp.BeanView{
		{Name: "clock", Type: "*http_test.clock"},
		{Name: "greeter", Type: "*http_test.greeter", Scope: beans.SingletonScope},
	}, views)
}

func TestInspector_ListFiltersByType(t *testing.T) {
	tests := []struct {
		filter string
		want   []string
	}{
		{"GREETER", []string{"greeter"}},
		{"http_test", []string{"clock", "greeter"}},
		{"nothing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			views := decode[[]gohttp.BeanView](t, get(t, newInspectedRouter(t), "/beans?type="+tt.filter))
			var names []string
			for _, v := range views {
				names = append(names, v.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestInspector_Show(t *testing.T) {
	rr := get(t, newInspectedRouter(t), "/beans/clock")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, gohttp.BeanView{Name: "clock", Type: "*http_test.clock"}, decode[gohttp.BeanView](t, rr))
}

func TestInspector_ShowMissing(t *testing.T) {
	rr := get(t, newInspectedRouter(t), "/beans/unknown")
	require.Equal(t, http.StatusNotFound, rr.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "No bean named 'unknown'.", body["message"])
}

// ── Response ─────────────────────────────────────────────────────────────────

func TestResponse_Error(t *testing.T) {
	rr := httptest.NewRecorder()
	gohttp.NewResponse(rr).Error(http.StatusBadRequest, "bad input")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"bad input"}`, rr.Body.String())
}

func TestResponse_NotFoundDefaultMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	gohttp.NewResponse(rr).NotFound()

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"Not found."}`, rr.Body.String())
}

func TestRequest_QueryFallback(t *testing.T) {
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodGet, "/beans?type=clock", nil))
	assert.Equal(t, "clock", req.Query("type"))
	assert.Equal(t, "all", req.Query("missing", "all"))
}
