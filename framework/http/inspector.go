// Package http exposes HTTP helpers and the bean inspector.
//
// The inspector lists the beans of a registry:
//
//	inspector := gohttp.NewInspector(registry)
//	inspector.RegisterRoutes(router)
//
//	GET /beans                 {"data": [{"name": ..., "type": ..., "scope": ...}]}
//	GET /beans?type=Greeter    entries whose type contains "Greeter", case-insensitive
//	GET /beans/{name}          {"data": {...}} or 404
package http

import (
	"net/http"
	"strings"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/routing"
)

// BeanView is the JSON form of a registry entry.
type BeanView struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Scope string `json:"scope"`
}

func viewOf(entry beans.BeanEntry) BeanView {
	return BeanView{Name: entry.Name, Type: entry.Type.String(), Scope: entry.Scope}
}

// Inspector serves read-only views of a bean registry. Scoped beans are
// described, never produced.
type Inspector struct {
	registry *beans.BeanRegistry
}

// NewInspector creates an inspector for registry.
func NewInspector(registry *beans.BeanRegistry) *Inspector {
	return &Inspector{registry: registry}
}

// RegisterRoutes registers the inspector endpoints on r.
func (i *Inspector) RegisterRoutes(r *routing.Router) {
	r.Get("/beans", i.List)
	r.Get("/beans/{name}", i.Show)
}

// List handles GET /beans.
func (i *Inspector) List(w http.ResponseWriter, r *http.Request) {
	filter := strings.ToLower(NewRequest(r).Query("type"))

	views := make([]BeanView, 0, i.registry.Len())
	for _, entry := range i.registry.Entries() {
		view := viewOf(entry)
		if filter != "" && !strings.Contains(strings.ToLower(view.Type), filter) {
			continue
		}
		views = append(views, view)
	}
	NewResponse(w).Success(views)
}

// Show handles GET /beans/{name}.
func (i *Inspector) Show(w http.ResponseWriter, r *http.Request) {
	name := NewRequest(r).RouteParam("name")
	res := NewResponse(w)

	entry, ok := i.registry.Entry(name)
	if !ok {
		res.NotFound("No bean named '" + name + "'.")
		return
	}
	res.Success(viewOf(entry))
}
