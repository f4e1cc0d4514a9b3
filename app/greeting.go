// Package app is a small application assembled from bean configurations:
// a greeter declared declaratively, a per-session visit counter in the
// foreground scope and HTTP routes contributed as a bean.
package app

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/beans/foreground"
	"github.com/km-arc/go-beans/framework/beans/manifest"
	"github.com/km-arc/go-beans/framework/config"
	gohttp "github.com/km-arc/go-beans/framework/http"
	"github.com/km-arc/go-beans/framework/routing"
)

// ── Beans ─────────────────────────────────────────────────────────────────────

// Clock tells the time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Greeter builds greetings signed with the application name.
type Greeter struct {
	clock     Clock
	signature string
}

// Greet greets who according to the time of day.
func (g *Greeter) Greet(who string) string {
	return fmt.Sprintf("Good %s, %s! (%s)", partOfDay(g.clock.Now()), who, g.signature)
}

func partOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "morning"
	case h < 18:
		return "afternoon"
	default:
		return "evening"
	}
}

// VisitCounter counts greetings within one session.
type VisitCounter struct {
	visits  atomic.Int64
	session atomic.Pointer[Session]
}

// Visit records a visit and returns the count so far.
func (v *VisitCounter) Visit() int64 { return v.visits.Add(1) }

// SetController implements foreground.Aware.
func (v *VisitCounter) SetController(c foreground.Controller) {
	s, _ := c.(*Session)
	v.session.Store(s)
}

// Session returns the session the counter belongs to.
func (v *VisitCounter) Session() *Session { return v.session.Load() }

// ── Controller ────────────────────────────────────────────────────────────────

// GreetingController serves GET /greet/{name}.
type GreetingController struct {
	greeter  *Greeter
	provider beans.BeansProvider
}

// RegisterRoutes implements routing.Registrar.
func (c *GreetingController) RegisterRoutes(r *routing.Router) {
	r.Get("/greet/{name}", c.Greet)
}

func (c *GreetingController) Greet(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	body := map[string]any{"greeting": c.greeter.Greet(gohttp.NewRequest(r).RouteParam("name"))}

	if counter, ok := beans.LookUpOptionalBean[*VisitCounter](c.provider, "visits"); ok {
		body["visits"] = counter.Visit()
		if s := counter.Session(); s != nil {
			body["session"] = s.ID
		}
	}
	res.Success(body)
}

// ── Configurations ────────────────────────────────────────────────────────────

// NewGreetingConfiguration declares the clock, the greeter and the
// foreground-scoped visit counter.
func NewGreetingConfiguration(cfg *config.Config) *beans.DeclarativeConfiguration {
	return newGreetingConfiguration(cfg.App.Name, systemClock{})
}

func newGreetingConfiguration(signature string, clock Clock) *beans.DeclarativeConfiguration {
	d := beans.NewDeclarativeConfiguration()
	clockRef := beans.Declare(d, "clock", func(beans.BeansProvider) (Clock, error) {
		return clock, nil
	})
	beans.Declare(d, "greeter", func(beans.BeansProvider) (*Greeter, error) {
		return &Greeter{clock: clockRef.Use(), signature: signature}, nil
	})
	beans.DeclareScoped(d, "visits", foreground.Scope, func(beans.BeansProvider) (*VisitCounter, error) {
		return &VisitCounter{}, nil
	})
	return d
}

// GreetingRoutesConfiguration contributes the GreetingController.
type GreetingRoutesConfiguration struct {
	beans.BaseConfiguration
	greeter *beans.SingleBeanDependency[*Greeter]
}

func NewGreetingRoutesConfiguration() *GreetingRoutesConfiguration {
	c := &GreetingRoutesConfiguration{}
	c.greeter = beans.RequireBean[*Greeter](c)
	return c
}

func (c *GreetingRoutesConfiguration) DefineBeans(collector beans.BeansCollector) error {
	greeter, _ := c.greeter.Get()
	collector.DefineBean(&GreetingController{greeter: greeter, provider: collector})
	return nil
}

// Catalog lists the configurations manifests may name.
func Catalog() *manifest.Catalog {
	c := manifest.NewCatalog()
	c.AddWithConfig("app.GreetingConfiguration", func(cfg *config.Config) (beans.BeanConfiguration, error) {
		return NewGreetingConfiguration(cfg), nil
	})
	c.Add("app.GreetingRoutesConfiguration", func() beans.BeanConfiguration {
		return NewGreetingRoutesConfiguration()
	})
	return c
}
