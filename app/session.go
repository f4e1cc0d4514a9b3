package app

import "github.com/km-arc/go-beans/framework/beans/foreground"

// Session is the foreground controller of one serving session. Beans of
// the foreground scope live as long as the session is not destroyed.
type Session struct {
	ID    string
	store *foreground.BeanStore
}

// NewSession creates a session with an empty bean store.
func NewSession(id string) *Session {
	return &Session{ID: id, store: foreground.NewBeanStore()}
}

// BeanStore implements foreground.Controller.
func (s *Session) BeanStore() *foreground.BeanStore { return s.store }
