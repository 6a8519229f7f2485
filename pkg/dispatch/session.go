// Package dispatch bridges a layout node to a widget supplied by whichever
// rendering backend is active, without knowing the concrete widget types.
package dispatch

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formlayout/pkg/widgets"
)

// Option customises a Session.
type Option func(*Session)

// WithLogger attaches a logger used for attach diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithID overrides the generated session identifier.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// Session binds one displayed node to at most one widget instance. The widget
// is created on the first Attach that finds an active backend and is kept for
// the whole session, even if the active backend changes afterwards.
type Session struct {
	id       string
	resolver widgets.Resolver
	logger   *zap.Logger

	widget widgets.Widget
	inputs widgets.Inputs
	pushed bool
}

// NewSession creates a session resolving widgets through resolver.
func NewSession(resolver widgets.Resolver, options ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		resolver: resolver,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Attach pushes in to the session widget, creating the widget first when
// needed. It reports whether a widget received the inputs; while no backend
// is active the call is a no-op and the next Attach retries.
func (s *Session) Attach(in widgets.Inputs) bool {
	if s.widget == nil {
		s.widget = s.instantiate()
		if s.widget == nil {
			s.logger.Debug("widget attach deferred: no active backend",
				zap.String("session", s.id),
				zap.Ints("layout_index", in.LayoutIndex))
			return false
		}
	}
	s.inputs = in
	s.pushed = true
	s.widget.SetInputs(in)
	return true
}

func (s *Session) instantiate() widgets.Widget {
	if s.resolver == nil {
		return nil
	}
	ctor := s.resolver.ResolveActiveWidget()
	if ctor == nil {
		return nil
	}
	widget := ctor()
	if widget != nil {
		s.logger.Debug("widget created",
			zap.String("session", s.id))
	}
	return widget
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Widget returns the session widget, or nil before the first successful
// Attach.
func (s *Session) Widget() widgets.Widget {
	return s.widget
}

// Inputs returns the last pushed input set.
func (s *Session) Inputs() (widgets.Inputs, bool) {
	return s.inputs, s.pushed
}

// Attached reports whether a widget has been created.
func (s *Session) Attached() bool {
	return s.widget != nil
}
