package conduit

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// defaultLogger writes debug traces to stderr with the component tag the
// other packages use.
func defaultLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l.WithField("component", "conduit")
}

// SetDebugMode enables or disables routing traces. When enabled, context
// push/pop, every delivery and every exclusive stop are logged at debug
// level.
func (m *Manager) SetDebugMode(enabled bool) {
	m.debug = enabled
}

// DebugMode reports whether routing traces are on.
func (m *Manager) DebugMode() bool { return m.debug }

// Logger returns the entry debug traces go to.
func (m *Manager) Logger() *logrus.Entry { return m.log }

// mustLive panics with a descriptive error wrapping ErrDisposed when the
// manager has been disposed.
func (m *Manager) mustLive(op string) {
	if m.disposed {
		panic(fmt.Errorf("%s on disposed manager: %w", op, ErrDisposed))
	}
}

func (m *Manager) debugRoute(ev Event, ctx PriorityContext) {
	if !m.debug {
		return
	}
	m.log.WithFields(logrus.Fields{
		"event":    ev.Kind.String(),
		"context":  contextName(ctx),
		"priority": priorityOf(ctx),
		"x":        ev.Global.X,
		"y":        ev.Global.Y,
	}).Debug("deliver")
}

func (m *Manager) debugExclusive(ev Event, ctx PriorityContext) {
	if !m.debug {
		return
	}
	m.log.WithFields(logrus.Fields{
		"event":   ev.Kind.String(),
		"context": contextName(ctx),
	}).Debug("exclusive context consumed event")
}

func (m *Manager) debugContext(op string, ctx PriorityContext, index int) {
	if !m.debug {
		return
	}
	fields := logrus.Fields{
		"context":  contextName(ctx),
		"priority": ctx.Priority(),
		"depth":    len(m.stack),
	}
	if index >= 0 {
		fields["index"] = index
	}
	m.log.WithFields(fields).Debug("context " + op)
}

func contextName(ctx PriorityContext) string {
	if ctx == nil {
		return "<none>"
	}
	return ctx.Name()
}
