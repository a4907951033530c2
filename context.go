package conduit

// PriorityContext is the capability the context stack and the routing pass
// need from an interaction scope. Implementations must be comparable (the
// stack removes by identity); pointer receivers satisfy this.
type PriorityContext interface {
	Name() string
	// Priority orders contexts; higher values are more eligible.
	Priority() int
	// Enabled contexts take part in routing. Disabled ones stay on the
	// stack but are skipped.
	Enabled() bool
	// Exclusive contexts stop routing at the first event they accept.
	Exclusive() bool
}

// Routable is anything the Manager can route events to. LocalManager and
// KeyBindings are the built-in implementations.
type Routable interface {
	// InputContext returns the scope the routable competes in. A nil
	// context behaves as enabled, non-exclusive, priority 0.
	InputContext() PriorityContext
	// WantsEvent reports whether the routable claims ev.
	WantsEvent(ev Event) bool
	// HandleEvent delivers a claimed event.
	HandleEvent(ev Event)
}

// canceler is implemented by routables holding gesture state that
// Manager.Reset must clear.
type canceler interface {
	Cancel()
}

// releaser is implemented by routables tracking a held button. It is told
// about every release, including releases a higher exclusive context took.
type releaser interface {
	releaseButton(b MouseButton)
}

// Context is a named, prioritized interaction scope such as "viewport" or
// "timeline". The consumer that creates it owns it and flips its flags as
// its UI state changes; the Manager's stack only refers to it.
type Context struct {
	name      string
	priority  int
	enabled   bool
	exclusive bool
}

// NewContext returns an enabled, non-exclusive context.
func NewContext(name string, priority int) *Context {
	return &Context{name: name, priority: priority, enabled: true}
}

// NewExclusiveContext returns an enabled context that captures every event
// it accepts.
func NewExclusiveContext(name string, priority int) *Context {
	return &Context{name: name, priority: priority, enabled: true, exclusive: true}
}

// A nil *Context reads as unnamed, priority 0, enabled and not exclusive,
// the same as a nil PriorityContext.

func (c *Context) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

func (c *Context) Priority() int {
	if c == nil {
		return 0
	}
	return c.priority
}

func (c *Context) Enabled() bool {
	if c == nil {
		return true
	}
	return c.enabled
}
func (c *Context) Exclusive() bool {
	if c == nil {
		return false
	}
	return c.exclusive
}

// SetPriority changes the priority. A stacked context is reordered the next
// time the stack is read or pushed to.
func (c *Context) SetPriority(p int) { c.priority = p }

// SetEnabled toggles participation in routing without leaving the stack.
func (c *Context) SetEnabled(on bool) { c.enabled = on }

// SetExclusive toggles capture behavior.
func (c *Context) SetExclusive(on bool) { c.exclusive = on }

func (c *Context) String() string { return c.Name() }

func priorityOf(ctx PriorityContext) int {
	if ctx == nil {
		return 0
	}
	return ctx.Priority()
}

// compareByPriority orders higher priorities first. Used with the stable
// sorts in package slices so ties keep their existing order.
func compareByPriority(a, b PriorityContext) int {
	pa, pb := priorityOf(a), priorityOf(b)
	switch {
	case pa > pb:
		return -1
	case pa < pb:
		return 1
	}
	return 0
}
