package rig

import (
	"github.com/phanxgames/conduit"
)

// MenuPriority is the context priority of a ContextMenu, above every
// editor panel.
const MenuPriority = 100

// ContextMenu is a modal popup list. While open its exclusive context
// captures all pointer input: clicking an item selects it, clicking
// anywhere else dismisses the menu, and Escape closes it.
type ContextMenu struct {
	Items      []string
	ItemWidth  float64
	ItemHeight float64

	mgr   *conduit.Manager
	ctx   *conduit.Context
	local *conduit.LocalManager
	keys  *conduit.KeyBindings

	open     bool
	origin   conduit.Vec2
	onSelect []func(index int, item string)
}

// NewContextMenu creates a closed menu. Its context is created disabled
// and only stacked while the menu is open.
func NewContextMenu(m *conduit.Manager, items []string, itemWidth, itemHeight float64) *ContextMenu {
	cm := &ContextMenu{
		Items:      items,
		ItemWidth:  itemWidth,
		ItemHeight: itemHeight,
		mgr:        m,
		ctx:        conduit.NewExclusiveContext("menu", MenuPriority),
	}
	cm.ctx.SetEnabled(false)

	cm.local = conduit.NewLocalManager(m, cm.ctx, nil, conduit.LocalConfig{
		Name:    "menu",
		Global:  true,
		Buttons: []conduit.MouseButton{conduit.MouseButtonLeft, conduit.MouseButtonRight},
	})
	cm.local.OnClick(cm.click)

	cm.keys = conduit.NewKeyBindings(m, cm.ctx)
	cm.keys.Bind("Escape", "close")
	cm.keys.OnAction(func(a conduit.ActionEvent) {
		if a.Action == "close" {
			cm.Close()
		}
	})
	return cm
}

// Context returns the menu's context.
func (cm *ContextMenu) Context() *conduit.Context { return cm.ctx }

// IsOpen reports whether the menu is showing.
func (cm *ContextMenu) IsOpen() bool { return cm.open }

// Bounds returns the menu rectangle at its current origin.
func (cm *ContextMenu) Bounds() conduit.Rect {
	return conduit.Rect{
		X:      cm.origin.X,
		Y:      cm.origin.Y,
		Width:  cm.ItemWidth,
		Height: cm.ItemHeight * float64(len(cm.Items)),
	}
}

// ItemAt returns the index of the item under p, or -1.
func (cm *ContextMenu) ItemAt(p conduit.Vec2) int {
	b := cm.Bounds()
	if cm.ItemHeight <= 0 || !b.ContainsPoint(p) {
		return -1
	}
	i := int((p.Y - b.Y) / cm.ItemHeight)
	if i >= len(cm.Items) {
		i = len(cm.Items) - 1
	}
	return i
}

// Open shows the menu with its top-left corner at p.
func (cm *ContextMenu) Open(p conduit.Vec2) {
	cm.origin = p
	cm.open = true
	cm.ctx.SetEnabled(true)
	cm.mgr.PushContext(cm.ctx)
}

// Close hides the menu. Closing a closed menu is a no-op.
func (cm *ContextMenu) Close() {
	if !cm.open {
		return
	}
	cm.open = false
	cm.local.Cancel()
	cm.ctx.SetEnabled(false)
	cm.mgr.PopContext(cm.ctx)
}

// OnSelect registers a callback for item selection. The menu is already
// closed when it runs.
func (cm *ContextMenu) OnSelect(fn func(index int, item string)) {
	cm.onSelect = append(cm.onSelect, fn)
}

func (cm *ContextMenu) click(pe conduit.PointerEvent) {
	i := cm.ItemAt(pe.Position)
	cm.Close()
	if i < 0 || pe.Button != conduit.MouseButtonLeft {
		return
	}
	for _, fn := range cm.onSelect {
		fn(i, cm.Items[i])
	}
}

// Dispose closes the menu and releases its local manager and bindings.
func (cm *ContextMenu) Dispose() {
	cm.Close()
	cm.local.Dispose()
	cm.keys.Dispose()
	cm.onSelect = nil
}
