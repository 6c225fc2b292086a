package menu

// ActiveChange describes one committed navigation transition.
type ActiveChange struct {
	Old *Item
	New *Item
}

// Observer receives navigator events. ActiveChanged is dispatched with the
// navigator state already updated, so reading Active from the callback sees
// the new item. ItemUtilized reports Enter on an item without a submenu:
// the selection means "use this item", not a navigation failure.
type Observer interface {
	ActiveChanged(ActiveChange)
	ItemUtilized(*Item)
}

// Observers adapts optional funcs to Observer; nil fields are skipped.
type Observers struct {
	OnActiveChanged func(ActiveChange)
	OnItemUtilized  func(*Item)
}

func (o Observers) ActiveChanged(c ActiveChange) {
	if o.OnActiveChanged != nil {
		o.OnActiveChanged(c)
	}
}

func (o Observers) ItemUtilized(it *Item) {
	if o.OnItemUtilized != nil {
		o.OnItemUtilized(it)
	}
}

// Menu is the navigation state machine over an item tree. The root item is
// synthetic: it anchors the tree and is the initial active item, but it is
// never displayed and never active again once navigation has entered the
// first level.
type Menu struct {
	root   *Item
	active *Item
	obs    Observer
}

// NewMenu creates a menu with a synthetic root item as the active item.
func NewMenu(id int, caption string) *Menu {
	root := NewItem(id, caption)
	return &Menu{root: root, active: root}
}

// SetObserver attaches the event observer. Nil detaches it.
func (m *Menu) SetObserver(o Observer) { m.obs = o }

// Root returns the synthetic root item. Never nil.
func (m *Menu) Root() *Item { return m.root }

// Active returns the currently active item. Never nil.
func (m *Menu) Active() *Item { return m.active }

// Find searches the whole tree below the root, level before depth.
func (m *Menu) Find(id int) *Item {
	if m.root.child == nil {
		return nil
	}
	return m.root.child.Find(id, true)
}

// Next moves to the active item's next sibling. On the last sibling it is a
// no-op and reports no transition; no event fires.
func (m *Menu) Next() (*Item, bool) { return m.moveTo(m.active.next) }

// Prev moves to the active item's previous sibling, symmetric to Next.
func (m *Menu) Prev() (*Item, bool) { return m.moveTo(m.active.prev) }

// Back moves to the active item's parent, a no-op at the root level.
func (m *Menu) Back() (*Item, bool) { return m.moveTo(m.active.parent) }

// Enter descends into the active item's submenu. On an item without one it
// fires ItemUtilized instead and reports no transition.
func (m *Menu) Enter() (*Item, bool) {
	if m.active.child == nil {
		if m.obs != nil {
			m.obs.ItemUtilized(m.active)
		}
		return nil, false
	}
	return m.moveTo(m.active.child)
}

// moveTo commits the transition before dispatching, keeping the documented
// ordering: observers re-reading Active see the new item.
func (m *Menu) moveTo(to *Item) (*Item, bool) {
	if to == nil {
		return nil, false
	}
	old := m.active
	m.active = to
	if m.obs != nil {
		m.obs.ActiveChanged(ActiveChange{Old: old, New: to})
	}
	return to, true
}

// ToggleCheckable flips the checked flag of a Checkable item. It reports
// false, without touching state, for any other kind.
func (m *Menu) ToggleCheckable(it *Item) bool {
	if it == nil || it.kind != Checkable {
		return false
	}
	it.setChecked(!it.checked)
	return true
}

// SwitchRadio checks the given Radio item and unchecks every other member
// of its group on the same level. Already-checked items are left alone
// (idempotent). Reports false for non-radio items. Routing every radio
// change through here is what maintains the at-most-one-checked invariant;
// there is no standing enforcement elsewhere.
func (m *Menu) SwitchRadio(it *Item) bool {
	if it == nil || it.kind != Radio {
		return false
	}
	if it.checked {
		return true
	}
	for cur := it.Top(); cur != nil; cur = cur.next {
		if cur.kind == Radio && cur.group == it.group {
			cur.setChecked(cur == it)
		}
	}
	return true
}

// CheckedInGroup returns the checked member of a radio group on the level
// containing from, or nil.
func (m *Menu) CheckedInGroup(from *Item, group uint8) *Item {
	for cur := from.Top(); cur != nil; cur = cur.next {
		if cur.kind == Radio && cur.group == group && cur.checked {
			return cur
		}
	}
	return nil
}
