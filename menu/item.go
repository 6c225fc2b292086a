// Package menu implements a hierarchical menu backend: a tree of items
// linked by sibling/parent/submenu references, a navigator that moves a
// single active item through it, and a sticky viewport for list rendering.
// The tree is built once at startup by chaining SetMenu/SetNext/Back calls
// and is structurally immutable afterwards; only checked flags and the
// active pointer move at runtime.
package menu

// Kind classifies how an item participates in check state.
type Kind uint8

const (
	Regular   Kind = iota // plain entry, no check state
	Checkable             // independently toggled on/off
	Radio                 // one-of-group, see Group
)

func (k Kind) String() string {
	switch k {
	case Checkable:
		return "checkable"
	case Radio:
		return "radio"
	default:
		return "regular"
	}
}

// Item is one node of the menu tree. IDs need not be unique; Find returns
// the first match. Tag and Data are opaque caller correlation slots.
type Item struct {
	id      int
	caption string
	kind    Kind
	group   uint8 // radio group index, meaningful only for Kind == Radio
	checked bool

	parent *Item
	child  *Item
	prev   *Item
	next   *Item

	tag  int
	data any
}

// NewItem creates a regular item.
func NewItem(id int, caption string) *Item {
	return &Item{id: id, caption: caption}
}

// NewCheckable creates an independently toggleable item.
func NewCheckable(id int, caption string, checked bool) *Item {
	return &Item{id: id, caption: caption, kind: Checkable, checked: checked}
}

// NewRadio creates a one-of-group item. Items sharing a group index on the
// same level form one radio group.
func NewRadio(id int, caption string, group uint8, checked bool) *Item {
	return &Item{id: id, caption: caption, kind: Radio, group: group, checked: checked}
}

func (it *Item) ID() int         { return it.id }
func (it *Item) Caption() string { return it.caption }
func (it *Item) Kind() Kind      { return it.kind }
func (it *Item) Group() uint8    { return it.group }
func (it *Item) Checked() bool   { return it.checked }

func (it *Item) Tag() int         { return it.tag }
func (it *Item) SetTag(tag int)   { it.tag = tag }
func (it *Item) Data() any        { return it.data }
func (it *Item) SetData(data any) { it.data = data }

// WithTag sets the tag and returns the item, for use inside builder chains.
func (it *Item) WithTag(tag int) *Item {
	it.tag = tag
	return it
}

// WithData sets the user data and returns the item.
func (it *Item) WithData(data any) *Item {
	it.data = data
	return it
}

func (it *Item) Parent() *Item    { return it.parent }
func (it *Item) Submenu() *Item   { return it.child }
func (it *Item) HasSubmenu() bool { return it.child != nil }
func (it *Item) Prev() *Item      { return it.prev }
func (it *Item) Next() *Item      { return it.next }

// SetMenu attaches child as the first item of this item's submenu and
// returns child, so a population chain can descend into the new level.
// Any previously attached submenu link is overwritten; menus are built once
// at startup and never rebuilt.
func (it *Item) SetMenu(child *Item) *Item {
	it.child = child
	child.parent = it
	return child
}

// SetNext appends next after this item on the same level and returns next.
// The appended item inherits this item's parent, so a whole chain built
// with SetNext shares one Back target without restating it.
func (it *Item) SetNext(next *Item) *Item {
	it.next = next
	next.prev = it
	next.parent = it.parent
	return next
}

// Back returns the parent item, letting a population chain climb out of a
// submenu and continue appending on the outer level. Nil at the root.
func (it *Item) Back() *Item { return it.parent }

// Top walks prev links to the first item of this item's level.
func (it *Item) Top() *Item {
	top := it
	for top.prev != nil {
		top = top.prev
	}
	return top
}

// Find searches for the first item with the given id, starting at this item
// and walking the sibling chain. With recursive set it then descends into
// each sibling's submenu in order, so a match on the current level always
// wins over a deeper one (leftmost-shallowest).
func (it *Item) Find(id int, recursive bool) *Item {
	for cur := it; cur != nil; cur = cur.next {
		if cur.id == id {
			return cur
		}
	}
	if !recursive {
		return nil
	}
	for cur := it; cur != nil; cur = cur.next {
		if cur.child != nil {
			if hit := cur.child.Find(id, true); hit != nil {
				return hit
			}
		}
	}
	return nil
}

func (it *Item) setChecked(v bool) { it.checked = v }
