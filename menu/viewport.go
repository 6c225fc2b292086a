package menu

// RenderItem is one visible row handed to the render sink.
type RenderItem struct {
	Item   *Item
	Active bool
	Index  int // absolute position within the level
	Row    int // row within the viewport, 0-based
}

// RenderFunc is the render sink, invoked once per visible item. It must not
// mutate menu state.
type RenderFunc func(RenderItem)

// Viewport maintains a window of rows over the active item's sibling level.
// The offset is sticky: it persists across Render calls and moves only as
// far as needed to bring the active item back into view.
type Viewport struct {
	menu   *Menu
	rows   int
	offset int
}

// NewViewport creates a viewport of the given row count over m.
func NewViewport(m *Menu, rows int) *Viewport {
	if rows < 1 {
		rows = 1
	}
	return &Viewport{menu: m, rows: rows}
}

// Rows returns the viewport height.
func (v *Viewport) Rows() int { return v.rows }

// Offset returns the current scroll offset within the level.
func (v *Viewport) Offset() int { return v.offset }

// Render adjusts the offset for the current active item and invokes fn for
// every item whose level index falls within the viewport.
func (v *Viewport) Render(fn RenderFunc) {
	active := v.menu.Active()
	top := active.Top()

	v.reveal(top, active)

	index := 0
	for it := top; it != nil; it = it.next {
		if index >= v.offset {
			fn(RenderItem{
				Item:   it,
				Active: it == active,
				Index:  index,
				Row:    index - v.offset,
			})
		}
		if index >= v.offset+v.rows-1 {
			break
		}
		index++
	}
}

// reveal scrolls minimally: up exactly to the active index when it is above
// the window, down exactly far enough when it is below.
func (v *Viewport) reveal(top, active *Item) {
	index := 0
	for it := top; it != nil; it = it.next {
		if it == active {
			if index < v.offset {
				v.offset = index
			} else if index >= v.offset+v.rows {
				v.offset = index - v.rows + 1
			}
			return
		}
		index++
	}
}
