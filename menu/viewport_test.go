package menu

import "testing"

type frame struct {
	ids       []int
	indexes   []int
	rows      []int
	activeRow int
}

func capture(v *Viewport) frame {
	f := frame{activeRow: -1}
	v.Render(func(ri RenderItem) {
		f.ids = append(f.ids, ri.Item.ID())
		f.indexes = append(f.indexes, ri.Index)
		f.rows = append(f.rows, ri.Row)
		if ri.Active {
			f.activeRow = ri.Row
		}
	})
	return f
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Five siblings, three visible rows, stepping to the end: the window stays
// put until the active item would fall off the bottom, then slides one row
// per step.
func TestViewportScrollsDownMinimally(t *testing.T) {
	m := flatMenu(11, 12, 13, 14, 15)
	m.Enter() // activate item 11
	v := NewViewport(m, 3)

	capture(v)
	if v.Offset() != 0 {
		t.Fatalf("initial offset = %d, want 0", v.Offset())
	}

	wantOffsets := []int{0, 0, 1, 2}
	for i, want := range wantOffsets {
		m.Next()
		capture(v)
		if v.Offset() != want {
			t.Errorf("offset after next #%d = %d, want %d", i+1, v.Offset(), want)
		}
	}

	final := capture(v)
	if !equalInts(final.ids, []int{13, 14, 15}) {
		t.Errorf("final window ids = %v, want [13 14 15]", final.ids)
	}
	if !equalInts(final.indexes, []int{2, 3, 4}) {
		t.Errorf("final window indexes = %v, want [2 3 4]", final.indexes)
	}
	if !equalInts(final.rows, []int{0, 1, 2}) {
		t.Errorf("final window rows = %v, want [0 1 2]", final.rows)
	}
	if final.activeRow != 2 {
		t.Errorf("active row = %d, want 2", final.activeRow)
	}
}

func TestViewportScrollsUpMinimally(t *testing.T) {
	m := flatMenu(11, 12, 13, 14, 15)
	m.Enter()
	v := NewViewport(m, 3)

	for i := 0; i < 4; i++ {
		m.Next()
	}
	capture(v) // offset now 2, active 15

	m.Prev() // 14, still visible
	capture(v)
	if v.Offset() != 2 {
		t.Errorf("offset = %d after Prev within window, want 2 (sticky)", v.Offset())
	}

	m.Prev() // 13, top row of the window
	m.Prev() // 12, above the window: scroll up to exactly its index
	f := capture(v)
	if v.Offset() != 1 {
		t.Errorf("offset = %d, want 1", v.Offset())
	}
	if f.activeRow != 0 {
		t.Errorf("active row = %d, want 0 after scrolling up", f.activeRow)
	}
}

// The active item's index stays inside the window after every render, for
// an arbitrary walk.
func TestViewportContainsActive(t *testing.T) {
	m := flatMenu(1, 2, 3, 4, 5, 6, 7)
	m.Enter()
	v := NewViewport(m, 3)

	steps := []func() (*Item, bool){
		m.Next, m.Next, m.Next, m.Next, m.Next, m.Next, // to the end, with one boundary no-op
		m.Prev, m.Prev, m.Prev, m.Prev, m.Prev, m.Prev, m.Prev, // back, with a no-op
		m.Next, m.Prev, m.Next, m.Next,
	}
	for i, step := range steps {
		step()
		f := capture(v)
		activeIndex := -1
		for j, id := range f.ids {
			if id == m.Active().ID() {
				activeIndex = f.indexes[j]
			}
		}
		if activeIndex < v.Offset() || activeIndex >= v.Offset()+v.Rows() {
			t.Fatalf("step %d: active index %d outside window [%d,%d)",
				i, activeIndex, v.Offset(), v.Offset()+v.Rows())
		}
		if f.activeRow < 0 {
			t.Fatalf("step %d: active item not rendered", i)
		}
	}
}

func TestViewportShorterLevelThanWindow(t *testing.T) {
	m := flatMenu(1, 2)
	m.Enter()
	v := NewViewport(m, 4)

	f := capture(v)
	if !equalInts(f.ids, []int{1, 2}) {
		t.Errorf("window ids = %v, want all items of the short level", f.ids)
	}
	if v.Offset() != 0 {
		t.Errorf("offset = %d, want 0", v.Offset())
	}
}

func TestViewportOffsetAdjustsAfterEnteringSubmenu(t *testing.T) {
	m := NewMenu(0, "root")
	first := m.Root().SetMenu(NewItem(1, "a"))
	last := first.SetNext(NewItem(2, "b")).SetNext(NewItem(3, "c")).SetNext(NewItem(4, "d"))
	sub := last.SetMenu(NewItem(41, "sub-a"))
	sub.SetNext(NewItem(42, "sub-b"))

	m.Enter()
	v := NewViewport(m, 2)
	for i := 0; i < 3; i++ {
		m.Next()
	}
	capture(v)
	if v.Offset() != 2 {
		t.Fatalf("offset before entering submenu = %d, want 2", v.Offset())
	}

	// The offset is scroller state, not per-level: entering a short level
	// pulls it back so the active item is visible again.
	m.Enter()
	f := capture(v)
	if v.Offset() != 0 {
		t.Errorf("offset inside submenu = %d, want 0", v.Offset())
	}
	if !equalInts(f.ids, []int{41, 42}) {
		t.Errorf("submenu window ids = %v, want [41 42]", f.ids)
	}
}
