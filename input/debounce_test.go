package input

import "testing"

func TestDebouncerHoldsUntilWindowElapses(t *testing.T) {
	d := NewDebouncer(30)

	if _, ok := d.Sample(true, 0); ok {
		t.Error("stable immediately after first sample")
	}
	if _, ok := d.Sample(true, 30); ok {
		t.Error("stable at exactly the window boundary")
	}
	lvl, ok := d.Sample(true, 31)
	if !ok || !lvl {
		t.Errorf("expected stable high at t=31, got (%v,%v)", lvl, ok)
	}
}

func TestDebouncerGlitchRestartsWindow(t *testing.T) {
	d := NewDebouncer(30)

	d.Sample(false, 0)
	d.Sample(false, 10)
	// Glitch: the stability clock restarts from here.
	d.Sample(true, 20)
	if _, ok := d.Sample(true, 45); ok {
		t.Error("stable 25ms after the last change")
	}
	lvl, ok := d.Sample(true, 51)
	if !ok || !lvl {
		t.Errorf("expected stable high at t=51, got (%v,%v)", lvl, ok)
	}
}

func TestDebouncerBounceTrainNeverStabilizes(t *testing.T) {
	d := NewDebouncer(30)

	// Alternating raw level every 10ms: spacing below the window, so no
	// sample may ever be reported stable.
	lvl := false
	for now := int64(0); now <= 300; now += 10 {
		if _, ok := d.Sample(lvl, now); ok {
			t.Fatalf("reported stable at t=%d during bounce train", now)
		}
		lvl = !lvl
	}
}

func TestDebouncerReportsRepeatedly(t *testing.T) {
	d := NewDebouncer(30)

	d.Sample(true, 0)
	if _, ok := d.Sample(true, 40); !ok {
		t.Fatal("expected stable at t=40")
	}
	// Stability is re-reported on every later call, not only once.
	if _, ok := d.Sample(true, 41); !ok {
		t.Error("stability not re-reported at t=41")
	}
	if _, ok := d.Sample(true, 1000); !ok {
		t.Error("stability not re-reported at t=1000")
	}
}

func TestDebouncerDefaultWindow(t *testing.T) {
	d := NewDebouncer(0)
	d.Sample(true, 0)
	if _, ok := d.Sample(true, DefaultDebounceMs); ok {
		t.Error("default window not applied")
	}
	if _, ok := d.Sample(true, DefaultDebounceMs+1); !ok {
		t.Error("expected stable just past the default window")
	}
}
