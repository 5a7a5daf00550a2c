package dispatch_test

import (
	"testing"
	"time"

	"aqusens.io/nora/asrslink/dispatch"
	"aqusens.io/nora/asrslink/wire"
)

func TestStatusCache(t *testing.T) {
	var c dispatch.StatusCache

	if st := c.Load(); st.Known {
		t.Fatalf("expected an unknown status, got %+v", st)
	}

	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	c.Store(wire.Status{Enabled: true, Hours: 8, Minutes: 30}, at)
	st := c.Load()
	if !st.Known || st.Stale || !st.Enabled || st.Hours != 8 || st.Minutes != 30 || !st.Updated.Equal(at) {
		t.Errorf("unexpected status %+v", st)
	}

	c.Invalidate()
	if st := c.Load(); !st.Stale || st.Hours != 8 {
		t.Errorf("expected the stale previous status, got %+v", st)
	}

	c.Store(wire.Status{}, at.Add(time.Hour))
	if st := c.Load(); st.Stale || st.Enabled {
		t.Errorf("expected a fresh status, got %+v", st)
	}
}
