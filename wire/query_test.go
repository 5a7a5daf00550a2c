package wire_test

import (
	"errors"
	"math"
	"testing"

	"aqusens.io/nora/asrslink/wire"
)

func TestSetInterval(t *testing.T) {
	if got := wire.SetInterval(8, 30); got != "Q1H8M30" {
		t.Errorf("expected Q1H8M30, got %q", got)
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("Enabled status", func(t *testing.T) {
		s, err := wire.ParseStatus("1H8M0")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !s.Enabled || s.Hours != 8 || s.Minutes != 0 {
			t.Errorf("unexpected status: %+v", s)
		}
	})

	t.Run("Disabled status with two digit fields", func(t *testing.T) {
		s, err := wire.ParseStatus("0H12M45")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Enabled || s.Hours != 12 || s.Minutes != 45 {
			t.Errorf("unexpected status: %+v", s)
		}
	})

	t.Run("Empty reply", func(t *testing.T) {
		if _, err := wire.ParseStatus(""); !errors.Is(err, wire.ErrEmptyReply) {
			t.Errorf("expected ErrEmptyReply, got %v", err)
		}
	})

	for _, in := range []string{"2H1M1", "1H", "H8M0", "1HxM0", "garbage"} {
		t.Run("Malformed "+in, func(t *testing.T) {
			if _, err := wire.ParseStatus(in); !errors.Is(err, wire.ErrMalformedReply) {
				t.Errorf("expected ErrMalformedReply for %q, got %v", in, err)
			}
		})
	}
}

func TestParseTemps(t *testing.T) {
	t.Run("Three readings", func(t *testing.T) {
		temps, err := wire.ParseTemps("0R118.25R217.5R3-1.5")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(temps.SampleTube-18.25) > 1e-9 ||
			math.Abs(temps.Flushwater-17.5) > 1e-9 ||
			math.Abs(temps.InternAir+1.5) > 1e-9 {
			t.Errorf("unexpected readings: %+v", temps)
		}
	})

	t.Run("Rejected ack", func(t *testing.T) {
		if _, err := wire.ParseTemps("1"); !errors.Is(err, wire.ErrMalformedReply) {
			t.Errorf("expected ErrMalformedReply, got %v", err)
		}
	})

	t.Run("Bad float", func(t *testing.T) {
		if _, err := wire.ParseTemps("0R11.2.3R22R33"); !errors.Is(err, wire.ErrMalformedReply) {
			t.Errorf("expected ErrMalformedReply, got %v", err)
		}
	})

	t.Run("Short reply", func(t *testing.T) {
		if _, err := wire.ParseTemps("0R118.2"); !errors.Is(err, wire.ErrMalformedReply) {
			t.Errorf("expected ErrMalformedReply, got %v", err)
		}
	})

	t.Run("Empty reply", func(t *testing.T) {
		if _, err := wire.ParseTemps(""); !errors.Is(err, wire.ErrEmptyReply) {
			t.Errorf("expected ErrEmptyReply, got %v", err)
		}
	})
}
