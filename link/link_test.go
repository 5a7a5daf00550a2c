package link_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"aqusens.io/nora/asrslink/link"
)

func readWithin(t *testing.T, l link.LineReader, d time.Duration) (string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return l.ReadLine(ctx)
}

func TestLinkReadLine(t *testing.T) {
	t.Run("Frames lines split across reads", func(t *testing.T) {
		transport := link.NewTestTransport()
		l := link.New(transport)
		defer l.Close()

		transport.SendData("S")
		transport.SendData("\n4")
		transport.SendData("5\r\n")

		for _, want := range []string{"S", "45"} {
			got, err := readWithin(t, l, time.Second)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != want {
				t.Errorf("expected %q, got %q", want, got)
			}
		}
	})

	t.Run("Skips empty lines", func(t *testing.T) {
		transport := link.NewTestTransport()
		l := link.New(transport)
		defer l.Close()

		transport.SendData("\n\r\n  \nEE\n")

		got, err := readWithin(t, l, time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "EE" {
			t.Errorf("expected EE, got %q", got)
		}
	})

	t.Run("Times out when nothing arrives", func(t *testing.T) {
		transport := link.NewTestTransport()
		l := link.New(transport)
		defer l.Close()

		_, err := readWithin(t, l, 20*time.Millisecond)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected DeadlineExceeded, got %v", err)
		}
		if l.Err() != nil {
			t.Errorf("a timeout must not take the link down, got %v", l.Err())
		}
	})

	t.Run("Read failure takes the link down", func(t *testing.T) {
		transport := link.NewTestTransport()
		l := link.New(transport)
		defer l.Close()

		transport.FailRead(errors.New("device unplugged"))

		_, err := readWithin(t, l, time.Second)
		if !errors.Is(err, link.ErrLinkDown) {
			t.Fatalf("expected ErrLinkDown, got %v", err)
		}
		if !errors.Is(l.Err(), link.ErrLinkDown) {
			t.Errorf("expected Err() to report ErrLinkDown, got %v", l.Err())
		}
		if err := l.WriteLine(context.Background(), "D"); !errors.Is(err, link.ErrLinkDown) {
			t.Errorf("expected write on a down link to fail with ErrLinkDown, got %v", err)
		}
	})
}

func TestLinkWriteLine(t *testing.T) {
	t.Run("Appends the terminator", func(t *testing.T) {
		transport := link.NewTestTransport()
		l := link.New(transport)
		defer l.Close()

		if err := l.WriteLine(context.Background(), "W1.234"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := l.WriteLine(context.Background(), "D\n"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := transport.Written(); got != "W1.234\nD\n" {
			t.Errorf("unexpected bytes written: %q", got)
		}
	})

	t.Run("Write failure takes the link down", func(t *testing.T) {
		transport := link.NewTestTransport()
		l := link.New(transport)
		defer l.Close()

		transport.FailWrites(errors.New("broken pipe"))

		if err := l.WriteLine(context.Background(), "D"); !errors.Is(err, link.ErrLinkDown) {
			t.Fatalf("expected ErrLinkDown, got %v", err)
		}
		if l.Err() == nil {
			t.Error("expected link to be down after a write failure")
		}
	})
}

func TestLinkClose(t *testing.T) {
	t.Run("Closes the transport once", func(t *testing.T) {
		transport := link.NewTestTransport()
		l := link.New(transport)

		if err := l.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !transport.Closed() {
			t.Error("expected transport to be closed")
		}
		if err := l.Close(); err != nil {
			t.Errorf("second Close should be a no-op, got %v", err)
		}
	})

	t.Run("ErrClosed after close", func(t *testing.T) {
		transport := link.NewTestTransport()
		l := link.New(transport)
		l.Close()

		if _, err := readWithin(t, l, time.Second); !errors.Is(err, link.ErrClosed) {
			t.Errorf("expected ErrClosed from ReadLine, got %v", err)
		}
		if err := l.WriteLine(context.Background(), "D"); !errors.Is(err, link.ErrClosed) {
			t.Errorf("expected ErrClosed from WriteLine, got %v", err)
		}
	})
}
