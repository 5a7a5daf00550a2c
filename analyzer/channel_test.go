package analyzer_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"aqusens.io/nora/asrslink/analyzer"
)

type files struct {
	command  string
	response string
}

func newFiles(t *testing.T) files {
	t.Helper()
	dir := t.TempDir()
	return files{
		command:  filepath.Join(dir, "command_file.txt"),
		response: filepath.Join(dir, "response_file.txt"),
	}
}

// respond plays the analyzer: once the command file holds want it writes
// each reply in turn to the response file.
func respond(t *testing.T, f files, want string, replies ...string) <-chan struct{} {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			data, _ := os.ReadFile(f.command)
			if string(data) == want {
				for _, r := range replies {
					os.WriteFile(f.response, []byte(r), 0o644)
					time.Sleep(20 * time.Millisecond)
				}
				return
			}
			time.Sleep(2 * time.Millisecond)
		}
	}()
	return done
}

func newChannel(f files, opts ...analyzer.Option) *analyzer.Channel {
	opts = append([]analyzer.Option{
		analyzer.WithTimeout(500 * time.Millisecond),
		analyzer.WithPollInterval(5 * time.Millisecond),
	}, opts...)
	return analyzer.New(f.command, f.response, opts...)
}

func TestChannelExchange(t *testing.T) {
	t.Run("Ack for a well-formed acknowledgment", func(t *testing.T) {
		f := newFiles(t)
		ch := newChannel(f)
		done := respond(t, f, "StartPump()", "0StartPump()")

		res := ch.Exchange(context.Background(), analyzer.StartPump())
		<-done

		if res.Status != analyzer.Ack {
			t.Fatalf("expected Ack, got %v (response %q, err %v)", res.Status, res.Response, res.Err)
		}
		if !res.OK() {
			t.Error("expected OK() for Ack")
		}
		if res.Command.Name != "StartPump" || res.Attempts != 1 {
			t.Errorf("unexpected result metadata: %+v", res)
		}
	})

	t.Run("Command file holds exactly the command text", func(t *testing.T) {
		f := newFiles(t)
		if err := os.WriteFile(f.command, []byte("a much longer previous command that must vanish"), 0o644); err != nil {
			t.Fatal(err)
		}
		ch := newChannel(f)
		done := respond(t, f, "SaveToDirectory(/data/250101_000000)", "0SaveToDirectory(/data/250101_000000)")

		res := ch.Exchange(context.Background(), analyzer.SaveToDirectory("/data/250101_000000"))
		<-done

		if res.Status != analyzer.Ack {
			t.Fatalf("expected Ack, got %v", res.Status)
		}
		data, _ := os.ReadFile(f.command)
		if string(data) != "SaveToDirectory(/data/250101_000000)" {
			t.Errorf("unexpected command file content %q", data)
		}
	})

	t.Run("Waits for the response to reach minimum length", func(t *testing.T) {
		f := newFiles(t)
		ch := newChannel(f)
		done := respond(t, f, "StartSampleCollection(1)", "0Start", "0StartSampleCollection(1)")

		res := ch.Exchange(context.Background(), analyzer.StartSampleCollection(1))
		<-done

		if res.Status != analyzer.Ack {
			t.Fatalf("expected Ack, got %v (response %q)", res.Status, res.Response)
		}
	})

	t.Run("Nack carries the raw response", func(t *testing.T) {
		f := newFiles(t)
		ch := newChannel(f)
		done := respond(t, f, "StopSampleCollection()", "1StopSampleCollection failed")

		res := ch.Exchange(context.Background(), analyzer.StopSampleCollection())
		<-done

		if res.Status != analyzer.Nack {
			t.Fatalf("expected Nack, got %v", res.Status)
		}
		if res.Response != "1StopSampleCollection failed" {
			t.Errorf("unexpected response %q", res.Response)
		}
		if res.OK() {
			t.Error("Nack must not be OK")
		}
	})

	t.Run("Timeout when no response arrives", func(t *testing.T) {
		f := newFiles(t)
		timeout := 50 * time.Millisecond
		poll := 10 * time.Millisecond
		ch := newChannel(f, analyzer.WithTimeout(timeout), analyzer.WithPollInterval(poll))

		start := time.Now()
		res := ch.Exchange(context.Background(), analyzer.StopPump())
		elapsed := time.Since(start)

		if res.Status != analyzer.Timeout {
			t.Fatalf("expected Timeout, got %v", res.Status)
		}
		if elapsed < timeout {
			t.Errorf("returned before the timeout: %v", elapsed)
		}
		// generous slack for slow CI machines
		if elapsed > timeout+poll+200*time.Millisecond {
			t.Errorf("waited too long past the timeout: %v", elapsed)
		}
	})

	t.Run("Previous acknowledgment is not reused", func(t *testing.T) {
		f := newFiles(t)
		if err := os.WriteFile(f.response, []byte("0SaveToDirectory(/old)"), 0o644); err != nil {
			t.Fatal(err)
		}
		ch := newChannel(f, analyzer.WithTimeout(30*time.Millisecond))

		res := ch.Exchange(context.Background(), analyzer.StartPump())
		if res.Status != analyzer.Timeout {
			t.Fatalf("expected Timeout with a cleared response file, got %v (%q)", res.Status, res.Response)
		}
	})

	t.Run("Stale response judged when clearing is disabled", func(t *testing.T) {
		f := newFiles(t)
		if err := os.WriteFile(f.response, []byte("0SaveToDirectory(/old)"), 0o644); err != nil {
			t.Fatal(err)
		}
		ch := newChannel(f, analyzer.WithClearResponse(false))

		res := ch.Exchange(context.Background(), analyzer.StartPump())
		if res.Status != analyzer.Nack {
			t.Fatalf("expected Nack, got %v", res.Status)
		}
	})

	t.Run("Retries a timed out command", func(t *testing.T) {
		f := newFiles(t)
		ch := newChannel(f, analyzer.WithTimeout(30*time.Millisecond), analyzer.WithAttempts(3))

		res := ch.Exchange(context.Background(), analyzer.StopPump())
		if res.Status != analyzer.Timeout {
			t.Fatalf("expected Timeout, got %v", res.Status)
		}
		if res.Attempts != 3 {
			t.Errorf("expected 3 attempts, got %d", res.Attempts)
		}
	})

	t.Run("Failed when the command file cannot be written", func(t *testing.T) {
		dir := t.TempDir()
		ch := analyzer.New(filepath.Join(dir, "missing", "command_file.txt"), filepath.Join(dir, "response_file.txt"))

		res := ch.Exchange(context.Background(), analyzer.StartPump())
		if res.Status != analyzer.Failed || res.Err == nil {
			t.Fatalf("expected Failed with an error, got %v (%v)", res.Status, res.Err)
		}
	})

	t.Run("Failed when the context is cancelled", func(t *testing.T) {
		f := newFiles(t)
		ch := newChannel(f, analyzer.WithTimeout(time.Second))
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		res := ch.Exchange(ctx, analyzer.StartPump())
		if res.Status != analyzer.Failed {
			t.Fatalf("expected Failed, got %v", res.Status)
		}
	})

	t.Run("Observer sees every exchange", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		observer := analyzer.NewMockObserver(ctrl)
		observer.EXPECT().ObserveExchange("StopPump", analyzer.Timeout, gomock.Any()).Times(2)

		f := newFiles(t)
		ch := newChannel(f,
			analyzer.WithTimeout(10*time.Millisecond),
			analyzer.WithAttempts(2),
			analyzer.WithObserver(observer))

		ch.Exchange(context.Background(), analyzer.StopPump())
	})
}

func TestRetry(t *testing.T) {
	t.Run("Stops at the first non-timeout result", func(t *testing.T) {
		calls := 0
		res := analyzer.Retry(context.Background(), 5, func(context.Context) analyzer.Result {
			calls++
			if calls < 3 {
				return analyzer.Result{Status: analyzer.Timeout}
			}
			return analyzer.Result{Status: analyzer.Ack}
		})
		if res.Status != analyzer.Ack || calls != 3 || res.Attempts != 3 {
			t.Errorf("unexpected result %v after %d calls (attempts %d)", res.Status, calls, res.Attempts)
		}
	})

	t.Run("Nack is not retried", func(t *testing.T) {
		calls := 0
		res := analyzer.Retry(context.Background(), 5, func(context.Context) analyzer.Result {
			calls++
			return analyzer.Result{Status: analyzer.Nack, Response: "1"}
		})
		if res.Status != analyzer.Nack || calls != 1 {
			t.Errorf("expected a single Nack, got %v after %d calls", res.Status, calls)
		}
	})

	t.Run("At least one attempt", func(t *testing.T) {
		calls := 0
		analyzer.Retry(context.Background(), 0, func(context.Context) analyzer.Result {
			calls++
			return analyzer.Result{Status: analyzer.Timeout}
		})
		if calls != 1 {
			t.Errorf("expected one call, got %d", calls)
		}
	})

	t.Run("Cancelled context ends retries", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		analyzer.Retry(ctx, 5, func(context.Context) analyzer.Result {
			calls++
			cancel()
			return analyzer.Result{Status: analyzer.Timeout}
		})
		if calls != 1 {
			t.Errorf("expected one call, got %d", calls)
		}
	})
}

func TestStatusString(t *testing.T) {
	for status, want := range map[analyzer.Status]string{
		analyzer.Ack:     "ack",
		analyzer.Nack:    "nack",
		analyzer.Timeout: "timeout",
		analyzer.Failed:  "failed",
	} {
		if got := status.String(); !strings.EqualFold(got, want) {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
