package tide_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"aqusens.io/nora/asrslink/tide"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientLevel(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"Forwards the reported level", http.StatusOK, `{"metadata":{"id":"9412110"},"data":[{"t":"2025-06-01 12:30","v":"3.456","s":"0.003"}]}`, "3.456"},
		{"Negative level", http.StatusOK, `{"data":[{"v":"-0.512"}]}`, "-0.512"},
		{"Server error", http.StatusInternalServerError, `oops`, "-1000"},
		{"Not found", http.StatusNotFound, ``, "-1000"},
		{"Empty data", http.StatusOK, `{"data":[]}`, "-1000"},
		{"Error payload", http.StatusOK, `{"error":{"message":"No data was found"}}`, "-1000"},
		{"Malformed JSON", http.StatusOK, `{"data":`, "-1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			c := tide.New(srv.URL, srv.Client(), nil)
			if got := c.Level(context.Background()); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestClientFetch(t *testing.T) {
	t.Run("Empty data reports ErrNoData", func(t *testing.T) {
		srv := serve(t, http.StatusOK, `{"data":[]}`)
		_, err := tide.New(srv.URL, srv.Client(), nil).Fetch(context.Background())
		if !errors.Is(err, tide.ErrNoData) {
			t.Errorf("expected ErrNoData, got %v", err)
		}
	})

	t.Run("Unreachable endpoint", func(t *testing.T) {
		srv := serve(t, http.StatusOK, `{}`)
		url := srv.URL
		srv.Close()

		if got := tide.New(url, nil, nil).Level(context.Background()); got != tide.Failure {
			t.Errorf("expected %q, got %q", tide.Failure, got)
		}
	})
}

func TestDefaultURL(t *testing.T) {
	u, err := url.Parse(tide.DefaultURL)
	if err != nil {
		t.Fatal(err)
	}
	q := u.Query()
	for key, want := range map[string]string{
		"station":   "9412110",
		"product":   "water_level",
		"datum":     "MLLW",
		"time_zone": "lst",
		"units":     "metric",
		"format":    "json",
		"date":      "latest",
	} {
		if got := q.Get(key); got != want {
			t.Errorf("%s: expected %q, got %q", key, want, got)
		}
	}
}
