package network

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"market-pulse/src/logger"
	"market-pulse/src/models"
)

func testManager() *NetworkManager {
	cfg := &models.MConfig{LogLevel: "ERROR"}
	cfg.Network.RequestTimeout = 5
	cfg.Network.UserAgent = "market-pulse-test/1.0"
	return NewNetworkManager(cfg, logger.NewLogger("ERROR", "test"))
}

func TestGetQueryAndHeaders(t *testing.T) {
	var gotUA, gotQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.RawQuery
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := testManager().Get(srv.URL, map[string]string{"s": "aapl", "i": "d"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if string(body) != "ok" {
		t.Errorf("body = %q", body)
	}
	if gotUA != "market-pulse-test/1.0" {
		t.Errorf("user agent = %q", gotUA)
	}
	if gotQuery != "i=d&s=aapl" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestGetNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	if _, err := testManager().Get(srv.URL, nil); err == nil {
		t.Fatal("expected error for 500 response, got nil")
	}
}

func TestGetSingleAttempt(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(503)
	}))
	defer srv.Close()

	testManager().Get(srv.URL, nil)
	if hits != 1 {
		t.Errorf("attempt count = %d, want 1 (no retries)", hits)
	}
}
