package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const klinesBody = `[
	[1700000000000, "100.0", "101.0", "99.0", "100.5", "1234.5", 1700000899999, "0", 0, "0", "0", "0"],
	[1700000900000, "100.5", "102.0", "100.0", "101.5", "2345.6", 1700001799999, "0", 0, "0", "0", "0"]
]`

func testClient(url string) *Client {
	c := NewClient(url)
	c.backoff = time.Millisecond
	return c
}

func TestFetchCandlesParsesKlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/klines" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbol"); got != "BTCUSDT" {
			t.Errorf("symbol: got %s", got)
		}
		w.Write([]byte(klinesBody))
	}))
	defer srv.Close()

	candles, err := testClient(srv.URL).FetchCandles(context.Background(), "BTCUSDT", "5m", 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(candles) != 2 {
		t.Fatalf("candles: got %d, want 2", len(candles))
	}
	first := candles[0]
	if first.OpenTime != 1700000000000 || first.Close != 100.5 || first.Volume != 1234.5 {
		t.Errorf("parsed candle: %+v", first)
	}
	if candles[1].Close != 101.5 {
		t.Errorf("second close: got %f, want 101.5", candles[1].Close)
	}
}

func TestFetchCandlesClampsLimit(t *testing.T) {
	var gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.FetchCandles(context.Background(), "BTCUSDT", "5m", 5); err != nil {
		t.Fatal(err)
	}
	if gotLimit != "50" {
		t.Errorf("low limit: got %s, want 50", gotLimit)
	}

	if _, err := c.FetchCandles(context.Background(), "BTCUSDT", "5m", 9000); err != nil {
		t.Fatal(err)
	}
	if gotLimit != "1000" {
		t.Errorf("high limit: got %s, want 1000", gotLimit)
	}
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).FetchCandles(context.Background(), "BTCUSDT", "5m", 100); err != nil {
		t.Fatalf("expected recovery after retries: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}

func TestGetJSONFailsFastOnClientError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).FetchCandles(context.Background(), "BTCUSDT", "5m", 100); err == nil {
		t.Fatal("expected error on 400")
	}
	if calls != 1 {
		t.Errorf("calls: got %d, want 1 (no retry on 4xx)", calls)
	}
}

func TestCurrentPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/ticker/price" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		w.Write([]byte(`{"symbol":"BTCUSDT","price":"64250.10"}`))
	}))
	defer srv.Close()

	price, err := testClient(srv.URL).CurrentPrice(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatal(err)
	}
	if price != 64250.10 {
		t.Errorf("price: got %f, want 64250.10", price)
	}
}

func TestParseRetryAfter(t *testing.T) {
	if d := parseRetryAfter("5"); d != 5*time.Second {
		t.Errorf("got %s, want 5s", d)
	}
	if d := parseRetryAfter(""); d != time.Second {
		t.Errorf("missing header: got %s, want 1s", d)
	}
	if d := parseRetryAfter("0"); d != time.Second {
		t.Errorf("zero header: got %s, want 1s", d)
	}
}
