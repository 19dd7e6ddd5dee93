package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func recordingServer(t *testing.T, contents *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		*contents = append(*contents, payload.Content)
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestSendAlertRoutesByConfidence(t *testing.T) {
	var general, premium []string
	generalSrv := recordingServer(t, &general)
	defer generalSrv.Close()
	premiumSrv := recordingServer(t, &premium)
	defer premiumSrv.Close()

	w := NewWebhook(generalSrv.URL, premiumSrv.URL, 0.80)

	if err := w.SendAlert(context.Background(), "normal alert", 0.65); err != nil {
		t.Fatal(err)
	}
	if err := w.SendAlert(context.Background(), "premium alert", 0.85); err != nil {
		t.Fatal(err)
	}

	if len(general) != 1 || general[0] != "normal alert" {
		t.Errorf("general channel: got %v", general)
	}
	if len(premium) != 1 || premium[0] != "premium alert" {
		t.Errorf("premium channel: got %v", premium)
	}
}

func TestSendReportChunksLongText(t *testing.T) {
	var received []string
	srv := recordingServer(t, &received)
	defer srv.Close()

	w := NewWebhook(srv.URL, "", 0.80)

	var b strings.Builder
	for i := 0; i < 300; i++ {
		b.WriteString("line with some analysis output\n")
	}
	text := b.String()

	if err := w.SendReport(context.Background(), text); err != nil {
		t.Fatal(err)
	}

	if len(received) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(received))
	}
	var rebuilt strings.Builder
	for i, chunk := range received {
		if len(chunk) > maxChunk {
			t.Errorf("chunk %d: %d characters exceeds the limit", i, len(chunk))
		}
		rebuilt.WriteString(chunk)
	}
	if rebuilt.String() != text {
		t.Error("concatenated chunks must reproduce the original text")
	}
}

func TestWebhookDisabledWithoutURLs(t *testing.T) {
	w := NewWebhook("", "", 0.80)
	if w.IsEnabled() {
		t.Error("no URLs configured should report disabled")
	}
	if err := w.SendAlert(context.Background(), "x", 0.9); err != nil {
		t.Errorf("disabled sink should be a no-op, got %v", err)
	}
}

func TestWebhookSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad webhook token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	w := NewWebhook(srv.URL, "", 0.80)
	if err := w.SendAlert(context.Background(), "x", 0.5); err == nil {
		t.Error("expected error for a 401 response")
	}
}

func TestSplitChunksPrefersLineBreaks(t *testing.T) {
	text := strings.Repeat("0123456789\n", 20)
	chunks := splitChunks(text, 55)
	for i, c := range chunks {
		if i < len(chunks)-1 && !strings.HasSuffix(c, "\n") {
			t.Errorf("chunk %d should end at a line boundary: %q", i, c)
		}
	}
	if strings.Join(chunks, "") != text {
		t.Error("chunks must concatenate to the original")
	}
}
