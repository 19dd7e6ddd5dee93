package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxChunk keeps each webhook payload under Discord's 2000-character limit
// with headroom for formatting.
const maxChunk = 1900

// Webhook posts plain text messages to Discord channels. Entry alerts with
// confidence at or above premiumThreshold are routed to the premium webhook
// when one is configured, otherwise everything goes to the general one.
type Webhook struct {
	generalURL       string
	premiumURL       string
	premiumThreshold float64
	httpClient       *http.Client
}

func NewWebhook(generalURL, premiumURL string, premiumThreshold float64) *Webhook {
	return &Webhook{
		generalURL:       generalURL,
		premiumURL:       premiumURL,
		premiumThreshold: premiumThreshold,
		httpClient:       &http.Client{Timeout: 10 * time.Second},
	}
}

// IsEnabled reports whether at least one webhook URL is configured.
func (w *Webhook) IsEnabled() bool {
	return w.generalURL != "" || w.premiumURL != ""
}

// SendAlert posts an entry alert, routed by confidence.
func (w *Webhook) SendAlert(ctx context.Context, text string, confidence float64) error {
	url := w.generalURL
	if w.premiumURL != "" && confidence >= w.premiumThreshold {
		url = w.premiumURL
	}
	if url == "" {
		return nil
	}
	return w.post(ctx, url, text)
}

// SendReport posts a verbose cycle report to the general channel only.
func (w *Webhook) SendReport(ctx context.Context, text string) error {
	if w.generalURL == "" {
		return nil
	}
	return w.post(ctx, w.generalURL, text)
}

func (w *Webhook) post(ctx context.Context, url, text string) error {
	for _, chunk := range splitChunks(text, maxChunk) {
		if err := w.postOne(ctx, url, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (w *Webhook) postOne(ctx context.Context, url, content string) error {
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("discord: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("discord: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discord: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord: webhook returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// splitChunks breaks text into pieces of at most size characters, preferring
// to cut at line boundaries so formatted blocks stay readable.
func splitChunks(text string, size int) []string {
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	for len(text) > size {
		cut := size
		for i := size; i > size/2; i-- {
			if text[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	if len(text) > 0 {
		chunks = append(chunks, text)
	}
	return chunks
}
