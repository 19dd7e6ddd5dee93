package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sentinel-backend/internal/repository"
)

func TestHandleRegisterToken(t *testing.T) {
	repo := repository.NewTokenRepository()
	h := NewTokenHandler(repo)

	req := httptest.NewRequest(http.MethodPost, "/tokens/register",
		strings.NewReader(`{"Token":"abc123","Platform":"ios"}`))
	rec := httptest.NewRecorder()
	h.HandleRegisterToken(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var resp TokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Count != 1 {
		t.Errorf("response: %+v", resp)
	}
	if repo.GetTokenCount() != 1 {
		t.Errorf("token count: got %d, want 1", repo.GetTokenCount())
	}
}

func TestHandleRegisterTokenValidation(t *testing.T) {
	h := NewTokenHandler(repository.NewTokenRepository())

	req := httptest.NewRequest(http.MethodPost, "/tokens/register", strings.NewReader(`{"Platform":"ios"}`))
	rec := httptest.NewRecorder()
	h.HandleRegisterToken(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing token: got %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/tokens/register", nil)
	rec = httptest.NewRecorder()
	h.HandleRegisterToken(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: got %d, want 405", rec.Code)
	}
}

func TestHandleUnregisterToken(t *testing.T) {
	repo := repository.NewTokenRepository()
	repo.RegisterToken("abc123", "android", 0)
	h := NewTokenHandler(repo)

	req := httptest.NewRequest(http.MethodPost, "/tokens/unregister",
		strings.NewReader(`{"Token":"abc123"}`))
	rec := httptest.NewRecorder()
	h.HandleUnregisterToken(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if repo.GetTokenCount() != 0 {
		t.Errorf("token count: got %d, want 0", repo.GetTokenCount())
	}
}
