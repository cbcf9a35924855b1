package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubSessionManager struct {
	token   string
	err     error
	revoked string
}

func (s *stubSessionManager) Mint(context.Context) (string, error) {
	return s.token, s.err
}

func (s *stubSessionManager) Revoke(_ context.Context, token string) error {
	s.revoked = token
	return s.err
}

func TestSessionCreateReturnsToken(t *testing.T) {
	handler := SessionCreate(&stubSessionManager{token: "tok-abc"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if resp.Header().Get("X-Shopper-Token") != "tok-abc" {
		t.Fatalf("expected token header, got %q", resp.Header().Get("X-Shopper-Token"))
	}

	var envelope struct {
		Data sessionResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ShopperToken != "tok-abc" {
		t.Fatalf("unexpected token in body: %q", envelope.Data.ShopperToken)
	}
}

func TestSessionCreateDependencyFailure(t *testing.T) {
	handler := SessionCreate(&stubSessionManager{err: errors.New("redis down")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestSessionRevoke(t *testing.T) {
	manager := &stubSessionManager{}
	handler := SessionRevoke(manager, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/session", nil)
	req.Header.Set("X-Shopper-Token", "tok-abc")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if manager.revoked != "tok-abc" {
		t.Fatalf("expected revoke called with token, got %q", manager.revoked)
	}
}

func TestSessionRevokeRequiresToken(t *testing.T) {
	handler := SessionRevoke(&stubSessionManager{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/session", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
