package builtwith

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestCallError_JSON(t *testing.T) {
	ce := &CallError{
		Kind:    KindUpstreamError,
		Message: "upstream returned status 500",
		Status:  500,
		Body:    json.RawMessage(`{"detail":"boom"}`),
	}

	var decoded struct {
		Error   string          `json:"error"`
		Message string          `json:"message"`
		Status  int             `json:"status"`
		Body    json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(ce.JSON(), &decoded); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if decoded.Error != "upstream_error" {
		t.Errorf("expected error kind, got %q", decoded.Error)
	}
	if decoded.Status != 500 {
		t.Errorf("expected status retained, got %d", decoded.Status)
	}
	if string(decoded.Body) != `{"detail":"boom"}` {
		t.Errorf("expected body retained, got %s", decoded.Body)
	}
}

func TestErrorPayload_WrappedCallError(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", &CallError{Kind: KindAuthMissing, Message: "Missing API key"})

	var decoded struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(ErrorPayload(wrapped), &decoded); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if decoded.Error != "auth_missing" {
		t.Errorf("expected auth_missing through wrapping, got %q", decoded.Error)
	}
}

func TestErrorPayload_PlainError(t *testing.T) {
	var decoded struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(ErrorPayload(errors.New("boom")), &decoded); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if decoded.Error != "internal_error" || decoded.Message != "boom" {
		t.Errorf("unexpected payload: %+v", decoded)
	}
}
