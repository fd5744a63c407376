package tracing

import (
	"context"
	"testing"
)

func TestParseOTLPEndpoint(t *testing.T) {
	testCases := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{"tempo:4318", "tempo:4318"},
		{"http://tempo:4318", "tempo:4318"},
		{"https://collector.internal", "collector.internal:4318"},
		{"http://localhost:9999/v1/traces", "localhost:9999"},
	}

	for _, tc := range testCases {
		got, err := parseOTLPEndpoint(tc.raw)
		if err != nil {
			t.Fatalf("%q: expected nil error, got %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.raw, tc.want, got)
		}
	}
}

func TestInitWithoutEndpointIsDisabled(t *testing.T) {
	shutdown, err := Init(context.Background(), "items", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected no-op shutdown, got %v", err)
	}
}
