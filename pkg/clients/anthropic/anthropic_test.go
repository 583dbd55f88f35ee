package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("key", nil)
	c.url = srv.URL
	return c
}

func reply(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": text}},
		})
	}
}

func TestTranslateToCommand(t *testing.T) {
	var gotKey string
	var gotReq messageRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		reply("eggs 120 Leghorn\n")(w, r)
	})

	cmd, err := c.TranslateToCommand(context.Background(), "on a ramassé 4 plateaux d'oeufs")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if cmd != "/eggs 120 Leghorn" {
		t.Fatalf("unexpected command %q", cmd)
	}
	if gotKey != "key" {
		t.Fatalf("missing api key header")
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[1].Role != "assistant" {
		t.Fatalf("expected prefilled assistant turn, got %+v", gotReq.Messages)
	}
}

func TestTranslateToCommand_None(t *testing.T) {
	c := newTestClient(t, reply("NONE"))

	cmd, err := c.TranslateToCommand(context.Background(), "bonjour")
	if err != nil || cmd != "" {
		t.Fatalf("expected empty command, got %q err=%v", cmd, err)
	}
}

func TestTranslateToCommand_Errors(t *testing.T) {
	failing := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	if _, err := failing.TranslateToCommand(context.Background(), "x"); err == nil {
		t.Fatal("expected api error")
	}

	empty := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[]}`))
	})
	if _, err := empty.TranslateToCommand(context.Background(), "x"); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestCleanCommand(t *testing.T) {
	cases := map[string]string{
		"/report":                    "/report",
		"```/layers 10 20 Sussex```": "/layers 10 20 Sussex",
		"/none":                      "",
		"/":                          "",
		"/soldeggs 30 x\nextra":      "/soldeggs 30 x",
	}
	for in, want := range cases {
		if got := cleanCommand(in); got != want {
			t.Fatalf("cleanCommand(%q) = %q, want %q", in, got, want)
		}
	}
}
