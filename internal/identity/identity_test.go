package identity

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestRandomGenerator_ProducesDistinctIdentifiers(t *testing.T) {
	gen := NewRandomGenerator()
	const n = 10000

	seen := make(map[Identifier]struct{}, n)
	for i := 0; i < n; i++ {
		id := gen.Next()
		if id.IsZero() {
			t.Fatalf("generated zero identifier at %d", i)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate identifier after %d draws: %s", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestSequenceGenerator_IsDeterministic(t *testing.T) {
	a := NewSequenceGenerator(0)
	b := NewSequenceGenerator(0)

	for i := 0; i < 5; i++ {
		if got, want := a.Next(), b.Next(); got != want {
			t.Fatalf("step %d: %s != %s", i, got, want)
		}
	}

	c := NewSequenceGenerator(41)
	id := c.Next()
	if id[Size-1] != 42 {
		t.Fatalf("expected trailing byte 42, got %d", id[Size-1])
	}
}

func TestIdentifier_TextRoundTrip(t *testing.T) {
	gen := NewRandomGenerator()
	for i := 0; i < 100; i++ {
		id := gen.Next()
		text := id.String()

		if text != strings.ToLower(text) {
			t.Fatalf("expected lowercase text, got %q", text)
		}
		for _, group := range strings.Split(text, "-")[:10] {
			if len(group) != groupSize {
				t.Fatalf("unexpected group %q in %q", group, text)
			}
		}

		parsed, err := ParseIdentifier(text)
		if err != nil {
			t.Fatalf("parse %q: %v", text, err)
		}
		if parsed != id {
			t.Fatalf("round trip mismatch: %s != %s", parsed, id)
		}
	}
}

func TestParseIdentifier_Rejects(t *testing.T) {
	valid := NewSequenceGenerator(0).Next().String()
	tampered := []byte(valid)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}

	cases := map[string]string{
		"empty":    "",
		"garbage":  "not-an-id!",
		"short":    "aaaaa-bbbbb",
		"checksum": string(tampered),
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseIdentifier(input)
			if !errors.Is(err, ErrInvalidIdentifier) {
				t.Fatalf("expected ErrInvalidIdentifier for %q, got %v", input, err)
			}
		})
	}
}

func TestIdentifier_JSON(t *testing.T) {
	id := NewSequenceGenerator(7).Next()

	data, err := json.Marshal(struct {
		ID Identifier `json:"id"`
	}{ID: id})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), id.String()) {
		t.Fatalf("expected textual id in %s", data)
	}

	var decoded struct {
		ID Identifier `json:"id"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID != id {
		t.Fatalf("expected %s, got %s", id, decoded.ID)
	}
}
