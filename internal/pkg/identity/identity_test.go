package identity

import (
	"errors"
	"strings"
	"testing"

	"pharmatrace/internal/core/domain"
)

func TestNew(t *testing.T) {
	seen := make(map[domain.Identity]bool)
	for i := 0; i < 100; i++ {
		id, err := New()
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if !IsValid(string(id)) {
			t.Fatalf("minted identity is malformed: %s", id)
		}
		if seen[id] {
			t.Fatalf("duplicate identity minted: %s", id)
		}
		seen[id] = true
	}
}

func TestParseNormalizes(t *testing.T) {
	id, err := Parse("  0xABCDEFabcdef0123456789ABCDEFabcdef012345 ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := domain.Identity("0xabcdefabcdef0123456789abcdefabcdef012345")
	if id != want {
		t.Fatalf("Parse = %s, want %s", id, want)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"abcdefabcdef0123456789abcdefabcdef012345",   // missing prefix
		"0xabcdefabcdef0123456789abcdefabcdef0123",   // too short
		"0xabcdefabcdef0123456789abcdefabcdef01234567", // too long
		"0xzzcdefabcdef0123456789abcdefabcdef012345",   // not hex
	}
	for _, s := range cases {
		if _, err := Parse(s); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Parse(%q): expected ErrInvalidInput, got %v", s, err)
		}
	}
}

func TestExactEqualityOnly(t *testing.T) {
	a, err := Parse("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := Parse(strings.ToLower("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// Case variants normalize to the same identity
	if a != b {
		t.Fatalf("normalized identities must compare equal: %s vs %s", a, b)
	}
}
